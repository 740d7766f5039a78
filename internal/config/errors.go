package config

// User-facing notices
const (
	MsgTitleRequired    = "Please provide a title"
	MsgContentRequired  = "Please provide content"
	MsgPlatformRequired = "Please select at least one platform"
	MsgLinkRequiredFmt  = "Please provide a link for %s"

	MsgArchiveFailed    = "Failed to archive post. Please try again."
	MsgArchiveNotSaved  = "No archive folder selected. Post was not saved."
	MsgFolderSelectFail = "Could not use the selected folder. Posts will not be archived."

	MsgCopyContentFailed     = "Failed to copy content"
	MsgCopyAttachmentsFailed = "Failed to copy attachments"

	MsgSubmissionPending = "An archive write is already in progress"
	MsgInvalidStep       = "That action is not available at this step"
)

// Server errors
const (
	ErrInternalServerError = "Internal server error"
	ErrParseFormFmt        = "Failed to parse form: %v"
	ErrLoadTemplateFmt     = "Failed to load template: %v"
	ErrLibraryDisabled     = "Archive library is not configured"
)
