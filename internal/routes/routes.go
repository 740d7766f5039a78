// Package routes defines HTTP route constants for the application.
package routes

// API Routes
const (
	// Static and assets
	RobotsPath        = "/robots.txt"
	ThemeOppositeIcon = "/theme/opposite-icon"
	ThemeToggle       = "/theme/toggle"
	SyntaxThemeSet    = "/syntax-theme/set"
	SyntaxThemeGet    = "/syntax-theme/{theme}"

	// SSE
	SSEPath = "/sse"

	// Root renders the current wizard step
	RootPath = "/{$}"

	// Wizard transitions
	WizardFolder  = "/wizard/folder"
	WizardSkip    = "/wizard/skip"
	WizardPublish = "/wizard/publish"
	WizardLinks   = "/wizard/links"
	WizardAnother = "/wizard/another"

	// Form helpers
	PartialsSlug       = "/partials/slug"
	PartialsPreview    = "/partials/preview"
	PartialsCopyLabel  = "/partials/copy-label"
	PartialsPastedName = "/partials/pasted-name"
	ClipboardContent   = "/clipboard/content"
	ClipboardFiles     = "/clipboard/attachments"

	// Archive library
	Library         = "/archive"
	LibraryPostBare = "/archive/{folder}"
	LibraryPost     = "/archive/{folder}/{$}"
	LibrarySource   = "/archive/{folder}/source"
	LibraryBundle   = "/archive/{folder}/bundle"
	LibraryFile     = "/archive/{folder}/{file}"
)
