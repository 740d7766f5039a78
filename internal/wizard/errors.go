package wizard

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidTransition = errors.New("invalid transition")
	ErrBusy              = errors.New("a submission is already in progress")
)

// ValidationError reports a missing required field. Message is shown to the user as-is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ArchiveError is returned when the post could not be written. The wizard
// stays on the links step so the user can retry.
type ArchiveError struct {
	Message string
	Err     error
}

func (e *ArchiveError) Error() string {
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *ArchiveError) Unwrap() error {
	return e.Err
}

type NoticeKind string

const (
	NoticeInfo    NoticeKind = "info"
	NoticeWarning NoticeKind = "warning"
	NoticeError   NoticeKind = "error"
)

// Notice is a message for the user that does not stop the wizard.
type Notice struct {
	Kind    NoticeKind
	Message string
}

func warning(msg string) *Notice {
	return &Notice{Kind: NoticeWarning, Message: msg}
}
