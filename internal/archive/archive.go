// Package archive persists finalized posts as a Markdown file plus attachments
// inside a per-post folder of a user-chosen directory.
package archive

import (
	"errors"

	"github.com/rs/zerolog"
)

// ErrArchiveFailed wraps every failure of an archive write.
var ErrArchiveFailed = errors.New("archive write failed")

var archiveLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	archiveLogger = l
}
