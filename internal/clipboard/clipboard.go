// Package clipboard copies post content and attachments to the system clipboard.
package clipboard

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/debemdeboas/chronicler/internal/model"
)

var (
	ErrCopyFailed      = errors.New("copy to clipboard failed")
	ErrUnsupportedItem = errors.New("clipboard cannot hold item")
)

var clipboardLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	clipboardLogger = l
}

type Item struct {
	MediaType string
	Data      []byte
}

type Clipboard interface {
	WriteText(ctx context.Context, text string) error
	Write(ctx context.Context, items []Item) error
}

func CopyContent(ctx context.Context, cb Clipboard, content string) error {
	if err := cb.WriteText(ctx, content); err != nil {
		clipboardLogger.Error().Err(err).Msg("Failed to copy content")
		return fmt.Errorf("%w: %w", ErrCopyFailed, err)
	}
	return nil
}

// CopyAttachments copies every image attachment as a clipboard item. Without
// images it copies the attachment names, one per line. It does nothing when
// there are no attachments.
func CopyAttachments(ctx context.Context, cb Clipboard, attachments []model.Attachment) error {
	if len(attachments) == 0 {
		return nil
	}

	var images []Item
	for _, a := range attachments {
		if a.IsImage() {
			images = append(images, Item{MediaType: a.MediaType, Data: a.Data})
		}
	}

	var err error
	if len(images) > 0 {
		err = cb.Write(ctx, images)
	} else {
		names := make([]string, len(attachments))
		for i, a := range attachments {
			names[i] = a.Name
		}
		err = cb.WriteText(ctx, strings.Join(names, "\n"))
	}

	if err != nil {
		clipboardLogger.Error().Err(err).Int("attachments", len(attachments)).Msg("Failed to copy attachments")
		return fmt.Errorf("%w: %w", ErrCopyFailed, err)
	}
	return nil
}
