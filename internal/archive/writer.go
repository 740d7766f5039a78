package archive

import (
	"context"
	"fmt"
	"time"

	"github.com/debemdeboas/chronicler/internal/config"
	"github.com/debemdeboas/chronicler/internal/model"
)

type Writer struct {
	now func() time.Time
}

func NewWriter() *Writer {
	return &Writer{now: time.Now}
}

// NewWriterWithClock pins the timestamp used for folder names and front matter.
func NewWriterWithClock(now func() time.Time) *Writer {
	return &Writer{now: now}
}

// Archive writes the post folder into dir and returns the folder name.
//
// The folder is created if absent and post.md is written first, followed by
// each attachment in order. Existing files of the same name are overwritten.
// Writes are sequential and nothing is rolled back: files written before a
// failure stay in place. Every failure wraps ErrArchiveFailed.
func (w *Writer) Archive(ctx context.Context, post *model.Post, dir Directory) (string, error) {
	if dir == nil {
		return "", fmt.Errorf("%w: no directory", ErrArchiveFailed)
	}

	now := w.now()
	folderName := FolderName(now, post.Slug)

	folder, err := dir.Dir(ctx, folderName)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrArchiveFailed, err)
	}

	markdown := GenerateMarkdown(post, now)
	if err := writeFile(ctx, folder, config.PostFileName, []byte(markdown)); err != nil {
		return "", fmt.Errorf("%w: %w", ErrArchiveFailed, err)
	}

	for _, a := range post.Attachments {
		if err := writeFile(ctx, folder, a.Name, a.Data); err != nil {
			return "", fmt.Errorf("%w: attachment %s: %w", ErrArchiveFailed, a.Name, err)
		}
	}

	archiveLogger.Info().
		Str("directory", dir.Name()).
		Str("folder", folderName).
		Int("attachments", len(post.Attachments)).
		Msg("Post archived")

	return folderName, nil
}

func writeFile(ctx context.Context, dir Directory, name string, data []byte) error {
	f, err := dir.Create(ctx, name)
	if err != nil {
		return err
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("error writing %s: %w", name, err)
	}

	// Close commits the write for buffered directories.
	if err := f.Close(); err != nil {
		return fmt.Errorf("error closing %s: %w", name, err)
	}
	return nil
}
