package archive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Directory is a writable location posts are archived into.
type Directory interface {
	Name() string
	// Dir returns the named subdirectory, creating it when absent.
	Dir(ctx context.Context, name string) (Directory, error)
	// Create opens the named file for writing, truncating any existing content.
	Create(ctx context.Context, name string) (io.WriteCloser, error)
}

// ValidateEntryName rejects names that would escape the directory they are written into.
func ValidateEntryName(name string) error {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, `/\`) || strings.ContainsRune(name, 0) {
		return fmt.Errorf("invalid entry name: %q", name)
	}
	return nil
}

type OSDirectory struct {
	path string
}

func NewOSDirectory(path string) *OSDirectory {
	return &OSDirectory{path: path}
}

func (d *OSDirectory) Name() string {
	return d.path
}

func (d *OSDirectory) Path() string {
	return d.path
}

func (d *OSDirectory) Dir(_ context.Context, name string) (Directory, error) {
	if err := ValidateEntryName(name); err != nil {
		return nil, err
	}

	p := filepath.Join(d.path, name)
	if err := os.Mkdir(p, 0o755); err != nil {
		if !errors.Is(err, fs.ErrExist) {
			return nil, fmt.Errorf("error creating directory %s: %w", p, err)
		}
		info, statErr := os.Stat(p)
		if statErr != nil {
			return nil, fmt.Errorf("error reading directory %s: %w", p, statErr)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("%s exists and is not a directory", p)
		}
	}

	return &OSDirectory{path: p}, nil
}

func (d *OSDirectory) Create(_ context.Context, name string) (io.WriteCloser, error) {
	if err := ValidateEntryName(name); err != nil {
		return nil, err
	}

	f, err := os.Create(filepath.Join(d.path, name))
	if err != nil {
		return nil, fmt.Errorf("error creating file: %w", err)
	}
	return f, nil
}
