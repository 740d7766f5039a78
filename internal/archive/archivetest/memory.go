// Package archivetest provides an in-memory archive directory for tests.
package archivetest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"

	"github.com/debemdeboas/chronicler/internal/archive"
)

// MemoryDirectory records every file written under it. Paths are joined with "/".
type MemoryDirectory struct {
	root   *memoryRoot
	name   string
	prefix string
}

type memoryRoot struct {
	mu     sync.Mutex
	files  map[string][]byte
	dirs   []string
	writes []string
	failOn map[string]error
}

func NewMemoryDirectory(name string) *MemoryDirectory {
	return &MemoryDirectory{
		root: &memoryRoot{
			files:  make(map[string][]byte),
			failOn: make(map[string]error),
		},
		name: name,
	}
}

func (d *MemoryDirectory) Name() string {
	if d.prefix == "" {
		return d.name
	}
	return d.name + "/" + strings.TrimSuffix(d.prefix, "/")
}

// FailOn makes creating the entry at path (relative to the root) return err.
func (d *MemoryDirectory) FailOn(path string, err error) {
	d.root.mu.Lock()
	defer d.root.mu.Unlock()
	d.root.failOn[path] = err
}

func (d *MemoryDirectory) rel(name string) string {
	return d.prefix + name
}

func (d *MemoryDirectory) Dir(_ context.Context, name string) (archive.Directory, error) {
	if err := archive.ValidateEntryName(name); err != nil {
		return nil, err
	}

	full := d.rel(name)
	d.root.mu.Lock()
	defer d.root.mu.Unlock()
	if err, ok := d.root.failOn[full]; ok {
		return nil, err
	}
	if !slices.Contains(d.root.dirs, full) {
		d.root.dirs = append(d.root.dirs, full)
	}
	return &MemoryDirectory{root: d.root, name: d.name, prefix: full + "/"}, nil
}

func (d *MemoryDirectory) Create(_ context.Context, name string) (io.WriteCloser, error) {
	if err := archive.ValidateEntryName(name); err != nil {
		return nil, err
	}

	full := d.rel(name)
	d.root.mu.Lock()
	defer d.root.mu.Unlock()
	if err, ok := d.root.failOn[full]; ok {
		return nil, err
	}
	return &memoryFile{root: d.root, path: full}, nil
}

// File returns the content written at path, relative to the root.
func (d *MemoryDirectory) File(path string) ([]byte, bool) {
	d.root.mu.Lock()
	defer d.root.mu.Unlock()
	data, ok := d.root.files[d.prefix+path]
	return data, ok
}

// Writes lists written paths relative to the root, in commit order.
func (d *MemoryDirectory) Writes() []string {
	d.root.mu.Lock()
	defer d.root.mu.Unlock()
	return slices.Clone(d.root.writes)
}

// Dirs lists created directories relative to the root.
func (d *MemoryDirectory) Dirs() []string {
	d.root.mu.Lock()
	defer d.root.mu.Unlock()
	return slices.Clone(d.root.dirs)
}

type memoryFile struct {
	root   *memoryRoot
	path   string
	buf    bytes.Buffer
	closed bool
}

func (f *memoryFile) Write(p []byte) (int, error) {
	if f.closed {
		return 0, fmt.Errorf("write to closed file %s", f.path)
	}
	return f.buf.Write(p)
}

func (f *memoryFile) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true

	f.root.mu.Lock()
	defer f.root.mu.Unlock()
	f.root.files[f.path] = bytes.Clone(f.buf.Bytes())
	f.root.writes = append(f.root.writes, f.path)
	return nil
}
