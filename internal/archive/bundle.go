package archive

import (
	"archive/tar"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/debemdeboas/chronicler/internal/config"
	"github.com/debemdeboas/chronicler/internal/util/compression"
)

// BundleName is the download name of a post folder bundle.
func BundleName(folder string, c compression.Compressor) string {
	return folder + ".tar" + c.Extension()
}

// WriteBundle streams the folder as a compressed tarball whose entries are
// rooted at the folder name.
func (l *Library) WriteBundle(w io.Writer, folder string, c compression.Compressor) error {
	post, err := l.Get(folder)
	if err != nil {
		return err
	}

	cw, err := c.NewWriter(w)
	if err != nil {
		return fmt.Errorf("error creating compressor: %w", err)
	}

	tw := tar.NewWriter(cw)
	dir := filepath.Join(l.root, post.Folder)

	names := append([]string{config.PostFileName}, post.Files...)
	for _, name := range names {
		if err := addTarFile(tw, dir, post.Folder, name); err != nil {
			tw.Close()
			cw.Close()
			return err
		}
	}

	if err := tw.Close(); err != nil {
		cw.Close()
		return fmt.Errorf("error finishing tarball: %w", err)
	}
	return cw.Close()
}

func addTarFile(tw *tar.Writer, dir, folder, name string) error {
	f, err := os.Open(filepath.Join(dir, name))
	if err != nil {
		return fmt.Errorf("error opening %s: %w", name, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("error reading %s: %w", name, err)
	}

	hdr, err := tar.FileInfoHeader(info, "")
	if err != nil {
		return err
	}
	hdr.Name = folder + "/" + name

	if err := tw.WriteHeader(hdr); err != nil {
		return fmt.Errorf("error writing header for %s: %w", name, err)
	}
	if _, err := io.Copy(tw, f); err != nil {
		return fmt.Errorf("error writing %s: %w", name, err)
	}
	return nil
}
