// Package compression wraps the stream compressors used for post bundles.
package compression

import (
	"fmt"
	"io"
)

type Compressor interface {
	NewWriter(w io.Writer) (io.WriteCloser, error)
	NewReader(r io.Reader) (io.ReadCloser, error)

	// Extension is appended to ".tar" when naming bundles.
	Extension() string
	ContentType() string
}

func ByName(name string) (Compressor, error) {
	switch name {
	case "zstd":
		return ZstdCompressor{}, nil
	case "gzip":
		return GzipCompressor{}, nil
	default:
		return nil, fmt.Errorf("unknown compressor: %q", name)
	}
}
