package compression

import (
	"compress/gzip"
	"io"
)

type GzipCompressor struct{}

func (GzipCompressor) NewWriter(w io.Writer) (io.WriteCloser, error) {
	return gzip.NewWriter(w), nil
}

func (GzipCompressor) NewReader(r io.Reader) (io.ReadCloser, error) {
	return gzip.NewReader(r)
}

func (GzipCompressor) Extension() string   { return ".gz" }
func (GzipCompressor) ContentType() string { return "application/gzip" }
