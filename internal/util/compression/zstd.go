package compression

import (
	"io"

	"github.com/klauspost/compress/zstd"
)

type ZstdCompressor struct{}

func (ZstdCompressor) NewWriter(w io.Writer) (io.WriteCloser, error) {
	return zstd.NewWriter(w)
}

func (ZstdCompressor) NewReader(r io.Reader) (io.ReadCloser, error) {
	decoder, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	return decoder.IOReadCloser(), nil
}

func (ZstdCompressor) Extension() string   { return ".zst" }
func (ZstdCompressor) ContentType() string { return "application/zstd" }
