//go:build gozstd && cgo

package compress

import (
	"bytes"

	"github.com/valyala/gozstd"
)

// Compress compresses data with the cgo zstd binding at level 3.
func (c ZstdCompressor) Compress(data []byte) ([]byte, error) {
	return gozstd.CompressLevel(nil, data, 3), nil
}

// Decompress streams data into a buffer of the declared size. A frame that
// decodes to more than size bytes is rejected after reading one extra byte.
func (c ZstdCompressor) Decompress(data []byte, size int) ([]byte, error) {
	if len(data) == 0 {
		return checkSize("zstd", nil, size)
	}

	zr := gozstd.NewReader(bytes.NewReader(data))
	defer zr.Release()

	return readExact("zstd", zr, size)
}
