package compress

import (
	"fmt"

	"github.com/arloliu/quadpack/errs"
	"github.com/klauspost/compress/s2"
)

// S2Compressor provides S2 block compression, the fastest built-in codec.
type S2Compressor struct{}

var _ Codec = (*S2Compressor)(nil)

// NewS2Compressor creates a new S2 codec.
func NewS2Compressor() S2Compressor {
	return S2Compressor{}
}

// Compress compresses data as a single S2 block.
func (c S2Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Encode(nil, data), nil
}

// Decompress checks the block's embedded length against size before decoding.
func (c S2Compressor) Decompress(data []byte, size int) ([]byte, error) {
	if len(data) == 0 {
		return checkSize("s2", nil, size)
	}

	n, err := s2.DecodedLen(data)
	if err != nil {
		return nil, fmt.Errorf("%w: s2: %w", errs.ErrMalformedInput, err)
	}
	if n != size {
		return nil, fmt.Errorf("%w: s2 payload is %d bytes, header declares %d",
			errs.ErrMalformedInput, n, size)
	}

	out, err := s2.Decode(make([]byte, size), data)
	if err != nil {
		return nil, fmt.Errorf("%w: s2: %w", errs.ErrMalformedInput, err)
	}

	return checkSize("s2", out, size)
}
