package compress

import (
	"errors"
	"fmt"
	"io"

	"github.com/arloliu/quadpack/errs"
	"github.com/arloliu/quadpack/format"
)

// Compressor compresses a complete raw quadpack payload.
type Compressor interface {
	// Compress returns the compressed form of data. The input slice is not
	// modified; the result may alias it only for the no-op codec.
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores a payload whose uncompressed length is known up front
// from the container header.
type Decompressor interface {
	// Decompress returns exactly size bytes or an error wrapping
	// errs.ErrMalformedInput. Implementations never allocate more than size
	// bytes for the output, so a forged header cannot trigger an unbounded
	// allocation beyond what it declares.
	Decompress(data []byte, size int) ([]byte, error)
}

// Codec combines both directions. Built-in codecs are safe for concurrent use.
type Codec interface {
	Compressor
	Decompressor
}

// CreateCodec returns a new Codec for the compression type.
//
// Parameters:
//   - compressionType: None, Zstd, S2 or LZ4
//   - target: description of the payload, used in the error message
//
// Returns:
//   - Codec: codec for the type
//   - error: errs.ErrUnsupportedCompression for an unknown type
func CreateCodec(compressionType format.CompressionType, target string) (Codec, error) {
	switch compressionType {
	case format.CompressionNone:
		return NewNoOpCompressor(), nil
	case format.CompressionZstd:
		return NewZstdCompressor(), nil
	case format.CompressionS2:
		return NewS2Compressor(), nil
	case format.CompressionLZ4:
		return NewLZ4Compressor(), nil
	default:
		return nil, fmt.Errorf("%w: invalid %s compression %s", errs.ErrUnsupportedCompression, target, compressionType)
	}
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec returns the shared built-in Codec for the compression type.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("%w: %s", errs.ErrUnsupportedCompression, compressionType)
}

// checkSize verifies a decompressed payload has the declared length.
func checkSize(name string, out []byte, size int) ([]byte, error) {
	if len(out) != size {
		return nil, fmt.Errorf("%w: %s payload is %d bytes, header declares %d",
			errs.ErrMalformedInput, name, len(out), size)
	}

	return out, nil
}

// readExact reads exactly size bytes from a streaming decoder and verifies the
// stream ends there.
func readExact(name string, r io.Reader, size int) ([]byte, error) {
	out := make([]byte, size)
	if _, err := io.ReadFull(r, out); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: %s payload is shorter than the declared %d bytes",
				errs.ErrMalformedInput, name, size)
		}

		return nil, fmt.Errorf("%w: %s: %w", errs.ErrMalformedInput, name, err)
	}

	var extra [1]byte
	n, err := io.ReadFull(r, extra[:])
	if n > 0 {
		return nil, fmt.Errorf("%w: %s payload exceeds the declared %d bytes",
			errs.ErrMalformedInput, name, size)
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %s: %w", errs.ErrMalformedInput, name, err)
	}

	return out, nil
}
