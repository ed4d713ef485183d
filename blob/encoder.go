package blob

import (
	"fmt"
	"io"

	"github.com/arloliu/quadpack/errs"
	"github.com/arloliu/quadpack/flat"
	"github.com/arloliu/quadpack/format"
	"github.com/arloliu/quadpack/internal/hash"
	"github.com/arloliu/quadpack/internal/options"
	"github.com/arloliu/quadpack/internal/pool"
	"github.com/arloliu/quadpack/section"
)

// Encoder serializes flat arrays.
type Encoder struct {
	cfg *EncoderConfig
}

// NewEncoder creates an encoder.
//
// Returns:
//   - *Encoder: encoder ready for use
//   - error: option validation error
func NewEncoder(opts ...EncoderOption) (*Encoder, error) {
	cfg := NewEncoderConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return &Encoder{cfg: cfg}, nil
}

// Config returns the encoder configuration.
func (e *Encoder) Config() *EncoderConfig {
	return e.cfg
}

// Encode serializes arr.
//
// The array is validated first, so the output always decodes. The leaf count
// is computed in a single pass over the array.
//
// Returns:
//   - []byte: raw format, or a container when compression is configured
//   - error: a validation error from flat.Array.Validate, errs.ErrInvalidDimensions
//     if the array does not fit the format, or a compression error
func (e *Encoder) Encode(arr flat.Array) ([]byte, error) {
	if err := e.check(arr); err != nil {
		return nil, err
	}

	buf := pool.GetEncodeBuffer()
	defer pool.PutEncodeBuffer(buf)

	e.writeRaw(buf, arr)

	if e.cfg.compression == format.CompressionNone {
		out := make([]byte, buf.Len())
		copy(out, buf.Bytes())

		return out, nil
	}

	return e.wrap(buf.Bytes())
}

// EncodeTo serializes arr and writes it to w.
//
// Returns:
//   - int64: number of bytes written
//   - error: any Encode error or the writer's error
func (e *Encoder) EncodeTo(w io.Writer, arr flat.Array) (int64, error) {
	data, err := e.Encode(arr)
	if err != nil {
		return 0, err
	}

	n, err := w.Write(data)
	if err != nil {
		return int64(n), fmt.Errorf("%w: %w", errs.ErrIO, err)
	}

	return int64(n), nil
}

func (e *Encoder) check(arr flat.Array) error {
	if len(arr) > section.MaxNodes {
		return fmt.Errorf("%w: %d nodes exceed the format limit", errs.ErrInvalidDimensions, len(arr))
	}

	return arr.Validate()
}

// writeRaw appends the raw header and records to buf.
func (e *Encoder) writeRaw(buf *pool.ByteBuffer, arr flat.Array) {
	start := buf.Len()
	buf.ExtendOrGrow(section.HeaderSize + len(arr)*section.RecordSize)
	data := buf.B[start:]

	header := section.Header{
		LeafCount: uint32(arr.LeafCount()), //nolint: gosec
		NodeCount: uint32(len(arr)),        //nolint: gosec
	}
	offset := header.WriteToSlice(data, 0, e.cfg.engine)
	for i := range arr {
		offset = section.WriteRecord(data, offset, &arr[i], e.cfg.engine)
	}
}

// wrap compresses raw and prefixes the container header.
func (e *Encoder) wrap(raw []byte) ([]byte, error) {
	if uint64(len(raw)) > uint64(^uint32(0)) {
		return nil, fmt.Errorf("%w: raw payload of %d bytes is too large for a container",
			errs.ErrInvalidDimensions, len(raw))
	}

	payload, err := e.cfg.codec.Compress(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to compress %s payload: %w", e.cfg.compression, err)
	}

	header := section.NewContainerHeader(e.cfg.compression, e.cfg.bigEndian)
	header.RawLength = uint32(len(raw)) //nolint: gosec
	header.Checksum = hash.Checksum(raw)

	out := make([]byte, section.ContainerHeaderSize+len(payload))
	offset := header.WriteToSlice(out, 0)
	copy(out[offset:], payload)

	return out, nil
}
