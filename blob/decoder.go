package blob

import (
	"fmt"

	"github.com/arloliu/quadpack/compress"
	"github.com/arloliu/quadpack/endian"
	"github.com/arloliu/quadpack/errs"
	"github.com/arloliu/quadpack/flat"
	"github.com/arloliu/quadpack/format"
	"github.com/arloliu/quadpack/internal/hash"
	"github.com/arloliu/quadpack/internal/options"
	"github.com/arloliu/quadpack/section"
)

// Info describes an encoded input.
type Info struct {
	Header      section.Header
	Compression format.CompressionType // CompressionNone for raw input
	BigEndian   bool
	EncodedSize int // length of the input
	RawSize     int // length of the raw format, equal to EncodedSize for raw input
}

// Decoder decodes one encoded input.
//
// Note: a Decoder is not safe for concurrent use.
type Decoder struct {
	raw    []byte
	engine endian.EndianEngine
	info   Info
}

// NewDecoder unwraps data and parses its header. Records are parsed by Decode.
//
// Input that is a self-consistent raw array under the configured byte order
// is read as raw. Otherwise input starting with the container magic is
// unwrapped, verified against its checksum and read with the byte order the
// container records.
//
// Returns:
//   - *Decoder: decoder ready for Decode
//   - error: errs.ErrInvalidHeaderSize, errs.ErrNodeCountMismatch,
//     errs.ErrEmptyArray, container errors (errs.ErrInvalidContainer,
//     errs.ErrUnsupportedCompression, errs.ErrChecksumMismatch) or an option
//     error; every format error wraps errs.ErrMalformedInput
func NewDecoder(data []byte, opts ...DecoderOption) (*Decoder, error) {
	cfg := NewDecoderConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	d := &Decoder{
		raw:    data,
		engine: cfg.engine,
		info: Info{
			Compression: format.CompressionNone,
			BigEndian:   cfg.engine == endian.GetBigEndianEngine(),
			EncodedSize: len(data),
		},
	}

	if !isRawConsistent(data, cfg.engine) && section.IsContainer(data) {
		if err := d.unwrap(data, cfg.maxRawSize); err != nil {
			return nil, err
		}
	}
	d.info.RawSize = len(d.raw)

	if err := d.parseHeader(); err != nil {
		return nil, err
	}

	return d, nil
}

// Info returns what was learned about the input.
func (d *Decoder) Info() Info {
	return d.info
}

// Header returns the parsed raw header.
func (d *Decoder) Header() section.Header {
	return d.info.Header
}

// Decode parses every record and validates the array.
//
// Returns:
//   - flat.Array: decoded array, index 0 is the root
//   - error: errs.ErrLeafCountMismatch if the header's leaf count disagrees
//     with the records, or a flat.Array.Validate error
func (d *Decoder) Decode() (flat.Array, error) {
	n := int(d.info.Header.NodeCount)
	arr := make(flat.Array, n)
	leaves := 0
	offset := section.HeaderSize
	for i := range arr {
		node, err := section.ParseRecord(d.raw[offset:], d.engine)
		if err != nil {
			return nil, err
		}
		arr[i] = node
		if node.IsLeaf() {
			leaves++
		}
		offset += section.RecordSize
	}

	if uint32(leaves) != d.info.Header.LeafCount { //nolint: gosec
		return nil, fmt.Errorf("%w: header declares %d, records hold %d",
			errs.ErrLeafCountMismatch, d.info.Header.LeafCount, leaves)
	}

	if err := arr.Validate(); err != nil {
		return nil, err
	}

	return arr, nil
}

func (d *Decoder) parseHeader() error {
	header, err := section.ParseHeader(d.raw, d.engine)
	if err != nil {
		return err
	}
	if header.NodeCount == 0 {
		return errs.ErrEmptyArray
	}

	want := uint64(section.HeaderSize) + uint64(header.NodeCount)*section.RecordSize
	if uint64(len(d.raw)) != want {
		return fmt.Errorf("%w: header declares %d nodes (%d bytes), input has %d bytes",
			errs.ErrNodeCountMismatch, header.NodeCount, want, len(d.raw))
	}
	d.info.Header = header

	return nil
}

func (d *Decoder) unwrap(data []byte, maxRawSize int) error {
	var header section.ContainerHeader
	if err := header.Parse(data); err != nil {
		return err
	}

	rawLen := int(header.RawLength)
	if rawLen < section.HeaderSize || rawLen > maxRawSize {
		return fmt.Errorf("%w: declared raw length %d", errs.ErrInvalidContainer, rawLen)
	}

	codec, err := compress.GetCodec(header.Compression)
	if err != nil {
		return err
	}

	raw, err := codec.Decompress(data[section.ContainerHeaderSize:], rawLen)
	if err != nil {
		return err
	}

	if sum := hash.Checksum(raw); sum != header.Checksum {
		return fmt.Errorf("%w: got %016x, want %016x", errs.ErrChecksumMismatch, sum, header.Checksum)
	}

	d.raw = raw
	d.engine = endian.GetEngine(header.IsBigEndian())
	d.info.Compression = header.Compression
	d.info.BigEndian = header.IsBigEndian()

	return nil
}

// isRawConsistent reports whether data's length matches the node count its
// header declares under engine.
func isRawConsistent(data []byte, engine endian.EndianEngine) bool {
	header, err := section.ParseHeader(data, engine)
	if err != nil {
		return false
	}

	return uint64(len(data)) == uint64(section.HeaderSize)+uint64(header.NodeCount)*section.RecordSize
}
