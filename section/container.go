package section

import (
	"fmt"

	"github.com/arloliu/quadpack/endian"
	"github.com/arloliu/quadpack/errs"
	"github.com/arloliu/quadpack/format"
)

var containerEngine = endian.GetLittleEndianEngine()

// ContainerHeader precedes a compressed raw payload. Its own fields are always
// little-endian.
type ContainerHeader struct {
	Flags       uint8                  // byte offset 2
	Compression format.CompressionType // byte offset 3
	RawLength   uint32                 // byte offset 4-7, length of the uncompressed raw payload
	Checksum    uint64                 // byte offset 8-15, xxhash64 of the uncompressed raw payload
}

// NewContainerHeader returns a header for the given compression and payload
// byte order.
func NewContainerHeader(compression format.CompressionType, bigEndian bool) ContainerHeader {
	h := ContainerHeader{Compression: compression}
	if bigEndian {
		h.Flags |= FlagBigEndian
	}

	return h
}

// IsBigEndian reports whether the wrapped raw payload is big-endian.
func (h *ContainerHeader) IsBigEndian() bool {
	return h.Flags&FlagBigEndian != 0
}

// Bytes serializes the container header.
func (h *ContainerHeader) Bytes() []byte {
	var b [ContainerHeaderSize]byte
	h.WriteToSlice(b[:], 0)

	return b[:]
}

// WriteToSlice writes the header at data[offset:] and returns the next write
// position.
func (h *ContainerHeader) WriteToSlice(data []byte, offset int) int {
	b := data[offset : offset+ContainerHeaderSize]
	containerEngine.PutUint16(b[0:2], ContainerMagic)
	b[2] = h.Flags
	b[3] = uint8(h.Compression)
	containerEngine.PutUint32(b[4:8], h.RawLength)
	containerEngine.PutUint64(b[8:16], h.Checksum)

	return offset + ContainerHeaderSize
}

// Parse parses the container header from the start of data.
//
// Returns:
//   - error: errs.ErrInvalidContainer for a short buffer, a wrong magic or
//     reserved flag bits; errs.ErrUnsupportedCompression for an unknown
//     compression byte
func (h *ContainerHeader) Parse(data []byte) error {
	if len(data) < ContainerHeaderSize {
		return fmt.Errorf("%w: %d bytes", errs.ErrInvalidContainer, len(data))
	}
	if magic := containerEngine.Uint16(data[0:2]); magic != ContainerMagic {
		return fmt.Errorf("%w: magic 0x%04x", errs.ErrInvalidContainer, magic)
	}
	if data[2]&flagReservedMask != 0 {
		return fmt.Errorf("%w: reserved flags 0x%02x", errs.ErrInvalidContainer, data[2])
	}

	compression := format.CompressionType(data[3])
	if !compression.IsValid() {
		return fmt.Errorf("%w: 0x%02x", errs.ErrUnsupportedCompression, data[3])
	}

	h.Flags = data[2]
	h.Compression = compression
	h.RawLength = containerEngine.Uint32(data[4:8])
	h.Checksum = containerEngine.Uint64(data[8:16])

	return nil
}

// IsContainer reports whether data starts with the container magic.
func IsContainer(data []byte) bool {
	return len(data) >= 2 && containerEngine.Uint16(data[0:2]) == ContainerMagic
}
