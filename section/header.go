package section

import (
	"github.com/arloliu/quadpack/endian"
	"github.com/arloliu/quadpack/errs"
)

// Header is the fixed 8-byte prefix of the raw format.
type Header struct {
	// LeafCount is the number of records whose four child references are -1.
	LeafCount uint32 // byte offset 0-3
	// NodeCount is the number of records that follow the header.
	NodeCount uint32 // byte offset 4-7
}

// Bytes serializes the header with the given byte order.
func (h *Header) Bytes(engine endian.EndianEngine) []byte {
	var b [HeaderSize]byte
	h.WriteToSlice(b[:], 0, engine)

	return b[:]
}

// WriteToSlice writes the header at data[offset:] and returns the next write
// position. data must have room for HeaderSize bytes.
func (h *Header) WriteToSlice(data []byte, offset int, engine endian.EndianEngine) int {
	engine.PutUint32(data[offset:offset+4], h.LeafCount)
	engine.PutUint32(data[offset+4:offset+8], h.NodeCount)

	return offset + HeaderSize
}

// Parse parses the header from exactly HeaderSize bytes.
//
// Returns:
//   - error: errs.ErrInvalidHeaderSize if data is not HeaderSize bytes long
func (h *Header) Parse(data []byte, engine endian.EndianEngine) error {
	if len(data) != HeaderSize {
		return errs.ErrInvalidHeaderSize
	}

	h.LeafCount = engine.Uint32(data[0:4])
	h.NodeCount = engine.Uint32(data[4:8])

	return nil
}

// PayloadSize returns the byte length of the record section described by h.
func (h *Header) PayloadSize() int {
	return int(h.NodeCount) * RecordSize
}

// ParseHeader parses a Header from the start of data.
//
// Returns:
//   - Header: parsed header
//   - error: errs.ErrInvalidHeaderSize if data is shorter than HeaderSize
func ParseHeader(data []byte, engine endian.EndianEngine) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, errs.ErrInvalidHeaderSize
	}

	var h Header
	if err := h.Parse(data[:HeaderSize], engine); err != nil {
		return Header{}, err
	}

	return h, nil
}
