package section

import (
	"github.com/arloliu/quadpack/endian"
	"github.com/arloliu/quadpack/errs"
	"github.com/arloliu/quadpack/flat"
	"github.com/arloliu/quadpack/raster"
)

// WriteRecord writes n as a RecordSize record at data[offset:] and returns the
// next write position. The pad byte is always written as zero.
func WriteRecord(data []byte, offset int, n *flat.Node, engine endian.EndianEngine) int {
	rec := data[offset : offset+RecordSize]
	rec[recordColorOffset] = n.Color.R
	rec[recordColorOffset+1] = n.Color.G
	rec[recordColorOffset+2] = n.Color.B
	rec[recordPadOffset] = 0
	engine.PutUint32(rec[recordAreaOffset:], n.Area)

	pos := recordChildrenOffset
	for _, child := range n.Children {
		engine.PutUint32(rec[pos:], uint32(child)) //nolint: gosec
		pos += 4
	}

	return offset + RecordSize
}

// AppendRecord appends n as a RecordSize record to buf.
func AppendRecord(buf []byte, n *flat.Node, engine endian.EndianEngine) []byte {
	buf = append(buf, n.Color.R, n.Color.G, n.Color.B, 0)
	buf = engine.AppendUint32(buf, n.Area)
	for _, child := range n.Children {
		buf = engine.AppendUint32(buf, uint32(child)) //nolint: gosec
	}

	return buf
}

// ParseRecord parses one record from the start of data. The pad byte is
// ignored.
//
// Returns:
//   - flat.Node: parsed node, child references are not range checked
//   - error: errs.ErrInvalidRecordSize if data is shorter than RecordSize
func ParseRecord(data []byte, engine endian.EndianEngine) (flat.Node, error) {
	if len(data) < RecordSize {
		return flat.Node{}, errs.ErrInvalidRecordSize
	}

	n := flat.Node{
		Color: raster.Color{
			R: data[recordColorOffset],
			G: data[recordColorOffset+1],
			B: data[recordColorOffset+2],
		},
		Area: engine.Uint32(data[recordAreaOffset:]),
	}

	pos := recordChildrenOffset
	for i := range n.Children {
		n.Children[i] = int32(engine.Uint32(data[pos:])) //nolint: gosec
		pos += 4
	}

	return n, nil
}
