// Package flat converts between the pointer quadtree of package tree and the
// positional array that is serialized to disk.
//
// The array is in pre-order (self, TL, TR, BL, BR). Index 0 is the root and
// every child reference either points forward in the array or is NoChild.
package flat

import (
	"github.com/arloliu/quadpack/raster"
	"github.com/arloliu/quadpack/tree"
)

// NoChild marks an absent child reference.
const NoChild int32 = -1

// Node is one array entry. Children holds indices into the same array in the
// order TL, TR, BL, BR.
type Node struct {
	Color    raster.Color
	Area     uint32
	Children [tree.NumChildren]int32
}

// Leaf returns a node with no children.
func Leaf(c raster.Color, area uint32) Node {
	return Node{
		Color:    c,
		Area:     area,
		Children: [tree.NumChildren]int32{NoChild, NoChild, NoChild, NoChild},
	}
}

// IsLeaf reports whether every child reference is NoChild.
func (n Node) IsLeaf() bool {
	for _, c := range n.Children {
		if c != NoChild {
			return false
		}
	}

	return true
}

// Child returns the reference stored in slot q.
func (n Node) Child(q tree.Quadrant) int32 {
	return n.Children[q]
}
