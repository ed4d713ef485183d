// Package tree builds the in-memory quadtree of a raster.
//
// A Node covers one square quadrant and stores the quadrant's mean color and
// area. A node is either a leaf (all four children nil) or a split node (all
// four children set); partial splits never occur in trees produced by Build.
//
// The pointer tree is transient: it is built, flattened into the positional
// array of the flat package, and dropped.
package tree

import (
	"math"

	"github.com/arloliu/quadpack/raster"
)

// Quadrant identifies a child slot. The numeric order is the serialization
// order and must not change.
type Quadrant int

const (
	TopLeft Quadrant = iota
	TopRight
	BottomLeft
	BottomRight
)

// NumChildren is the number of child slots of a split node.
const NumChildren = 4

func (q Quadrant) String() string {
	switch q {
	case TopLeft:
		return "TopLeft"
	case TopRight:
		return "TopRight"
	case BottomLeft:
		return "BottomLeft"
	case BottomRight:
		return "BottomRight"
	default:
		return "Unknown"
	}
}

// Node is one quadrant of the image at some depth.
type Node struct {
	// Color is the mean color of every pixel of the quadrant, computed at
	// construction time independently of the children.
	Color raster.Color
	// Area is side*side of the quadrant at construction time.
	Area uint32

	TopLeft     *Node
	TopRight    *Node
	BottomLeft  *Node
	BottomRight *Node
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool {
	return n.TopLeft == nil && n.TopRight == nil && n.BottomLeft == nil && n.BottomRight == nil
}

// IsSplit reports whether all four children are present.
func (n *Node) IsSplit() bool {
	return n.TopLeft != nil && n.TopRight != nil && n.BottomLeft != nil && n.BottomRight != nil
}

// Children returns the child slots in serialization order.
func (n *Node) Children() [NumChildren]*Node {
	return [NumChildren]*Node{n.TopLeft, n.TopRight, n.BottomLeft, n.BottomRight}
}

// Child returns the child in slot q, or nil.
func (n *Node) Child(q Quadrant) *Node {
	switch q {
	case TopLeft:
		return n.TopLeft
	case TopRight:
		return n.TopRight
	case BottomLeft:
		return n.BottomLeft
	case BottomRight:
		return n.BottomRight
	default:
		return nil
	}
}

// SetChild stores child in slot q.
func (n *Node) SetChild(q Quadrant, child *Node) {
	switch q {
	case TopLeft:
		n.TopLeft = child
	case TopRight:
		n.TopRight = child
	case BottomLeft:
		n.BottomLeft = child
	case BottomRight:
		n.BottomRight = child
	}
}

// Side returns the quadrant side length recovered from Area.
func (n *Node) Side() int {
	return int(math.Sqrt(float64(n.Area)))
}

// Walk visits the subtree rooted at n in pre-order (self, TL, TR, BL, BR).
// Returning false from fn skips the node's children.
func (n *Node) Walk(fn func(node *Node, depth int) bool) {
	n.walk(fn, 0)
}

func (n *Node) walk(fn func(node *Node, depth int) bool, depth int) {
	if n == nil || !fn(n, depth) {
		return
	}
	for _, child := range n.Children() {
		child.walk(fn, depth+1)
	}
}

// Stats summarizes a tree.
type Stats struct {
	Nodes    int // total node count
	Leaves   int // nodes without children
	MaxDepth int // depth of the deepest node, the root is depth 0
}

// Stats walks the subtree rooted at n.
func (n *Node) Stats() Stats {
	var s Stats
	n.Walk(func(node *Node, depth int) bool {
		s.Nodes++
		if node.IsLeaf() {
			s.Leaves++
		}
		s.MaxDepth = max(s.MaxDepth, depth)

		return true
	})

	return s
}

// Count returns the number of nodes in the subtree rooted at n.
func (n *Node) Count() int {
	if n == nil {
		return 0
	}

	count := 1
	for _, child := range n.Children() {
		count += child.Count()
	}

	return count
}
