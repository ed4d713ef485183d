package flat

import (
	"fmt"

	"github.com/arloliu/quadpack/errs"
	"github.com/arloliu/quadpack/tree"
)

// Array is a flattened quadtree.
type Array []Node

// Len returns the number of nodes.
func (a Array) Len() int {
	return len(a)
}

// LeafCount counts the leaves in a single pass.
func (a Array) LeafCount() int {
	count := 0
	for i := range a {
		if a[i].IsLeaf() {
			count++
		}
	}

	return count
}

// Root rebuilds the tree rooted at index 0.
func (a Array) Root() (*tree.Node, error) {
	return Reconstruct(a, 0)
}

// Validate checks every structural invariant without building a tree.
//
// Returns:
//   - error: errs.ErrEmptyArray for an empty array, errs.ErrIndexOutOfRange,
//     errs.ErrInvalidTopology (backward or shared reference) or
//     errs.ErrPartialSplit for the first offending node
func (a Array) Validate() error {
	if len(a) == 0 {
		return errs.ErrEmptyArray
	}

	referenced := make([]bool, len(a))
	for i := range a {
		if err := a.checkNode(i); err != nil {
			return err
		}
		for _, ref := range a[i].Children {
			if ref == NoChild {
				continue
			}
			if referenced[ref] {
				return fmt.Errorf("%w: node %d is referenced more than once",
					errs.ErrInvalidTopology, ref)
			}
			referenced[ref] = true
		}
	}

	return nil
}

// checkNode validates the child references of node i.
func (a Array) checkNode(i int) error {
	n := &a[i]
	present := 0
	for q, ref := range n.Children {
		if ref == NoChild {
			continue
		}
		if ref < NoChild || int(ref) >= len(a) {
			return fmt.Errorf("%w: node %d child %d references %d, array has %d nodes",
				errs.ErrIndexOutOfRange, i, q, ref, len(a))
		}
		if int(ref) <= i {
			return fmt.Errorf("%w: node %d child %d references %d",
				errs.ErrInvalidTopology, i, q, ref)
		}
		present++
	}

	if present != 0 && present != len(n.Children) {
		return fmt.Errorf("%w: node %d has %d of %d children",
			errs.ErrPartialSplit, i, present, len(n.Children))
	}

	return nil
}
