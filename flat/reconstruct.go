package flat

import (
	"fmt"

	"github.com/arloliu/quadpack/errs"
	"github.com/arloliu/quadpack/tree"
)

// Reconstruct rebuilds the pointer tree rooted at arr[index].
//
// Only the subtree reachable from index is visited and validated. The walk
// uses an explicit stack, so a hostile array cannot exhaust the goroutine
// stack, and forward-only child references guarantee termination.
//
// Returns:
//   - *tree.Node: root of the rebuilt subtree
//   - error: errs.ErrIndexOutOfRange if index or any reachable child
//     reference is out of range, errs.ErrInvalidTopology for a backward or
//     shared reference, errs.ErrPartialSplit for a node with some but not all
//     children
func Reconstruct(arr Array, index int) (*tree.Node, error) {
	if index < 0 || index >= len(arr) {
		return nil, fmt.Errorf("%w: start index %d, array has %d nodes",
			errs.ErrIndexOutOfRange, index, len(arr))
	}

	type frame struct {
		idx    int
		parent *tree.Node
		slot   tree.Quadrant
	}

	visited := make([]bool, len(arr))
	var root *tree.Node
	stack := []frame{{idx: index}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if visited[f.idx] {
			return nil, fmt.Errorf("%w: node %d is referenced more than once",
				errs.ErrInvalidTopology, f.idx)
		}
		visited[f.idx] = true

		if err := arr.checkNode(f.idx); err != nil {
			return nil, err
		}

		src := &arr[f.idx]
		node := &tree.Node{Color: src.Color, Area: src.Area}
		if f.parent == nil {
			root = node
		} else {
			f.parent.SetChild(f.slot, node)
		}

		for q := tree.BottomRight; q >= tree.TopLeft; q-- {
			if ref := src.Children[q]; ref != NoChild {
				stack = append(stack, frame{idx: int(ref), parent: node, slot: q})
			}
		}
	}

	return root, nil
}
