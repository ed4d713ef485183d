package flat

import (
	"github.com/arloliu/quadpack/tree"
)

// pending is a work stack entry: a tree node waiting for its index and the
// parent slot that must receive it.
type pending struct {
	node   *tree.Node
	parent int
	slot   tree.Quadrant
}

// Flatten lays out the tree rooted at root as a pre-order array.
//
// The first pass counts the nodes so the array is allocated once; the second
// pass fills it with an explicit stack. A node's index is its visit order, so
// indices are dense and every child index is greater than its parent's.
// A nil root yields an empty array.
func Flatten(root *tree.Node) Array {
	if root == nil {
		return Array{}
	}

	arr := make(Array, 0, countNodes(root))
	stack := []pending{{node: root, parent: -1}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		idx := len(arr)
		arr = append(arr, Leaf(top.node.Color, top.node.Area))
		if top.parent >= 0 {
			arr[top.parent].Children[top.slot] = int32(idx) //nolint: gosec
		}

		// push in reverse so TL is visited first
		for q := tree.BottomRight; q >= tree.TopLeft; q-- {
			if child := top.node.Child(q); child != nil {
				stack = append(stack, pending{node: child, parent: idx, slot: q})
			}
		}
	}

	return arr
}

func countNodes(root *tree.Node) int {
	count := 0
	stack := []*tree.Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		count++

		for _, child := range n.Children() {
			if child != nil {
				stack = append(stack, child)
			}
		}
	}

	return count
}
