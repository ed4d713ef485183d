package tree

import (
	"testing"

	"github.com/arloliu/quadpack/raster"
	"github.com/stretchr/testify/require"
)

func TestQuadrant_String(t *testing.T) {
	require.Equal(t, "TopLeft", TopLeft.String())
	require.Equal(t, "TopRight", TopRight.String())
	require.Equal(t, "BottomLeft", BottomLeft.String())
	require.Equal(t, "BottomRight", BottomRight.String())
	require.Equal(t, "Unknown", Quadrant(9).String())
}

func TestNode_Children(t *testing.T) {
	n := &Node{Area: 4}
	require.True(t, n.IsLeaf())
	require.False(t, n.IsSplit())
	require.Equal(t, 2, n.Side())

	leaves := make([]*Node, NumChildren)
	for q := TopLeft; q <= BottomRight; q++ {
		leaves[q] = &Node{Color: raster.Color{R: uint8(q)}, Area: 1}
		n.SetChild(q, leaves[q])
		require.Same(t, leaves[q], n.Child(q))
	}

	require.True(t, n.IsSplit())
	require.False(t, n.IsLeaf())
	require.Nil(t, n.Child(Quadrant(7)))

	children := n.Children()
	for i, c := range children {
		require.Same(t, leaves[i], c)
	}
}

func TestNode_PartialSplit(t *testing.T) {
	n := &Node{TopLeft: &Node{}}
	require.False(t, n.IsLeaf())
	require.False(t, n.IsSplit())
	require.Equal(t, 2, n.Count())
}

func TestNode_Walk(t *testing.T) {
	root, err := BuildRaster(checkerboard(t, 4, 4), 0)
	require.NoError(t, err)

	t.Run("pre-order", func(t *testing.T) {
		var areas []uint32
		root.Walk(func(n *Node, _ int) bool {
			areas = append(areas, n.Area)
			return true
		})
		require.Len(t, areas, 21)
		require.Equal(t, []uint32{16, 4, 1, 1, 1, 1, 4}, areas[:7])
	})

	t.Run("prune", func(t *testing.T) {
		visited := 0
		root.Walk(func(_ *Node, depth int) bool {
			visited++
			return depth < 1
		})
		require.Equal(t, 5, visited)
	})
}

func TestNode_Stats(t *testing.T) {
	var nilNode *Node
	require.Equal(t, 0, nilNode.Count())
	require.Equal(t, Stats{}, nilNode.Stats())

	leaf := &Node{Area: 1}
	require.Equal(t, Stats{Nodes: 1, Leaves: 1}, leaf.Stats())
}
