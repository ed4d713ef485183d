// Package render paints a quadtree back into an image.
package render

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/arloliu/quadpack/errs"
	"github.com/arloliu/quadpack/tree"
)

// MaxSide is the largest image side Render will allocate.
const MaxSide = 1 << 14

// Render paints every leaf of the tree into a square image whose side is
// recovered from the root's area.
//
// Children cover side/2 quadrants of their parent, so the last row and
// column of an odd-sized split quadrant keep the parent's mean color.
//
// Returns:
//   - *image.RGBA: painted image
//   - error: errs.ErrMalformedInput for a nil root or an area that is not a
//     perfect square, errs.ErrInvalidDimensions for a side above MaxSide
func Render(root *tree.Node) (*image.RGBA, error) {
	return RenderDepth(root, -1)
}

// RenderDepth is Render stopping at depth maxDepth: nodes at that depth are
// painted with their own mean color even when split. A negative maxDepth
// paints down to the leaves. Rendering each depth in turn gives a
// progressive preview of the tree.
func RenderDepth(root *tree.Node, maxDepth int) (*image.RGBA, error) {
	if root == nil {
		return nil, fmt.Errorf("%w: nil tree", errs.ErrMalformedInput)
	}

	side := root.Side()
	if side == 0 || side*side != int(root.Area) {
		return nil, fmt.Errorf("%w: root area %d is not a square", errs.ErrMalformedInput, root.Area)
	}
	if side > MaxSide {
		return nil, fmt.Errorf("%w: side %d exceeds %d", errs.ErrInvalidDimensions, side, MaxSide)
	}

	img := image.NewRGBA(image.Rect(0, 0, side, side))

	type frame struct {
		node      *tree.Node
		top, left int
		size      int
		depth     int
	}

	stack := []frame{{node: root, size: side}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		rect := image.Rect(f.left, f.top, f.left+f.size, f.top+f.size)
		draw.Draw(img, rect, image.NewUniform(f.node.Color), image.Point{}, draw.Src)

		half := f.size / 2
		if f.node.IsLeaf() || half == 0 || (maxDepth >= 0 && f.depth >= maxDepth) {
			continue
		}

		offsets := [tree.NumChildren][2]int{
			{f.top, f.left},
			{f.top, f.left + half},
			{f.top + half, f.left},
			{f.top + half, f.left + half},
		}
		for q, child := range f.node.Children() {
			if child == nil {
				continue
			}
			stack = append(stack, frame{
				node:  child,
				top:   offsets[q][0],
				left:  offsets[q][1],
				size:  half,
				depth: f.depth + 1,
			})
		}
	}

	return img, nil
}
