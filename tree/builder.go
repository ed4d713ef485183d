package tree

import (
	"fmt"
	"math/bits"

	"github.com/arloliu/quadpack/errs"
	"github.com/arloliu/quadpack/internal/options"
	"github.com/arloliu/quadpack/metric"
	"github.com/arloliu/quadpack/raster"
)

// maxSide keeps size*size inside the uint32 area field.
const maxSide = 1<<16 - 1

// Build constructs the quadtree of the square [top, top+size) x [left, left+size).
//
// Each node stores the integer mean color of its quadrant and size*size as its
// area. A node is split into four children of side size/2 when the quadrant is
// larger than one pixel and its metric score is strictly greater than
// threshold. Children are placed at (top, left), (top, left+size/2),
// (top+size/2, left) and (top+size/2, left+size/2). For odd sizes the last
// row and column belong to the parent's mean only.
//
// Returns:
//   - *Node: root of the new tree
//   - error: errs.ErrInvalidDimensions for a non-positive size or a quadrant
//     outside r, errs.ErrInvalidThreshold for a negative threshold,
//     errs.ErrMalformedInput for a nil raster, or an option error
func Build(r *raster.Raster, top, left, size, threshold int, opts ...BuilderOption) (*Node, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: nil raster", errs.ErrMalformedInput)
	}
	if size <= 0 || size > maxSide {
		return nil, fmt.Errorf("%w: quadrant size %d", errs.ErrInvalidDimensions, size)
	}
	if threshold < 0 {
		return nil, fmt.Errorf("%w: %d", errs.ErrInvalidThreshold, threshold)
	}
	if !r.Contains(top, left, size) {
		return nil, fmt.Errorf("%w: quadrant (%d,%d)+%d outside %dx%d raster",
			errs.ErrInvalidDimensions, top, left, size, r.Rows(), r.Cols())
	}

	cfg := NewBuilderConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	b := builder{
		raster:    r,
		metric:    cfg.metric,
		minSize:   cfg.minSize,
		maxDepth:  cfg.maxDepth,
		threshold: float64(threshold),
	}

	return b.build(top, left, size, 0), nil
}

// BuildRaster builds the quadtree of the largest top-left square of r.
//
// Pixels outside that square (the right strip of a wide raster or the bottom
// strip of a tall one) are not represented in the tree.
func BuildRaster(r *raster.Raster, threshold int, opts ...BuilderOption) (*Node, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: nil raster", errs.ErrMalformedInput)
	}

	return Build(r, 0, 0, r.Square(), threshold, opts...)
}

type builder struct {
	raster    *raster.Raster
	metric    metric.Metric
	minSize   int
	maxDepth  int
	threshold float64
}

func (b *builder) build(top, left, size, depth int) *Node {
	node := &Node{
		Color: metric.Mean(b.raster, top, left, size),
		Area:  uint32(size * size), //nolint: gosec
	}

	if !b.canSplit(size, depth) {
		return node
	}

	if b.metric.Score(b.raster, top, left, size, node.Color) <= b.threshold {
		return node
	}

	half := size / 2
	node.TopLeft = b.build(top, left, half, depth+1)
	node.TopRight = b.build(top, left+half, half, depth+1)
	node.BottomLeft = b.build(top+half, left, half, depth+1)
	node.BottomRight = b.build(top+half, left+half, half, depth+1)

	return node
}

func (b *builder) canSplit(size, depth int) bool {
	if size <= 1 {
		return false
	}
	if size/2 < b.minSize {
		return false
	}
	if b.maxDepth > 0 && depth >= b.maxDepth {
		return false
	}

	return true
}

// MaxDepthFor returns the deepest level a tree of the given side can reach,
// floor(log2(size)). Build recurses at most this deep.
func MaxDepthFor(size int) int {
	if size <= 1 {
		return 0
	}

	return bits.Len(uint(size)) - 1
}
