// Package metric provides the split scores the quadtree builder compares
// against its threshold.
//
// Every metric scores a square quadrant of a raster given the quadrant's mean
// color; a higher score means less uniform. The builder splits a quadrant when
// its score is strictly greater than the threshold.
//
// Variance is the default and reproduces the reference integer scoring
// exactly. The other metrics come from the interactive compression tool the
// format originated in and are useful when a threshold in the color-distance
// domain is easier to reason about.
package metric

import (
	"fmt"

	"github.com/arloliu/quadpack/format"
	"github.com/arloliu/quadpack/raster"
)

// Metric scores the quadrant [top, top+size) x [left, left+size).
//
// mean is the quadrant's integer mean color as stored on the node; metrics
// that ignore it (MaxDiff, Entropy) accept any value. SSIM compares the
// quadrant against a block of exactly this color.
type Metric interface {
	Type() format.MetricType
	Score(r *raster.Raster, top, left, size int, mean raster.Color) float64
}

var builtinMetrics = map[format.MetricType]Metric{
	format.MetricVariance: Variance{},
	format.MetricMAD:      MAD{},
	format.MetricMaxDiff:  MaxDiff{},
	format.MetricEntropy:  Entropy{},
	format.MetricSSIM:     SSIM{},
}

// Get returns the built-in metric for t.
func Get(t format.MetricType) (Metric, error) {
	if m, ok := builtinMetrics[t]; ok {
		return m, nil
	}

	return nil, fmt.Errorf("unsupported metric type: %s", t)
}

// Mean returns the per-channel arithmetic mean of the quadrant, rounded toward
// zero.
func Mean(r *raster.Raster, top, left, size int) raster.Color {
	var sumR, sumG, sumB uint64
	for row := top; row < top+size; row++ {
		for _, c := range r.Row(row)[left : left+size] {
			sumR += uint64(c.R)
			sumG += uint64(c.G)
			sumB += uint64(c.B)
		}
	}

	n := uint64(size) * uint64(size) //nolint: gosec
	return raster.Color{
		R: uint8(sumR / n), //nolint: gosec
		G: uint8(sumG / n), //nolint: gosec
		B: uint8(sumB / n), //nolint: gosec
	}
}
