package metric

import (
	"github.com/arloliu/quadpack/format"
	"github.com/arloliu/quadpack/raster"
)

// Variance is the mean squared per-channel deviation from the quadrant mean:
//
//	score = sum((R-mR)^2 + (G-mG)^2 + (B-mB)^2) / (3 * size * size)
//
// The division is integer division, so the score is always a whole number and
// comparing it against an integer threshold gives the reference behavior.
type Variance struct{}

var _ Metric = Variance{}

func (Variance) Type() format.MetricType { return format.MetricVariance }

// Score implements Metric.
func (Variance) Score(r *raster.Raster, top, left, size int, mean raster.Color) float64 {
	mr, mg, mb := int64(mean.R), int64(mean.G), int64(mean.B)

	var sum uint64
	for row := top; row < top+size; row++ {
		for _, c := range r.Row(row)[left : left+size] {
			dr := int64(c.R) - mr
			dg := int64(c.G) - mg
			db := int64(c.B) - mb
			sum += uint64(dr*dr + dg*dg + db*db) //nolint: gosec
		}
	}

	n := 3 * uint64(size) * uint64(size) //nolint: gosec

	return float64(sum / n)
}
