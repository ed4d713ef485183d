package metric

import (
	"math"

	"github.com/arloliu/quadpack/format"
	"github.com/arloliu/quadpack/raster"
)

// MAD is the mean absolute deviation from the quadrant mean, averaged over the
// three channels. Scores range over [0, 255].
type MAD struct{}

var _ Metric = MAD{}

func (MAD) Type() format.MetricType { return format.MetricMAD }

// Score implements Metric.
func (MAD) Score(r *raster.Raster, top, left, size int, mean raster.Color) float64 {
	var sum int64
	for row := top; row < top+size; row++ {
		for _, c := range r.Row(row)[left : left+size] {
			sum += absDiff(c.R, mean.R) + absDiff(c.G, mean.G) + absDiff(c.B, mean.B)
		}
	}

	return float64(sum) / (3 * float64(size) * float64(size))
}

// MaxDiff is the per-channel range (max - min) averaged over the three
// channels. Scores range over [0, 255].
type MaxDiff struct{}

var _ Metric = MaxDiff{}

func (MaxDiff) Type() format.MetricType { return format.MetricMaxDiff }

// Score implements Metric.
func (MaxDiff) Score(r *raster.Raster, top, left, size int, _ raster.Color) float64 {
	lo := [3]uint8{255, 255, 255}
	hi := [3]uint8{}
	for row := top; row < top+size; row++ {
		for _, c := range r.Row(row)[left : left+size] {
			for i, v := range [3]uint8{c.R, c.G, c.B} {
				lo[i] = min(lo[i], v)
				hi[i] = max(hi[i], v)
			}
		}
	}

	total := int(hi[0]-lo[0]) + int(hi[1]-lo[1]) + int(hi[2]-lo[2])

	return float64(total) / 3
}

// Entropy is the Shannon entropy (bits) of each channel's histogram, averaged
// over the three channels. Scores range over [0, 8].
type Entropy struct{}

var _ Metric = Entropy{}

func (Entropy) Type() format.MetricType { return format.MetricEntropy }

// Score implements Metric.
func (Entropy) Score(r *raster.Raster, top, left, size int, _ raster.Color) float64 {
	var hist [3][256]int
	for row := top; row < top+size; row++ {
		for _, c := range r.Row(row)[left : left+size] {
			hist[0][c.R]++
			hist[1][c.G]++
			hist[2][c.B]++
		}
	}

	n := float64(size) * float64(size)
	var total float64
	for ch := range hist {
		for _, count := range hist[ch] {
			if count == 0 {
				continue
			}
			p := float64(count) / n
			total -= p * math.Log2(p)
		}
	}

	return total / 3
}

func absDiff(a, b uint8) int64 {
	if a > b {
		return int64(a - b)
	}

	return int64(b - a)
}
