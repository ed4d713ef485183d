package metric

import (
	"math/bits"

	"github.com/arloliu/quadpack/format"
	"github.com/arloliu/quadpack/raster"
)

// SSIMScale maps 1 - SSIM from [0, 1] onto [0, SSIMScale] so that integer
// thresholds can select it.
const SSIMScale = 1000

const (
	ssimC1 = 6.5025  // (0.01 * 255)^2
	ssimC2 = 58.5225 // (0.03 * 255)^2

	lumaR = 0.299
	lumaG = 0.587
	lumaB = 0.114
)

// SSIM is the structural dissimilarity between the quadrant and a uniform
// block of its mean color: 1 - SSIM with the channel SSIMs weighted by their
// luma contribution, scaled by SSIMScale.
//
// The uniform block has no variance and no covariance with the quadrant, so
// each channel reduces to
//
//	(2*m*mu + C1) * C2 / ((m^2 + mu^2 + C1) * (var + C2))
//
// where m and var are the channel mean and variance of the quadrant and mu is
// the stored integer mean.
type SSIM struct{}

var _ Metric = SSIM{}

func (SSIM) Type() format.MetricType { return format.MetricSSIM }

// Score implements Metric.
func (SSIM) Score(r *raster.Raster, top, left, size int, mean raster.Color) float64 {
	var sum, sumSq [3]uint64
	for row := top; row < top+size; row++ {
		for _, c := range r.Row(row)[left : left+size] {
			for i, v := range [3]uint64{uint64(c.R), uint64(c.G), uint64(c.B)} {
				sum[i] += v
				sumSq[i] += v * v
			}
		}
	}

	n := uint64(size) * uint64(size) //nolint: gosec
	mu := [3]float64{float64(mean.R), float64(mean.G), float64(mean.B)}
	weights := [3]float64{lumaR, lumaG, lumaB}

	// Weights sum to 1, so summing weighted (1 - SSIM) per channel equals
	// 1 - weighted SSIM and keeps a uniform quadrant at exactly 0.
	var score float64
	for i := range sum {
		m := float64(sum[i]) / float64(n)
		variance := spread(n, sum[i], sumSq[i]) / (float64(n) * float64(n))

		num := (2*m*mu[i] + ssimC1) * ssimC2
		den := (m*m + mu[i]*mu[i] + ssimC1) * (variance + ssimC2)
		score += weights[i] * (1 - num/den)
	}

	return score * SSIMScale
}

// spread returns n*sumSq - sum*sum, computed in 128 bits so it is exactly 0
// for a uniform channel.
func spread(n, sum, sumSq uint64) float64 {
	hi1, lo1 := bits.Mul64(n, sumSq)
	hi2, lo2 := bits.Mul64(sum, sum)
	lo, borrow := bits.Sub64(lo1, lo2, 0)
	hi, _ := bits.Sub64(hi1, hi2, borrow)

	return float64(hi)*(1<<64) + float64(lo)
}
