package sim

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// meanStdDev returns the sample mean and sample standard deviation of xs.
// The mean of an empty sample is NaN; the deviation of fewer than two
// samples is 0.
func meanStdDev(xs []float64) (mean, stdDev float64) {
	switch len(xs) {
	case 0:
		return math.NaN(), 0
	case 1:
		return xs[0], 0
	}
	return stat.Mean(xs, nil), stat.StdDev(xs, nil)
}
