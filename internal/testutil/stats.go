package testutil

import (
	"math"
	"sort"
)

// KSUniform returns the Kolmogorov-Smirnov statistic of samples against the
// uniform distribution on [lo, hi]. The input is not modified.
func KSUniform(samples []float64, lo, hi float64) float64 {
	n := len(samples)
	if n == 0 || hi <= lo {
		return math.NaN()
	}
	sorted := append([]float64(nil), samples...)
	sort.Float64s(sorted)

	var d float64
	fn := float64(n)
	for i, v := range sorted {
		cdf := (v - lo) / (hi - lo)
		cdf = math.Min(math.Max(cdf, 0), 1)
		above := float64(i+1)/fn - cdf
		below := cdf - float64(i)/fn
		d = math.Max(d, math.Max(above, below))
	}
	return d
}

// KSCritical returns the approximate large-sample critical value of the
// one-sample KS statistic at significance alpha 0.001.
func KSCritical(n int) float64 {
	return 1.95 / math.Sqrt(float64(n))
}
