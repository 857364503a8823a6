package testutil

import "testing"

func TestRequireHelpersPass(t *testing.T) {
	RequireFinite(t, []float64{0, 1, -1})
	RequireFinite32(t, []float32{0, 0.5})
	RequireBounded(t, []float64{0.2, -0.3}, 0.3)
	RequireSliceNearlyEqual(t, []float64{1, 2}, []float64{1.0005, 2}, 1e-3)
}
