package core

import (
	"fmt"
	"math"
)

const defaultEpsilon = 1e-12

// denormalFloor is the magnitude below which recursive state is snapped to zero.
const denormalFloor = 1e-30

// Clamp limits value to [lo, hi]. Swapped bounds are reordered and NaN
// maps to lo.
func Clamp(value, lo, hi float64) float64 {
	if lo > hi {
		lo, hi = hi, lo
	}
	if math.IsNaN(value) {
		return lo
	}
	return math.Min(math.Max(value, lo), hi)
}

// NearlyEqual reports whether a and b agree within eps, either absolutely
// or relative to the larger magnitude.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}
	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}
	scale := math.Max(math.Abs(a), math.Abs(b))
	return scale > 0 && diff/scale <= eps
}

// FlushDenormals snaps values with magnitude below 1e-30 to zero.
func FlushDenormals(x float64) float64 {
	if math.Abs(x) < denormalFloor {
		return 0
	}
	return x
}

// IsFinite reports whether x is neither NaN nor infinite.
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// Lerp interpolates between a and b with t in [0, 1].
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// DBToLinear converts an amplitude level in dB to a linear factor.
func DBToLinear(db float64) float64 {
	return math.Pow(10, db/20)
}

// LinearToDB converts a linear amplitude to dB.
// Zero maps to -Inf and negative input to NaN.
func LinearToDB(linear float64) float64 {
	switch {
	case linear < 0:
		return math.NaN()
	case linear == 0:
		return math.Inf(-1)
	}
	return 20 * math.Log10(linear)
}

// DBPowerToLinear converts a power level in dB to a linear power ratio.
func DBPowerToLinear(db float64) float64 {
	return math.Pow(10, db/10)
}

// LinearPowerToDB converts a linear power ratio to dB.
// Zero maps to -Inf and negative input to NaN.
func LinearPowerToDB(power float64) float64 {
	switch {
	case power < 0:
		return math.NaN()
	case power == 0:
		return math.Inf(-1)
	}
	return 10 * math.Log10(power)
}

// Range is an inclusive parameter interval.
type Range struct {
	Min float64
	Max float64
}

// Contains reports whether v lies inside r.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Clamp limits v to r.
func (r Range) Clamp(v float64) float64 {
	return Clamp(v, r.Min, r.Max)
}

// Check returns an error naming the parameter when v is outside r or not finite.
func (r Range) Check(name string, v float64) error {
	if !IsFinite(v) || !r.Contains(v) {
		return fmt.Errorf("%s must be in [%g, %g]: %f", name, r.Min, r.Max, v)
	}
	return nil
}
