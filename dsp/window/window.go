// Package window generates spectral analysis windows.
package window

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Type selects a window shape.
type Type int

const (
	TypeRectangular Type = iota
	TypeHann
	TypeBlackmanHarris4Term
)

func (t Type) String() string {
	switch t {
	case TypeRectangular:
		return "rectangular"
	case TypeHann:
		return "hann"
	case TypeBlackmanHarris4Term:
		return "blackman-harris"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

var errMismatchedLength = errors.New("window: samples and coefficients must have same length")

// cosine-sum coefficients a0 - a1 cos + a2 cos2 - a3 cos3.
var cosineTerms = map[Type][]float64{
	TypeRectangular:         {1},
	TypeHann:                {0.5, 0.5},
	TypeBlackmanHarris4Term: {0.35875, 0.48829, 0.14128, 0.01168},
}

// Option configures Generate.
type Option func(*config)

type config struct {
	periodic bool
}

// WithPeriodic generates the DFT-even (periodic) variant used for
// overlapped spectral analysis.
func WithPeriodic() Option {
	return func(c *config) { c.periodic = true }
}

// Generate returns size coefficients of window t.
func Generate(t Type, size int, opts ...Option) ([]float64, error) {
	if size <= 0 {
		return nil, fmt.Errorf("window size must be > 0: %d", size)
	}
	terms, ok := cosineTerms[t]
	if !ok {
		return nil, fmt.Errorf("window: unknown type %v", t)
	}
	var cfg config
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	out := make([]float64, size)
	if size == 1 {
		out[0] = 1
		return out, nil
	}
	denom := float64(size - 1)
	if cfg.periodic {
		denom = float64(size)
	}
	for n := range out {
		x := 2 * math.Pi * float64(n) / denom
		v, sign := 0.0, 1.0
		for k, a := range terms {
			v += sign * a * math.Cos(float64(k)*x)
			sign = -sign
		}
		out[n] = v
	}
	return out, nil
}

// Apply multiplies samples by coeffs in place.
func Apply(samples, coeffs []float64) error {
	if len(samples) != len(coeffs) {
		return errMismatchedLength
	}
	vecmath.MulBlockInPlace(samples, coeffs)
	return nil
}

// ApplyTo writes samples*coeffs into dst.
func ApplyTo(dst, samples, coeffs []float64) error {
	if len(samples) != len(coeffs) || len(dst) != len(samples) {
		return errMismatchedLength
	}
	vecmath.MulBlock(dst, samples, coeffs)
	return nil
}

// CoherentGain returns sum(w)/N.
func CoherentGain(coeffs []float64) float64 {
	if len(coeffs) == 0 {
		return 0
	}
	return vecmath.Sum(coeffs) / float64(len(coeffs))
}

// PowerSum returns sum(w^2), the normalization of a power spectral density.
func PowerSum(coeffs []float64) float64 {
	return vecmath.DotProduct(coeffs, coeffs)
}

// ENBW returns the equivalent noise bandwidth in bins.
func ENBW(coeffs []float64) float64 {
	s := vecmath.Sum(coeffs)
	if s == 0 {
		return 0
	}
	return float64(len(coeffs)) * PowerSum(coeffs) / (s * s)
}
