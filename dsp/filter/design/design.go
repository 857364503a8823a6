package design

import (
	"math"

	"github.com/cwbudde/algo-ambient/dsp/filter/biquad"
)

// ButterworthQ is the Q of a maximally flat second-order section.
const ButterworthQ = 1 / math.Sqrt2

// prototype carries the shared RBJ intermediates for one design point.
type prototype struct {
	cw    float64
	alpha float64
}

func newPrototype(freq, q, sampleRate float64) (prototype, bool) {
	w0, ok := normalizedW0(freq, sampleRate)
	if !ok {
		return prototype{}, false
	}
	q = normalizedQ(q)
	return prototype{cw: math.Cos(w0), alpha: math.Sin(w0) / (2 * q)}, true
}

// Valid reports whether freq lies strictly between 0 and Nyquist.
func Valid(freq, sampleRate float64) bool {
	_, ok := normalizedW0(freq, sampleRate)
	return ok
}

// Lowpass designs a second-order lowpass with cutoff freq and quality q.
func Lowpass(freq, q, sampleRate float64) biquad.Coefficients {
	p, ok := newPrototype(freq, q, sampleRate)
	if !ok {
		return biquad.Coefficients{}
	}
	b1 := 1 - p.cw
	return normalizeBiquad(b1/2, b1, b1/2, 1+p.alpha, -2*p.cw, 1-p.alpha)
}

// Highpass designs a second-order highpass with cutoff freq and quality q.
func Highpass(freq, q, sampleRate float64) biquad.Coefficients {
	p, ok := newPrototype(freq, q, sampleRate)
	if !ok {
		return biquad.Coefficients{}
	}
	b1 := 1 + p.cw
	return normalizeBiquad(b1/2, -b1, b1/2, 1+p.alpha, -2*p.cw, 1-p.alpha)
}

// Peak designs a peaking equalizer with gainDB at freq. Negative gains cut
// a bell-shaped dip whose width is set by q.
func Peak(freq, gainDB, q, sampleRate float64) biquad.Coefficients {
	p, ok := newPrototype(freq, q, sampleRate)
	if !ok {
		return biquad.Coefficients{}
	}
	a := math.Pow(10, gainDB/40)
	return normalizeBiquad(
		1+p.alpha*a, -2*p.cw, 1-p.alpha*a,
		1+p.alpha/a, -2*p.cw, 1-p.alpha/a,
	)
}

// Notch designs a full-depth band-reject section at freq.
func Notch(freq, q, sampleRate float64) biquad.Coefficients {
	p, ok := newPrototype(freq, q, sampleRate)
	if !ok {
		return biquad.Coefficients{}
	}
	return normalizeBiquad(1, -2*p.cw, 1, 1+p.alpha, -2*p.cw, 1-p.alpha)
}

// HighShelf designs a second-order shelf that lifts everything above freq by
// gainDB. At freq itself the gain is gainDB/2.
func HighShelf(freq, gainDB, q, sampleRate float64) biquad.Coefficients {
	p, ok := newPrototype(freq, q, sampleRate)
	if !ok {
		return biquad.Coefficients{}
	}
	a := math.Pow(10, gainDB/40)
	beta := 2 * math.Sqrt(a) * p.alpha
	return normalizeBiquad(
		a*((a+1)+(a-1)*p.cw+beta), -2*a*((a-1)+(a+1)*p.cw), a*((a+1)+(a-1)*p.cw-beta),
		(a+1)-(a-1)*p.cw+beta, 2*((a-1)-(a+1)*p.cw), (a+1)-(a-1)*p.cw-beta,
	)
}

func normalizedW0(freq, sampleRate float64) (float64, bool) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return 0, false
	}
	if freq <= 0 || freq >= sampleRate/2 || math.IsNaN(freq) || math.IsInf(freq, 0) {
		return 0, false
	}
	return 2 * math.Pi * freq / sampleRate, true
}

func normalizedQ(q float64) float64 {
	if q <= 0 || math.IsNaN(q) || math.IsInf(q, 0) {
		return ButterworthQ
	}
	return q
}

func normalizeBiquad(b0, b1, b2, a0, a1, a2 float64) biquad.Coefficients {
	if a0 == 0 || math.IsNaN(a0) || math.IsInf(a0, 0) {
		return biquad.Coefficients{}
	}
	inv := 1 / a0
	return biquad.Coefficients{
		B0: b0 * inv,
		B1: b1 * inv,
		B2: b2 * inv,
		A1: a1 * inv,
		A2: a2 * inv,
	}
}
