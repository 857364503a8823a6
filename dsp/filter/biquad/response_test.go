package biquad

import (
	"math"
	"math/cmplx"
	"testing"
)

func TestMagnitudeSquaredMatchesResponse(t *testing.T) {
	const sr = 48000.0
	for _, freq := range []float64{100, 500, 1000, 5000, 10000, 20000} {
		h := testCoeffs.Response(freq, sr)
		want := real(h)*real(h) + imag(h)*imag(h)
		if got := testCoeffs.MagnitudeSquared(freq, sr); !almostEqual(got, want, 1e-10) {
			t.Fatalf("freq=%v: MagnitudeSquared=%.15f, |H|^2=%.15f", freq, got, want)
		}
		if db := testCoeffs.MagnitudeDB(freq, sr); !almostEqual(db, 10*math.Log10(want), 1e-9) {
			t.Fatalf("freq=%v: MagnitudeDB=%v", freq, db)
		}
	}
}

func TestResponseIdentity(t *testing.T) {
	c := Identity()
	for _, freq := range []float64{0, 100, 1000, 24000} {
		h := c.Response(freq, 48000)
		if !almostEqual(cmplx.Abs(h), 1, 1e-12) || !almostEqual(cmplx.Phase(h), 0, 1e-12) {
			t.Fatalf("freq=%v: H=%v, want 1", freq, h)
		}
	}
}

func TestImpulseResponseRestoresState(t *testing.T) {
	s := NewSection(testCoeffs)
	s.ProcessSample(0.7)
	saved := s.State()

	ir := s.ImpulseResponse(4)
	want := []float64{0.25, 0.55, 0.35, 0.048}
	for i := range want {
		if !almostEqual(ir[i], want[i], eps) {
			t.Fatalf("ir[%d] = %v, want %v", i, ir[i], want[i])
		}
	}
	if s.State() != saved {
		t.Fatalf("state not restored: %v != %v", s.State(), saved)
	}
	if s.ImpulseResponse(0) != nil {
		t.Fatal("ImpulseResponse(0) should be nil")
	}
}
