package level

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-ambient/internal/testutil"
)

func TestCalculateSine(t *testing.T) {
	x := testutil.DeterministicSine(1000, 48000, 0.5, 48000)
	s := Calculate(x)

	if s.Length != 48000 {
		t.Fatalf("Length = %d", s.Length)
	}
	if math.Abs(s.RMS-0.5/math.Sqrt2) > 1e-6 {
		t.Fatalf("RMS = %v, want %v", s.RMS, 0.5/math.Sqrt2)
	}
	if math.Abs(s.Peak-0.5) > 1e-6 {
		t.Fatalf("Peak = %v, want 0.5", s.Peak)
	}
	if math.Abs(s.CrestdB-3.0103) > 1e-3 {
		t.Fatalf("CrestdB = %v, want 3.01", s.CrestdB)
	}
	if math.Abs(s.DC) > 1e-9 {
		t.Fatalf("DC = %v, want 0", s.DC)
	}
}

func TestCalculateEmpty(t *testing.T) {
	s := Calculate(nil)
	if s.Length != 0 || !math.IsInf(s.RMSdB, -1) || !math.IsInf(s.PeakdB, -1) {
		t.Fatalf("unexpected empty stats: %+v", s)
	}
}

func TestMeterMatchesCalculate(t *testing.T) {
	x := testutil.DeterministicNoise(9, 0.3, 10000)
	want := Calculate(x)

	var m Meter
	for start := 0; start < len(x); start += 333 {
		end := min(start+333, len(x))
		m.Update(x[start:end])
	}
	got := m.Result()
	if got.Length != want.Length || math.Abs(got.RMS-want.RMS) > 1e-12 || got.Peak != want.Peak {
		t.Fatalf("streamed %+v != batch %+v", got, want)
	}
}

func TestMeterShortTerm(t *testing.T) {
	m := NewMeter(48000, 0.05)
	block := testutil.DC(0.5, 480)
	for i := 0; i < 100; i++ {
		m.Update(block)
	}
	if st := m.ShortTermRMS(); math.Abs(st-0.5) > 1e-3 {
		t.Fatalf("ShortTermRMS = %v, want 0.5", st)
	}

	silence := make([]float64, 480)
	for i := 0; i < 100; i++ {
		m.Update(silence)
	}
	if st := m.ShortTermRMS(); st > 0.01 {
		t.Fatalf("ShortTermRMS after 1 s of silence = %v", st)
	}

	m.Reset()
	if m.Result().Length != 0 || m.ShortTermRMS() != 0 {
		t.Fatal("Reset() kept data")
	}
}
