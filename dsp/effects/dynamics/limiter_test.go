package dynamics

import (
	"math"
	"testing"
)

func TestLimiterPreset(t *testing.T) {
	l, err := NewLimiter(48000)
	if err != nil {
		t.Fatalf("NewLimiter() error = %v", err)
	}
	c := l.Compressor()
	if c.Ratio() != 100 || c.Knee() != 0 || c.MakeupGain() != 0 || c.Threshold() != 0 {
		t.Fatalf("unexpected preset: ratio %v knee %v makeup %v threshold %v",
			c.Ratio(), c.Knee(), c.MakeupGain(), c.Threshold())
	}
}

func TestLimiterOptionsOverridePreset(t *testing.T) {
	l, err := NewLimiter(48000, WithThreshold(-3), WithKnee(6), WithRatio(20), WithAttack(3), WithRelease(250))
	if err != nil {
		t.Fatalf("NewLimiter() error = %v", err)
	}
	c := l.Compressor()
	if c.Threshold() != -3 || c.Ratio() != 20 || c.Knee() != 6 || c.Release() != 250 {
		t.Fatalf("options not applied: %+v", c)
	}
	if c.MakeupGain() != 0 {
		t.Fatalf("limiter must not add makeup gain, got %v", c.MakeupGain())
	}
}

func TestLimiterHoldsSustainedPeaks(t *testing.T) {
	const sr = 48000.0
	l, err := NewLimiter(sr, WithThreshold(-6))
	if err != nil {
		t.Fatal(err)
	}
	ceiling := math.Pow(10, -6.0/20)

	buf := make([]float64, int(sr/10))
	for i := range buf {
		buf[i] = 0.95 * math.Sin(2*math.Pi*200*float64(i)/sr)
	}
	l.ProcessInPlace(buf)

	// Skip the first attack period, then the output stays close to the ceiling.
	peak := 0.0
	for _, v := range buf[480:] {
		peak = math.Max(peak, math.Abs(v))
	}
	if peak > ceiling*1.1 {
		t.Fatalf("peak %v exceeds ceiling %v by more than 10%%", peak, ceiling)
	}
}

func TestLimiterTransparentBelowThreshold(t *testing.T) {
	l, err := NewLimiter(48000, WithThreshold(-3))
	if err != nil {
		t.Fatal(err)
	}
	for _, x := range []float64{0.01, -0.2, 0.3, -0.5} {
		if y := l.ProcessSample(x); math.Abs(y-x) > 1e-12 {
			t.Fatalf("ProcessSample(%v) = %v, want unchanged", x, y)
		}
	}
}
