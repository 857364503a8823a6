package ambient

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-ambient/internal/testutil"
)

func newTestChain(t *testing.T) *FilterChain {
	t.Helper()
	c, err := NewFilterChain(testRate, DefaultFilterStages())
	if err != nil {
		t.Fatalf("NewFilterChain() error = %v", err)
	}
	return c
}

func TestFilterChainResponse(t *testing.T) {
	c := newTestChain(t)
	white := DefaultPresets().White
	c.Retune(white.HighpassHz, white.LowpassHz, white.LowpassQ)

	tests := []struct {
		freq   float64
		lo, hi float64
	}{
		{50, math.Inf(-1), -20},
		{700, -6, 3},
		{10000, math.Inf(-1), -30},
	}
	for _, tc := range tests {
		got := c.ResponseDB(tc.freq)
		if got < tc.lo || got > tc.hi {
			t.Fatalf("response at %g Hz = %.2f dB, want in [%g, %g]", tc.freq, got, tc.lo, tc.hi)
		}
	}
}

func TestFilterChainRetune(t *testing.T) {
	c := newTestChain(t)
	if !c.Retune(350, 1100, 1) {
		t.Fatal("first Retune reported no change")
	}
	if c.Retune(350, 1100, 1) {
		t.Fatal("identical Retune reported a change")
	}
	if !c.Retune(350, 1000, 1) {
		t.Fatal("new lowpass cutoff reported no change")
	}

	c.Retune(5, 30000, 1)
	hp, lp, q := c.OperatingPoint()
	if hp != 20 || lp != 0.45*testRate || q != 1 {
		t.Fatalf("operating point = (%g, %g, %g), want clamped (20, %g, 1)", hp, lp, q, 0.45*testRate)
	}
	c.Retune(math.NaN(), 1000, math.NaN())
	hp, _, q = c.OperatingPoint()
	if hp != 20 || q != 1 {
		t.Fatalf("NaN operating point = (%g, %g)", hp, q)
	}
}

func TestFilterChainLimitsPeaks(t *testing.T) {
	c := newTestChain(t)
	c.Retune(350, 1100, 1)

	x := testutil.DeterministicSine(700, testRate, 4, testRate/2)
	c.Process(x)
	testutil.RequireFinite(t, x)

	settled := x[len(x)/5:]
	peak := 0.0
	for _, v := range settled {
		peak = math.Max(peak, math.Abs(v))
	}
	if peak > 1 {
		t.Fatalf("limited peak = %g, want <= 1", peak)
	}
	if m := c.LimiterMetrics(); m.MinGain >= 1 {
		t.Fatalf("limiter never engaged: %+v", m)
	}
}

func TestFilterChainRetuneKeepsState(t *testing.T) {
	a := newTestChain(t)
	b := newTestChain(t)
	a.Retune(350, 1100, 1)
	b.Retune(350, 1100, 1)

	x := testutil.DeterministicNoise(3, 0.1, 256)
	ya := append([]float64(nil), x...)
	yb := append([]float64(nil), x...)
	a.Process(ya)
	b.Process(yb)

	// b is reset after the retune, a keeps ringing.
	a.Retune(360, 1050, 1)
	b.Retune(360, 1050, 1)
	b.Reset()
	za := []float64{0, 0, 0, 0}
	zb := []float64{0, 0, 0, 0}
	a.Process(za)
	b.Process(zb)
	if za[0] == 0 {
		t.Fatal("filter memory lost across retune")
	}
	for _, v := range zb {
		if v != 0 {
			t.Fatalf("reset chain rang out: %v", zb)
		}
	}
}

func TestNewFilterChainValidation(t *testing.T) {
	tests := []struct {
		name   string
		rate   float64
		mutate func(*FilterStageConfig)
	}{
		{"zero rate", 0, func(*FilterStageConfig) {}},
		{"cutoff ratio", testRate, func(c *FilterStageConfig) { c.MaxCutoffRatio = 0.6 }},
		{"min cutoff", testRate, func(c *FilterStageConfig) { c.MinCutoffHz = 0 }},
		{"notch above nyquist", testRate, func(c *FilterStageConfig) { c.NotchHz = 30000 }},
		{"highpass q", testRate, func(c *FilterStageConfig) { c.HighpassQ = 0 }},
		{"limiter knee", testRate, func(c *FilterStageConfig) { c.Limiter.KneeDB = 100 }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultFilterStages()
			tc.mutate(&cfg)
			if _, err := NewFilterChain(tc.rate, cfg); err == nil {
				t.Fatal("NewFilterChain() succeeded, want error")
			}
		})
	}
	if _, err := NewFilterChain(-1, DefaultFilterStages()); !errors.Is(err, ErrInvalidSampleRate) {
		t.Fatalf("negative rate error = %v", err)
	}
}
