package modulation

import (
	"math"
	"testing"
)

func TestLFOAdvance(t *testing.T) {
	l, err := NewLFO(WithLFORateHz(0.025))
	if err != nil {
		t.Fatalf("NewLFO() error = %v", err)
	}
	if v := l.Value(); v != 0 {
		t.Fatalf("initial value = %v, want 0", v)
	}

	// A quarter period reaches the crest.
	if v := l.Advance(10); math.Abs(v-1) > 1e-12 {
		t.Fatalf("value after 10 s = %v, want 1", v)
	}
	// Three more quarters wrap back to zero phase.
	l.Advance(30)
	if p := l.Phase(); p > 1e-9 && p < 1-1e-9 {
		t.Fatalf("phase after one period = %v, want 0", p)
	}
}

func TestLFOSmallStepsMatchOneBigStep(t *testing.T) {
	a, _ := NewLFO(WithLFORateHz(0.02), WithLFODepth(0.3))
	b, _ := NewLFO(WithLFORateHz(0.02), WithLFODepth(0.3))
	const dt = 128.0 / 48000
	for i := 0; i < 3750; i++ {
		a.Advance(dt)
	}
	b.Advance(3750 * dt)
	if math.Abs(a.Value()-b.Value()) > 1e-9 {
		t.Fatalf("stepwise %v != direct %v", a.Value(), b.Value())
	}
}

func TestLFOBounds(t *testing.T) {
	l, _ := NewLFO(WithLFORateHz(3), WithLFODepth(0.05), WithLFOPhase(0.1))
	for i := 0; i < 10000; i++ {
		if v := l.Advance(0.0007); math.Abs(v) > 0.05+1e-15 {
			t.Fatalf("step %d: |%v| exceeds depth", i, v)
		}
	}
}

func TestLFOValidation(t *testing.T) {
	tests := []struct {
		name string
		opt  LFOOption
	}{
		{"zero rate", WithLFORateHz(0)},
		{"inf rate", WithLFORateHz(math.Inf(1))},
		{"negative depth", WithLFODepth(-1)},
		{"phase one", WithLFOPhase(1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewLFO(tt.opt); err == nil {
				t.Fatal("expected error")
			}
		})
	}

	l, _ := NewLFO()
	if err := l.SetRateHz(-1); err == nil {
		t.Fatal("SetRateHz(-1) should fail")
	}
	if err := l.SetDepth(math.NaN()); err == nil {
		t.Fatal("SetDepth(NaN) should fail")
	}
	if err := l.SetRateHz(2); err != nil || l.RateHz() != 2 {
		t.Fatalf("SetRateHz(2) = %v, rate %v", err, l.RateHz())
	}
}

func TestLFOReset(t *testing.T) {
	l, _ := NewLFO()
	l.Advance(0.3)
	l.Reset()
	if l.Phase() != 0 {
		t.Fatalf("Phase() = %v after Reset", l.Phase())
	}
}
