package modulation

import (
	"fmt"
	"math"
)

const (
	defaultLFORateHz = 1.0
	defaultLFODepth  = 1.0
)

// LFOOption mutates LFO construction parameters.
type LFOOption func(*lfoConfig) error

type lfoConfig struct {
	rateHz float64
	depth  float64
	phase  float64
}

// WithLFORateHz sets the oscillator frequency in Hz.
func WithLFORateHz(rateHz float64) LFOOption {
	return func(cfg *lfoConfig) error {
		if rateHz <= 0 || math.IsNaN(rateHz) || math.IsInf(rateHz, 0) {
			return fmt.Errorf("lfo rate must be > 0 and finite: %f", rateHz)
		}
		cfg.rateHz = rateHz
		return nil
	}
}

// WithLFODepth sets the output amplitude.
func WithLFODepth(depth float64) LFOOption {
	return func(cfg *lfoConfig) error {
		if depth < 0 || math.IsNaN(depth) || math.IsInf(depth, 0) {
			return fmt.Errorf("lfo depth must be >= 0 and finite: %f", depth)
		}
		cfg.depth = depth
		return nil
	}
}

// WithLFOPhase sets the start phase in cycles, [0, 1).
func WithLFOPhase(phase float64) LFOOption {
	return func(cfg *lfoConfig) error {
		if phase < 0 || phase >= 1 || math.IsNaN(phase) {
			return fmt.Errorf("lfo phase must be in [0, 1): %f", phase)
		}
		cfg.phase = phase
		return nil
	}
}

// LFO is a sine oscillator whose phase is advanced by elapsed time rather
// than per sample, so it can run at any control rate.
type LFO struct {
	rateHz float64
	depth  float64
	phase  float64
}

// NewLFO returns a 1 Hz unit-depth LFO unless opts say otherwise.
func NewLFO(opts ...LFOOption) (*LFO, error) {
	cfg := lfoConfig{rateHz: defaultLFORateHz, depth: defaultLFODepth}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	return &LFO{rateHz: cfg.rateHz, depth: cfg.depth, phase: cfg.phase}, nil
}

// Value returns depth * sin(2*pi*phase) without advancing.
func (l *LFO) Value() float64 {
	return l.depth * math.Sin(2*math.Pi*l.phase)
}

// Advance moves the phase by dt seconds and returns the new value.
func (l *LFO) Advance(dt float64) float64 {
	l.phase += l.rateHz * dt
	l.phase -= math.Floor(l.phase)
	return l.Value()
}

// Phase returns the phase in cycles.
func (l *LFO) Phase() float64 { return l.phase }

// RateHz returns the oscillator frequency.
func (l *LFO) RateHz() float64 { return l.rateHz }

// Depth returns the output amplitude.
func (l *LFO) Depth() float64 { return l.depth }

// SetRateHz changes the frequency without a phase jump.
func (l *LFO) SetRateHz(rateHz float64) error {
	if rateHz <= 0 || math.IsNaN(rateHz) || math.IsInf(rateHz, 0) {
		return fmt.Errorf("lfo rate must be > 0 and finite: %f", rateHz)
	}
	l.rateHz = rateHz
	return nil
}

// SetDepth changes the output amplitude.
func (l *LFO) SetDepth(depth float64) error {
	if depth < 0 || math.IsNaN(depth) || math.IsInf(depth, 0) {
		return fmt.Errorf("lfo depth must be >= 0 and finite: %f", depth)
	}
	l.depth = depth
	return nil
}

// Reset returns the phase to zero.
func (l *LFO) Reset() {
	l.phase = 0
}
