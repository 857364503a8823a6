package ambient

import (
	"fmt"

	"github.com/cwbudde/algo-ambient/dsp/effects/modulation"
)

// ModulationRoute configures one LFO destination.
type ModulationRoute struct {
	Enabled bool
	RateHz  float64
	Depth   float64
}

// ModulationConfig configures the three slow LFOs. Timbre depth multiplies
// the smoothed mod parameter; breathe depth is a relative gain swing; pan
// depth is the pan excursion in [-1, 1].
type ModulationConfig struct {
	Timbre  ModulationRoute
	Breathe ModulationRoute
	Pan     ModulationRoute
}

// DefaultModulation returns the stock routes.
func DefaultModulation() ModulationConfig {
	return ModulationConfig{
		Timbre:  ModulationRoute{Enabled: true, RateHz: 0.025, Depth: 1},
		Breathe: ModulationRoute{Enabled: true, RateHz: 0.02, Depth: 0.05},
		Pan:     ModulationRoute{Enabled: true, RateHz: 0.02, Depth: 0.3},
	}
}

// ModulationFrame is the LFO output for one control slice.
type ModulationFrame struct {
	// Timbre is a unit-scaled offset, multiplied by the mod depth in Hz.
	Timbre float64
	// Breathe is the multiplicative gain factor, 1 when disabled.
	Breathe float64
	// Pan is the pan position, 0 when disabled.
	Pan float64
}

// Modulator owns the LFOs. It is driven by the generation path and never
// reset by mode changes.
type Modulator struct {
	cfg     ModulationConfig
	timbre  *modulation.LFO
	breathe *modulation.LFO
	pan     *modulation.LFO
}

// NewModulator builds the LFOs described by cfg.
func NewModulator(cfg ModulationConfig) (*Modulator, error) {
	timbre, err := newRouteLFO("timbre", cfg.Timbre)
	if err != nil {
		return nil, err
	}
	breathe, err := newRouteLFO("breathe", cfg.Breathe)
	if err != nil {
		return nil, err
	}
	if cfg.Breathe.Depth > 1 {
		return nil, fmt.Errorf("modulation: breathe depth must be in [0, 1]: %f", cfg.Breathe.Depth)
	}
	pan, err := newRouteLFO("pan", cfg.Pan)
	if err != nil {
		return nil, err
	}
	if cfg.Pan.Depth > 1 {
		return nil, fmt.Errorf("modulation: pan depth must be in [0, 1]: %f", cfg.Pan.Depth)
	}
	return &Modulator{cfg: cfg, timbre: timbre, breathe: breathe, pan: pan}, nil
}

func newRouteLFO(name string, r ModulationRoute) (*modulation.LFO, error) {
	lfo, err := modulation.NewLFO(modulation.WithLFORateHz(r.RateHz), modulation.WithLFODepth(r.Depth))
	if err != nil {
		return nil, fmt.Errorf("modulation: %s: %w", name, err)
	}
	return lfo, nil
}

// Config returns the routes the modulator was built with.
func (m *Modulator) Config() ModulationConfig {
	return m.cfg
}

// Step samples every LFO at the start of a slice and then advances them
// by dt seconds.
func (m *Modulator) Step(dt float64) ModulationFrame {
	f := ModulationFrame{Breathe: 1}
	if m.cfg.Timbre.Enabled {
		f.Timbre = m.timbre.Value()
	}
	if m.cfg.Breathe.Enabled {
		f.Breathe = 1 + m.breathe.Value()
	}
	if m.cfg.Pan.Enabled {
		f.Pan = m.pan.Value()
	}
	m.timbre.Advance(dt)
	m.breathe.Advance(dt)
	m.pan.Advance(dt)
	return f
}

// Reset returns all LFOs to their start phase.
func (m *Modulator) Reset() {
	m.timbre.Reset()
	m.breathe.Reset()
	m.pan.Reset()
}
