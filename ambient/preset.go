package ambient

import (
	"fmt"
	"math"
)

// Preset is the operating point of one mode.
type Preset struct {
	Gain       float64
	HighpassHz float64
	LowpassHz  float64
	LowpassQ   float64
	ModDepthHz float64
}

// Value returns the field addressed by p.
func (ps Preset) Value(p Parameter) (float64, error) {
	switch p {
	case ParamGain:
		return ps.Gain, nil
	case ParamHighpass:
		return ps.HighpassHz, nil
	case ParamLowpass:
		return ps.LowpassHz, nil
	case ParamLowpassQ:
		return ps.LowpassQ, nil
	case ParamMod:
		return ps.ModDepthHz, nil
	}
	return 0, fmt.Errorf("%w: %d", ErrUnknownParameter, int(p))
}

// With returns a copy with p set to v, clamped to the parameter range.
// NaN is rejected and leaves the preset unchanged.
func (ps Preset) With(p Parameter, v float64) (Preset, error) {
	r, err := p.Range()
	if err != nil {
		return ps, err
	}
	if math.IsNaN(v) {
		return ps, fmt.Errorf("%w: %s", ErrInvalidValue, p)
	}
	ps.set(p, r.Clamp(v))
	return ps, nil
}

func (ps *Preset) set(p Parameter, v float64) {
	switch p {
	case ParamGain:
		ps.Gain = v
	case ParamHighpass:
		ps.HighpassHz = v
	case ParamLowpass:
		ps.LowpassHz = v
	case ParamLowpassQ:
		ps.LowpassQ = v
	case ParamMod:
		ps.ModDepthHz = v
	}
}

// Clamp limits every field to its parameter range. NaN fields take the
// range minimum.
func (ps Preset) Clamp() Preset {
	for _, p := range Parameters {
		r, _ := p.Range()
		v, _ := ps.Value(p)
		ps.set(p, r.Clamp(v))
	}
	return ps
}

// Presets holds the built-in operating points.
type Presets struct {
	White Preset
	Pink  Preset
	Brown Preset
}

// DefaultPresets returns the stock tuning: brown is louder and darker,
// pink sits in between, white is the brightest.
func DefaultPresets() Presets {
	return Presets{
		White: Preset{Gain: 0.12, HighpassHz: 350, LowpassHz: 1100, LowpassQ: 1, ModDepthHz: 80},
		Pink:  Preset{Gain: 0.12, HighpassHz: 500, LowpassHz: 800, LowpassQ: 1, ModDepthHz: 100},
		Brown: Preset{Gain: 0.25, HighpassHz: 250, LowpassHz: 600, LowpassQ: 1, ModDepthHz: 150},
	}
}

// For returns the preset of a built-in mode. Custom and invalid modes
// return the white preset.
func (ps Presets) For(m Mode) Preset {
	switch m {
	case Pink:
		return ps.Pink
	case Brown:
		return ps.Brown
	default:
		return ps.White
	}
}
