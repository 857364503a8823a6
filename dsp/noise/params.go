package noise

import "fmt"

// PinkBand is one leaky integrator of the pink filter bank.
type PinkBand struct {
	Decay float64
	Gain  float64
}

// Params holds the generator constants. The defaults reproduce the classic
// Kellett pink filter and a leaky-integrator brown generator.
type Params struct {
	WhiteScale float64

	// PinkBands are the six leaky bands b0..b5.
	PinkBands [6]PinkBand
	// PinkDirect weights the current white sample.
	PinkDirect float64
	// PinkDelayed is the gain of the one-sample-delayed band b6.
	PinkDelayed float64
	PinkScale   float64

	// BrownLeak sets both the integration step and the leak 1/(1+leak).
	BrownLeak  float64
	BrownScale float64
}

// DefaultParams returns the reference constants.
func DefaultParams() Params {
	return Params{
		WhiteScale: 0.2,
		PinkBands: [6]PinkBand{
			{Decay: 0.99886, Gain: 0.0555179},
			{Decay: 0.99332, Gain: 0.0750759},
			{Decay: 0.96900, Gain: 0.1538520},
			{Decay: 0.86650, Gain: 0.3104856},
			{Decay: 0.55000, Gain: 0.5329522},
			{Decay: -0.7616, Gain: -0.0168980},
		},
		PinkDirect:  0.5362,
		PinkDelayed: 0.115926,
		PinkScale:   0.15,
		BrownLeak:   0.02,
		BrownScale:  3.5,
	}
}

// Validate checks that the constants keep every generator bounded.
func (p Params) Validate() error {
	if p.WhiteScale < 0 {
		return fmt.Errorf("noise: white scale must be >= 0: %f", p.WhiteScale)
	}
	for i, b := range p.PinkBands {
		if b.Decay <= -1 || b.Decay >= 1 {
			return fmt.Errorf("noise: pink band %d decay must be in (-1, 1): %f", i, b.Decay)
		}
	}
	if p.PinkScale < 0 {
		return fmt.Errorf("noise: pink scale must be >= 0: %f", p.PinkScale)
	}
	if p.BrownLeak <= 0 || p.BrownLeak >= 1 {
		return fmt.Errorf("noise: brown leak must be in (0, 1): %f", p.BrownLeak)
	}
	if p.BrownScale < 0 {
		return fmt.Errorf("noise: brown scale must be >= 0: %f", p.BrownScale)
	}
	return nil
}
