package modulation

import "math"

// Panner places a mono signal in the stereo field with the sin/cos law, so
// that L^2 + R^2 stays 1 for every position.
type Panner struct {
	pan         float64
	left, right float64
}

// NewPanner returns a centred panner.
func NewPanner() *Panner {
	p := &Panner{}
	p.SetPan(0)
	return p
}

// EqualPower returns the channel gains for pan in [-1 (left), 1 (right)].
// Values outside the range are clamped.
func EqualPower(pan float64) (left, right float64) {
	if pan < -1 {
		pan = -1
	} else if pan > 1 {
		pan = 1
	}
	theta := (pan + 1) * math.Pi / 4
	return math.Cos(theta), math.Sin(theta)
}

// SetPan moves the source.
func (p *Panner) SetPan(pan float64) {
	p.pan = pan
	p.left, p.right = EqualPower(pan)
}

// Pan returns the last position set.
func (p *Panner) Pan() float64 { return p.pan }

// Gains returns the current left and right gains.
func (p *Panner) Gains() (left, right float64) {
	return p.left, p.right
}

// Process writes the panned copies of x.
func (p *Panner) Process(x float64) (left, right float64) {
	return x * p.left, x * p.right
}
