package smooth

import (
	"math"
	"sync/atomic"
)

// Approach evaluates the exponential ramp from `from` towards target after
// t seconds with time constant tau. A non-positive tau jumps to target.
func Approach(from, target, tau, t float64) float64 {
	if t < 0 {
		return from
	}
	if tau <= 0 {
		return target
	}
	return target + (from-target)*math.Exp(-t/tau)
}

// Coefficient returns the per-sample decay factor exp(-1/(tau*sampleRate)).
func Coefficient(tau, sampleRate float64) float64 {
	if tau <= 0 || sampleRate <= 0 {
		return 0
	}
	return math.Exp(-1 / (tau * sampleRate))
}

// ramp is an immutable target description published by the control side.
type ramp struct {
	target float64
	tau    float64
	// restart is bumped by SetTargetFrom; the audio side jumps to from
	// when it sees a restart it has not applied yet.
	restart uint64
	from    float64
}

// Smoother is one smoothed parameter.
type Smoother struct {
	ramp      atomic.Pointer[ramp]
	published atomic.Uint64

	// Owned by the goroutine calling Advance/Fill.
	current     float64
	applied     *ramp
	restartSeen uint64
	coefTau     float64
	coefRate    float64
	coef        float64
}

// New returns a Smoother resting at initial.
func New(initial float64) *Smoother {
	s := &Smoother{current: initial}
	r := &ramp{target: initial}
	s.ramp.Store(r)
	s.applied = r
	s.published.Store(math.Float64bits(initial))
	return s
}

// SetTarget changes the asymptote and time constant. The value continues
// from wherever the audio side has moved it. NaN targets are ignored.
func (s *Smoother) SetTarget(target, tau float64) {
	if math.IsNaN(target) {
		return
	}
	prev := s.ramp.Load()
	s.ramp.Store(&ramp{target: target, tau: tau, restart: prev.restart, from: prev.from})
}

// SetTargetFrom restarts the ramp at from and heads for target.
func (s *Smoother) SetTargetFrom(from, target, tau float64) {
	if math.IsNaN(from) || math.IsNaN(target) {
		return
	}
	prev := s.ramp.Load()
	s.ramp.Store(&ramp{target: target, tau: tau, restart: prev.restart + 1, from: from})
}

// Jump moves the value to v without ramping.
func (s *Smoother) Jump(v float64) {
	s.SetTargetFrom(v, v, 0)
}

// Target returns the current asymptote.
func (s *Smoother) Target() float64 {
	return s.ramp.Load().target
}

// Tau returns the current time constant in seconds.
func (s *Smoother) Tau() float64 {
	return s.ramp.Load().tau
}

// Value returns the value last published by the audio side.
func (s *Smoother) Value() float64 {
	return math.Float64frombits(s.published.Load())
}

// ValueAt predicts the value elapsed seconds after the last published one,
// assuming the target does not change in between.
func (s *Smoother) ValueAt(elapsed float64) float64 {
	r := s.ramp.Load()
	return Approach(s.Value(), r.target, r.tau, elapsed)
}

// Settled reports whether the published value is within eps of the target.
func (s *Smoother) Settled(eps float64) bool {
	return math.Abs(s.Value()-s.Target()) <= eps
}

// sync picks up a newly published ramp. Audio side only.
func (s *Smoother) sync() *ramp {
	r := s.ramp.Load()
	if r != s.applied {
		if r.restart != s.restartSeen {
			s.current = r.from
			s.restartSeen = r.restart
		}
		s.applied = r
	}
	return r
}

func (s *Smoother) publish() {
	s.published.Store(math.Float64bits(s.current))
}

// Advance moves the value dt seconds along the ramp and returns it.
func (s *Smoother) Advance(dt float64) float64 {
	r := s.sync()
	s.current = flush(Approach(s.current, r.target, r.tau, dt), r.target)
	s.publish()
	return s.current
}

// Fill writes one ramp value per sample into dst and returns the last one.
func (s *Smoother) Fill(dst []float64, sampleRate float64) float64 {
	r := s.sync()
	if r.tau <= 0 || sampleRate <= 0 {
		s.current = r.target
		for i := range dst {
			dst[i] = r.target
		}
		s.publish()
		return s.current
	}

	if r.tau != s.coefTau || sampleRate != s.coefRate {
		s.coef = Coefficient(r.tau, sampleRate)
		s.coefTau = r.tau
		s.coefRate = sampleRate
	}

	v := s.current
	for i := range dst {
		v = r.target + (v-r.target)*s.coef
		dst[i] = v
	}
	s.current = flush(v, r.target)
	s.publish()
	return s.current
}

// flush snaps v onto target once the remaining distance is negligible.
func flush(v, target float64) float64 {
	if math.Abs(v-target) < 1e-12 {
		return target
	}
	return v
}
