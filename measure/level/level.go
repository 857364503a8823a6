// Package level measures signal level: RMS, peak, crest factor and DC.
//
// [Calculate] measures a whole buffer; a [Meter] accumulates the same
// figures block by block, plus an exponentially weighted short-term RMS
// for live displays.
package level

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Stats summarises a signal.
type Stats struct {
	Length  int
	DC      float64
	RMS     float64
	RMSdB   float64
	Peak    float64
	PeakdB  float64
	Crest   float64
	CrestdB float64
	Energy  float64
}

func ampTodB(v float64) float64 {
	v = math.Abs(v)
	if v == 0 {
		return math.Inf(-1)
	}
	return 20 * math.Log10(v)
}

func emptyStats() Stats {
	return Stats{
		RMSdB:   math.Inf(-1),
		PeakdB:  math.Inf(-1),
		CrestdB: math.Inf(-1),
	}
}

// Calculate measures x in one pass.
func Calculate(x []float64) Stats {
	var m Meter
	m.Update(x)
	return m.Result()
}

// Meter accumulates level statistics across blocks. The zero value is ready
// to use. It does not allocate.
type Meter struct {
	n      int
	sum    float64
	energy float64
	peak   float64

	tau       float64
	rate      float64
	shortTerm float64
}

// NewMeter returns a meter whose short-term RMS averages with time
// constant tau seconds at sampleRate.
func NewMeter(sampleRate, tau float64) *Meter {
	return &Meter{rate: sampleRate, tau: tau}
}

// Update adds a block.
func (m *Meter) Update(block []float64) {
	if len(block) == 0 {
		return
	}
	e := vecmath.DotProduct(block, block)
	m.n += len(block)
	m.sum += vecmath.Sum(block)
	m.energy += e
	if p := vecmath.MaxAbs(block); p > m.peak {
		m.peak = p
	}

	meanSq := e / float64(len(block))
	if m.tau > 0 && m.rate > 0 {
		a := math.Exp(-float64(len(block)) / (m.tau * m.rate))
		m.shortTerm = a*m.shortTerm + (1-a)*meanSq
	} else {
		m.shortTerm = meanSq
	}
}

// ShortTermRMS returns the exponentially weighted RMS of recent blocks.
func (m *Meter) ShortTermRMS() float64 {
	return math.Sqrt(m.shortTerm)
}

// Result returns the statistics of everything seen since the last reset.
func (m *Meter) Result() Stats {
	if m.n == 0 {
		return emptyStats()
	}
	nf := float64(m.n)
	rms := math.Sqrt(m.energy / nf)
	s := Stats{
		Length: m.n,
		DC:     m.sum / nf,
		RMS:    rms,
		RMSdB:  ampTodB(rms),
		Peak:   m.peak,
		PeakdB: ampTodB(m.peak),
		Energy: m.energy,
	}
	if rms > 0 {
		s.Crest = m.peak / rms
		s.CrestdB = ampTodB(s.Crest)
	}
	return s
}

// Reset clears the accumulated data and keeps the configuration.
func (m *Meter) Reset() {
	*m = Meter{tau: m.tau, rate: m.rate}
}
