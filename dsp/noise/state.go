package noise

// PinkState is the filter-bank memory of the pink generator.
type PinkState struct {
	B [7]float64
}

// step advances the bank by one white sample and returns the unscaled output.
// B[6] holds the previous sample's delayed term and is refreshed last.
func (s *PinkState) step(w float64, p *Params) float64 {
	sum := 0.0
	for i := range p.PinkBands {
		band := p.PinkBands[i]
		s.B[i] = band.Decay*s.B[i] + w*band.Gain
		sum += s.B[i]
	}
	out := sum + s.B[6] + w*p.PinkDirect
	s.B[6] = w * p.PinkDelayed
	return out
}

// BrownState is the accumulator of the brown generator.
type BrownState struct {
	LastOut float64
}

// step integrates w with a leak. For leak in (0, 1) the map is a contraction
// with factor 1/(1+leak), so |LastOut| <= 1 holds for |w| <= 1.
func (s *BrownState) step(w, leak float64) float64 {
	s.LastOut = (s.LastOut + leak*w) / (1 + leak)
	return s.LastOut
}
