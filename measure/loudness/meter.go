package loudness

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-ambient/dsp/filter/biquad"
	"github.com/cwbudde/algo-ambient/dsp/filter/design"
)

const (
	shelfHz     = 1500.0
	shelfGainDB = 4.0
	highpassHz  = 38.0

	stepSeconds    = 0.1
	momentarySteps = 4
	shortTermSteps = 30

	absoluteGateLUFS = -70.0
	relativeGateLU   = -10.0
)

// ErrInvalidConfig is returned by NewMeter for unusable rates or channel
// counts.
var ErrInvalidConfig = errors.New("loudness: invalid meter configuration")

// Meter accumulates K-weighted loudness over interleaved frames. It is not
// safe for concurrent use.
type Meter struct {
	channels int
	shelf    []*biquad.Section
	highpass []*biquad.Section

	stepLen  int
	stepFill int
	stepSum  float64

	steps [shortTermSteps]float64
	head  int
	count int

	blocks []float64
	peak   []float64
}

// NewMeter returns a meter for the given rate and channel count. Channels
// are weighted equally, which matches BS.1770 for mono and stereo.
func NewMeter(sampleRate float64, channels int) (*Meter, error) {
	if channels < 1 || !design.Valid(shelfHz, sampleRate) {
		return nil, fmt.Errorf("%w: %v Hz, %d channels", ErrInvalidConfig, sampleRate, channels)
	}
	shelf := design.HighShelf(shelfHz, shelfGainDB, design.ButterworthQ, sampleRate)
	hp := design.Highpass(highpassHz, design.ButterworthQ, sampleRate)

	m := &Meter{
		channels: channels,
		shelf:    make([]*biquad.Section, channels),
		highpass: make([]*biquad.Section, channels),
		stepLen:  max(int(math.Round(stepSeconds*sampleRate)), 1),
		peak:     make([]float64, channels),
	}
	for ch := range channels {
		m.shelf[ch] = biquad.NewSection(shelf)
		m.highpass[ch] = biquad.NewSection(hp)
	}
	return m, nil
}

// Channels returns the number of interleaved channels the meter expects.
func (m *Meter) Channels() int { return m.channels }

// Process adds interleaved frames. A trailing partial frame is ignored.
func (m *Meter) Process(frames []float64) {
	n := len(frames) / m.channels * m.channels
	for i := 0; i < n; i += m.channels {
		for ch := range m.channels {
			x := frames[i+ch]
			if a := math.Abs(x); a > m.peak[ch] {
				m.peak[ch] = a
			}
			y := m.highpass[ch].ProcessSample(m.shelf[ch].ProcessSample(x))
			m.stepSum += y * y
		}
		m.stepFill++
		if m.stepFill == m.stepLen {
			m.closeStep()
		}
	}
}

func (m *Meter) closeStep() {
	m.steps[m.head] = m.stepSum / float64(m.stepLen)
	m.head = (m.head + 1) % shortTermSteps
	m.count++
	m.stepSum, m.stepFill = 0, 0
	if m.count >= momentarySteps {
		m.blocks = append(m.blocks, m.window(momentarySteps))
	}
}

// window averages the last n completed steps. Steps that have not happened
// yet count as silence.
func (m *Meter) window(n int) float64 {
	sum := 0.0
	for i := 1; i <= n; i++ {
		sum += m.steps[(m.head-i+shortTermSteps)%shortTermSteps]
	}
	return sum / float64(n)
}

// Momentary returns the loudness of the last 400 ms in LUFS.
func (m *Meter) Momentary() float64 { return ToLUFS(m.window(momentarySteps)) }

// ShortTerm returns the loudness of the last 3 s in LUFS.
func (m *Meter) ShortTerm() float64 { return ToLUFS(m.window(shortTermSteps)) }

// Integrated returns the gated loudness of everything since the last reset,
// or -Inf when no block passes the gates.
func (m *Meter) Integrated() float64 {
	var sum float64
	var n int
	for _, b := range m.blocks {
		if ToLUFS(b) > absoluteGateLUFS {
			sum += b
			n++
		}
	}
	if n == 0 {
		return math.Inf(-1)
	}

	gate := ToLUFS(sum/float64(n)) + relativeGateLU
	sum, n = 0, 0
	for _, b := range m.blocks {
		if l := ToLUFS(b); l > absoluteGateLUFS && l > gate {
			sum += b
			n++
		}
	}
	if n == 0 {
		return math.Inf(-1)
	}
	return ToLUFS(sum / float64(n))
}

// Blocks returns the number of 400 ms gating blocks collected so far.
func (m *Meter) Blocks() int { return len(m.blocks) }

// Peaks copies the per-channel sample peaks into dst, growing it when
// needed, and returns it.
func (m *Meter) Peaks(dst []float64) []float64 {
	if cap(dst) < m.channels {
		dst = make([]float64, m.channels)
	}
	dst = dst[:m.channels]
	copy(dst, m.peak)
	return dst
}

// Reset clears filter state, windows, blocks and peaks.
func (m *Meter) Reset() {
	for ch := range m.channels {
		m.shelf[ch].Reset()
		m.highpass[ch].Reset()
		m.peak[ch] = 0
	}
	m.steps = [shortTermSteps]float64{}
	m.head, m.count = 0, 0
	m.stepSum, m.stepFill = 0, 0
	m.blocks = m.blocks[:0]
}

// ToLUFS converts a channel-summed K-weighted mean square to LUFS.
func ToLUFS(meanSquare float64) float64 {
	if meanSquare <= 0 {
		return math.Inf(-1)
	}
	return -0.691 + 10*math.Log10(meanSquare)
}
