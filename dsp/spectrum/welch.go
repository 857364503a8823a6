package spectrum

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-ambient/dsp/window"
	"github.com/cwbudde/algo-vecmath"
)

// Welch estimates the one-sided power spectral density of x by averaging
// Hann-windowed segments of length segment with 50 % overlap.
func Welch(x []float64, sampleRate float64, segment int) (freqs, psd []float64, err error) {
	if len(x) < segment {
		return nil, nil, fmt.Errorf("welch input shorter than one segment: %d < %d", len(x), segment)
	}
	a, err := NewAnalyzer(segment, window.TypeHann)
	if err != nil {
		return nil, nil, err
	}

	bins := a.Bins()
	psd = make([]float64, bins)
	frame := make([]float64, bins)
	hop := segment / 2
	if hop < 1 {
		hop = 1
	}

	count := 0
	for start := 0; start+segment <= len(x); start += hop {
		if err := a.Density(frame, x[start:start+segment], sampleRate); err != nil {
			return nil, nil, err
		}
		vecmath.AddBlockInPlace(psd, frame)
		count++
	}
	vecmath.ScaleBlockInPlace(psd, 1/float64(count))

	freqs = make([]float64, bins)
	for k := range freqs {
		freqs[k] = a.BinFrequency(k, sampleRate)
	}
	return freqs, psd, nil
}

// OctaveSlopeDB fits 10*log10(psd) against log2(f) over [loHz, hiHz] by
// least squares and returns the slope in dB per octave.
func OctaveSlopeDB(freqs, psd []float64, loHz, hiHz float64) (float64, error) {
	if len(freqs) != len(psd) {
		return 0, fmt.Errorf("slope fit length mismatch: %d != %d", len(freqs), len(psd))
	}
	var n, sx, sy, sxx, sxy float64
	for i, f := range freqs {
		if f < loHz || f > hiHz || f <= 0 || psd[i] <= 0 {
			continue
		}
		x := math.Log2(f)
		y := 10 * math.Log10(psd[i])
		n++
		sx += x
		sy += y
		sxx += x * x
		sxy += x * y
	}
	den := n*sxx - sx*sx
	if n < 2 || den == 0 {
		return 0, fmt.Errorf("slope fit needs at least 2 bins in [%g, %g] Hz", loHz, hiHz)
	}
	return (n*sxy - sx*sy) / den, nil
}
