package spectrum

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-ambient/dsp/window"
	"github.com/cwbudde/algo-vecmath"
)

// ErrFrameSize is returned when a frame does not match the analyzer size.
var ErrFrameSize = errors.New("spectrum: frame length does not match analyzer size")

// Analyzer computes one-sided power spectra of fixed-size frames.
// It is not safe for concurrent use.
type Analyzer struct {
	size     int
	win      []float64
	winPower float64
	plan     *algofft.Plan[complex128]

	in    []complex128
	out   []complex128
	frame []float64
	re    []float64
	im    []float64
	pow   []float64
}

// NewAnalyzer returns an analyzer for frames of size samples using a
// periodic window of type w.
func NewAnalyzer(size int, w window.Type) (*Analyzer, error) {
	if size < 2 {
		return nil, fmt.Errorf("spectrum analyzer size must be >= 2: %d", size)
	}
	coeffs, err := window.Generate(w, size, window.WithPeriodic())
	if err != nil {
		return nil, fmt.Errorf("spectrum analyzer window: %w", err)
	}
	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return nil, fmt.Errorf("spectrum analyzer fft plan: %w", err)
	}

	bins := size/2 + 1
	return &Analyzer{
		size:     size,
		win:      coeffs,
		winPower: window.PowerSum(coeffs),
		plan:     plan,
		in:       make([]complex128, size),
		out:      make([]complex128, size),
		frame:    make([]float64, size),
		re:       make([]float64, bins),
		im:       make([]float64, bins),
		pow:      make([]float64, bins),
	}, nil
}

// Size returns the frame length.
func (a *Analyzer) Size() int { return a.size }

// Bins returns the number of one-sided bins, Size/2 + 1.
func (a *Analyzer) Bins() int { return a.size/2 + 1 }

// BinFrequency returns the centre frequency of bin k.
func (a *Analyzer) BinFrequency(k int, sampleRate float64) float64 {
	return float64(k) * sampleRate / float64(a.size)
}

// Density writes the one-sided power spectral density of frame into dst
// (units^2/Hz). Integrating dst over frequency yields the frame's mean power.
func (a *Analyzer) Density(dst, frame []float64, sampleRate float64) error {
	if len(frame) != a.size {
		return ErrFrameSize
	}
	if len(dst) < a.Bins() {
		return fmt.Errorf("spectrum: dst needs %d bins: %d", a.Bins(), len(dst))
	}
	if sampleRate <= 0 {
		return fmt.Errorf("spectrum: sample rate must be > 0: %f", sampleRate)
	}
	if err := a.transform(frame); err != nil {
		return err
	}

	scale := 2 / (a.winPower * sampleRate)
	vecmath.ScaleBlock(dst[:len(a.pow)], a.pow, scale)
	dst[0] *= 0.5
	if a.size%2 == 0 {
		dst[len(a.pow)-1] *= 0.5
	}
	return nil
}

// PowerDB writes 10*log10 of the density into dst, floored at floorDB.
func (a *Analyzer) PowerDB(dst, frame []float64, sampleRate, floorDB float64) error {
	if err := a.Density(dst, frame, sampleRate); err != nil {
		return err
	}
	floor := math.Pow(10, floorDB/10)
	for i := range dst[:a.Bins()] {
		if dst[i] <= floor {
			dst[i] = floorDB
			continue
		}
		dst[i] = 10 * math.Log10(dst[i])
	}
	return nil
}

// transform windows frame, runs the FFT and leaves |X[k]|^2 in a.pow.
func (a *Analyzer) transform(frame []float64) error {
	vecmath.MulBlock(a.frame, frame, a.win)
	for i, v := range a.frame {
		a.in[i] = complex(v, 0)
	}
	if err := a.plan.Forward(a.out, a.in); err != nil {
		return fmt.Errorf("spectrum fft: %w", err)
	}
	for k := range a.re {
		a.re[k] = real(a.out[k])
		a.im[k] = imag(a.out[k])
	}
	vecmath.Power(a.pow, a.re, a.im)
	return nil
}
