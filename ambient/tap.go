package ambient

import (
	"fmt"
	"math"
	"math/bits"
	"sync"
	"sync/atomic"

	"github.com/cwbudde/algo-ambient/dsp/spectrum"
	"github.com/cwbudde/algo-ambient/dsp/window"
)

// SpectrumFloorDB is the lowest level reported by Tap.Spectrum.
const SpectrumFloorDB = -160.0

// Tap is a lock-free ring of the most recent output samples (the mono mix,
// after the chain and master gain). The generation path writes, any
// goroutine may read. Readers never block the writer; a reader racing a
// wrap may see a mix of old and new samples.
type Tap struct {
	ring       []atomic.Uint64
	mask       uint64
	written    atomic.Uint64
	sampleRate float64

	mu       sync.Mutex
	analyzer *spectrum.Analyzer
	frame    []float64
}

func newTap(size int, sampleRate float64) *Tap {
	if size < 2 {
		size = 2
	}
	n := 1 << bits.Len(uint(size-1))
	return &Tap{
		ring:       make([]atomic.Uint64, n),
		mask:       uint64(n - 1),
		sampleRate: sampleRate,
	}
}

// Size returns the ring capacity.
func (t *Tap) Size() int {
	return len(t.ring)
}

// SampleRate returns the rate of the tapped signal.
func (t *Tap) SampleRate() float64 {
	return t.sampleRate
}

// Written returns the total number of samples written so far.
func (t *Tap) Written() uint64 {
	return t.written.Load()
}

func (t *Tap) write(samples []float64) {
	w := t.written.Load()
	for i, v := range samples {
		t.ring[(w+uint64(i))&t.mask].Store(math.Float64bits(v))
	}
	t.written.Store(w + uint64(len(samples)))
}

// Snapshot copies the most recent samples into dst, oldest first, and
// returns how many were copied.
func (t *Tap) Snapshot(dst []float64) int {
	w := t.written.Load()
	n := uint64(len(dst))
	if n > uint64(len(t.ring)) {
		n = uint64(len(t.ring))
	}
	if n > w {
		n = w
	}
	start := w - n
	for i := uint64(0); i < n; i++ {
		dst[i] = math.Float64frombits(t.ring[(start+i)&t.mask].Load())
	}
	return int(n)
}

// Spectrum writes the power spectrum in dB of the latest size samples into
// dst, which must hold size/2+1 bins. Missing history is zero padded at the
// front. It returns the number of bins written.
func (t *Tap) Spectrum(dst []float64, size int) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.analyzer == nil || t.analyzer.Size() != size {
		a, err := spectrum.NewAnalyzer(size, window.TypeHann)
		if err != nil {
			return 0, fmt.Errorf("tap spectrum: %w", err)
		}
		t.analyzer = a
		t.frame = make([]float64, size)
	}
	bins := t.analyzer.Bins()
	if len(dst) < bins {
		return 0, fmt.Errorf("tap spectrum: dst must hold %d bins: %d", bins, len(dst))
	}

	n := t.Snapshot(t.frame)
	if n < size {
		copy(t.frame[size-n:], t.frame[:n])
		clear(t.frame[:size-n])
	}
	if err := t.analyzer.PowerDB(dst, t.frame, t.sampleRate, SpectrumFloorDB); err != nil {
		return 0, fmt.Errorf("tap spectrum: %w", err)
	}
	return bins, nil
}

// BinFrequency returns the centre frequency of bin k for a spectrum of size.
func (t *Tap) BinFrequency(k, size int) float64 {
	return float64(k) * t.sampleRate / float64(size)
}
