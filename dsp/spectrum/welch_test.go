package spectrum

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-ambient/internal/testutil"
)

func TestWelchWhiteNoiseLevel(t *testing.T) {
	const sr = 48000.0
	// Uniform noise in [-1, 1) has variance 1/3.
	x := testutil.DeterministicNoise(4, 1, 1<<17)
	freqs, psd, err := Welch(x, sr, 1024)
	if err != nil {
		t.Fatalf("Welch() error = %v", err)
	}
	if len(freqs) != 513 || len(psd) != 513 {
		t.Fatalf("bins = %d/%d, want 513", len(freqs), len(psd))
	}
	if freqs[512] != sr/2 {
		t.Fatalf("last bin = %v, want Nyquist", freqs[512])
	}

	want := 2 * (1.0 / 3) / sr
	mean := 0.0
	for _, v := range psd[1:512] {
		mean += v
	}
	mean /= 511
	if math.Abs(mean-want)/want > 0.05 {
		t.Fatalf("mean density = %g, want %g", mean, want)
	}

	slope, err := OctaveSlopeDB(freqs, psd, 100, 20000)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(slope) > 0.2 {
		t.Fatalf("white slope = %.3f dB/oct, want 0", slope)
	}
}

func TestWelchShortInput(t *testing.T) {
	if _, _, err := Welch(make([]float64, 100), 48000, 256); err == nil {
		t.Fatal("expected error for input shorter than a segment")
	}
}

func TestOctaveSlopeDB(t *testing.T) {
	freqs := make([]float64, 200)
	pink := make([]float64, 200)
	brown := make([]float64, 200)
	for i := range freqs {
		f := 50 * float64(i+1)
		freqs[i] = f
		pink[i] = 1 / f
		brown[i] = 1 / (f * f)
	}

	slope, err := OctaveSlopeDB(freqs, pink, 0, math.Inf(1))
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(slope-(-10*math.Log10(2))) > 1e-9 {
		t.Fatalf("1/f slope = %v, want -3.01", slope)
	}

	slope, err = OctaveSlopeDB(freqs, brown, 0, math.Inf(1))
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(slope-(-20*math.Log10(2))) > 1e-9 {
		t.Fatalf("1/f^2 slope = %v, want -6.02", slope)
	}

	if _, err := OctaveSlopeDB(freqs, pink, 1, 2); err == nil {
		t.Fatal("expected error for empty band")
	}
	if _, err := OctaveSlopeDB(freqs, pink[:3], 0, 1e9); err == nil {
		t.Fatal("expected error for length mismatch")
	}
}
