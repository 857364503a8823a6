package noise

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-ambient/dsp/spectrum"
	"github.com/cwbudde/algo-ambient/internal/testutil"
)

func mustSource(t *testing.T, opts ...Option) *Source {
	t.Helper()
	s, err := New(opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return s
}

func TestWhiteBoundsAndUniformity(t *testing.T) {
	s := mustSource(t, WithSeed(11), WithType(White))
	buf := make([]float64, 20000)
	s.GenerateBlock(buf)

	testutil.RequireBounded(t, buf, 0.2)

	unit := make([]float64, len(buf))
	for i, v := range buf {
		unit[i] = v / 0.2
	}
	d := testutil.KSUniform(unit, -1, 1)
	if crit := testutil.KSCritical(len(unit)); d > crit {
		t.Fatalf("KS statistic = %v exceeds %v", d, crit)
	}
}

func TestBrownBounded(t *testing.T) {
	s := mustSource(t, WithSeed(3), WithType(Brown))
	buf := make([]float64, 4096)
	peak := 0.0
	for n := 0; n < 1_000_000; n += len(buf) {
		s.GenerateBlock(buf)
		for _, v := range buf {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				t.Fatalf("non-finite brown sample %v", v)
			}
			peak = math.Max(peak, math.Abs(v))
		}
	}
	if peak > 3.5 {
		t.Fatalf("peak = %v, want <= 3.5", peak)
	}
	if st := s.BrownState(); math.Abs(st.LastOut) > 1 {
		t.Fatalf("|LastOut| = %v, want <= 1", st.LastOut)
	}
}

func TestBrownContraction(t *testing.T) {
	p := DefaultParams()
	a := BrownState{LastOut: 1}
	b := BrownState{LastOut: -1}
	w := testutil.DeterministicNoise(5, 1, 64)
	for i, x := range w {
		before := math.Abs(a.LastOut - b.LastOut)
		a.step(x, p.BrownLeak)
		b.step(x, p.BrownLeak)
		after := math.Abs(a.LastOut - b.LastOut)
		want := before / (1 + p.BrownLeak)
		if math.Abs(after-want) > 1e-12 {
			t.Fatalf("step %d: distance %v, want %v", i, after, want)
		}
	}

	// Extreme inputs keep the accumulator inside [-1, 1].
	c := BrownState{LastOut: 1}
	for i := 0; i < 1000; i++ {
		c.step(1, p.BrownLeak)
		if c.LastOut > 1 {
			t.Fatalf("LastOut = %v after constant +1 input", c.LastOut)
		}
	}
}

func TestPinkSlope(t *testing.T) {
	const sr = 48000.0
	s := mustSource(t, WithSeed(99), WithType(Pink))

	// Skip the start-up transient of the slow bands.
	warm := make([]float64, int(sr))
	s.GenerateBlock(warm)

	buf := make([]float64, 1<<20)
	s.GenerateBlock(buf)
	testutil.RequireFinite(t, buf)

	freqs, psd, err := spectrum.Welch(buf, sr, 4096)
	if err != nil {
		t.Fatalf("Welch() error = %v", err)
	}
	slope, err := spectrum.OctaveSlopeDB(freqs, psd, 40, 8000)
	if err != nil {
		t.Fatalf("OctaveSlopeDB() error = %v", err)
	}
	if math.Abs(slope+3) > 0.5 {
		t.Fatalf("pink slope = %.2f dB/oct, want -3 +/- 0.5", slope)
	}
}

func TestBrownSlopeSteeperThanPink(t *testing.T) {
	const sr = 48000.0
	s := mustSource(t, WithSeed(1), WithType(Brown))
	buf := make([]float64, 1<<18)
	s.GenerateBlock(buf)

	freqs, psd, err := spectrum.Welch(buf, sr, 4096)
	if err != nil {
		t.Fatalf("Welch() error = %v", err)
	}
	// Above the leak corner (~150 Hz) the integrator falls at 6 dB/oct.
	slope, err := spectrum.OctaveSlopeDB(freqs, psd, 1000, 8000)
	if err != nil {
		t.Fatalf("OctaveSlopeDB() error = %v", err)
	}
	if slope > -5 || slope < -7 {
		t.Fatalf("brown slope = %.2f dB/oct, want about -6", slope)
	}
}

func TestSetTypePreservesInactiveState(t *testing.T) {
	s := mustSource(t, WithSeed(21), WithType(Pink))
	buf := make([]float64, 512)
	s.GenerateBlock(buf)

	s.SetType(Brown)
	s.GenerateBlock(buf)
	pink := s.PinkState()
	brown := s.BrownState()

	s.SetType(White)
	s.GenerateBlock(buf)
	if s.PinkState() != pink {
		t.Fatal("pink state changed while white was active")
	}
	if s.BrownState() != brown {
		t.Fatal("brown state changed while white was active")
	}

	// Switching to the active type again must not touch anything either.
	s.SetType(White)
	s.SetType(White)
	if s.PinkState() != pink || s.BrownState() != brown {
		t.Fatal("repeated SetType mutated generator state")
	}
}

func TestSetTypeUnknownFallsBackToWhite(t *testing.T) {
	s := mustSource(t, WithType(Brown))
	s.SetType(Type(42))
	if got := s.Type(); got != White {
		t.Fatalf("Type() = %v, want white", got)
	}
}

func TestSeedDeterminism(t *testing.T) {
	a := mustSource(t, WithSeed(8), WithType(Pink))
	b := mustSource(t, WithSeed(8), WithType(Pink))
	x := make([]float64, 256)
	y := make([]float64, 256)
	a.GenerateBlock(x)
	b.GenerateBlock(y)
	testutil.RequireSliceNearlyEqual(t, x, y, 0)
}

func TestReset(t *testing.T) {
	s := mustSource(t, WithType(Pink))
	buf := make([]float64, 64)
	s.GenerateBlock(buf)
	s.SetType(Brown)
	s.GenerateBlock(buf)
	s.Reset()
	if s.PinkState() != (PinkState{}) || s.BrownState() != (BrownState{}) {
		t.Fatal("Reset() left state behind")
	}
}

func TestOptionValidation(t *testing.T) {
	p := DefaultParams()
	p.BrownLeak = 1.5
	if _, err := New(WithParams(p)); err == nil {
		t.Fatal("expected error for brown leak outside (0, 1)")
	}
	if _, err := New(WithType(Type(-1))); err == nil {
		t.Fatal("expected error for invalid type")
	}
}

func TestParseType(t *testing.T) {
	tests := []struct {
		in      string
		want    Type
		wantErr bool
	}{
		{in: "white", want: White},
		{in: " Pink ", want: Pink},
		{in: "brown", want: Brown},
		{in: "red", want: Brown},
		{in: "violet", want: White, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseType(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseType(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Fatalf("ParseType(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestGenerateBlockAllocationFree(t *testing.T) {
	s := mustSource(t, WithType(Pink))
	buf := make([]float64, 1024)
	allocs := testing.AllocsPerRun(50, func() {
		s.GenerateBlock(buf)
	})
	if allocs != 0 {
		t.Fatalf("GenerateBlock allocates %v times per run", allocs)
	}
}
