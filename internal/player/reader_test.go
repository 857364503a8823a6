package player

import (
	"encoding/binary"
	"math"
	"testing"
)

type rampSource struct {
	calls int
}

func (s *rampSource) RenderInterleaved(dst []float32) {
	s.calls++
	for i := range dst {
		dst[i] = float32(i) / 8
	}
}

func decode(p []byte) []float32 {
	out := make([]float32, len(p)/bytesPerSample)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(p[i*bytesPerSample:]))
	}
	return out
}

func TestReaderEncodesFrames(t *testing.T) {
	src := &rampSource{}
	r := newReader(src, 2, 4)
	// Two whole stereo frames plus three stray bytes.
	p := make([]byte, 2*2*bytesPerSample+3)
	for i := range p {
		p[i] = 0xff
	}

	n, err := r.Read(p)
	if err != nil || n != len(p) {
		t.Fatalf("Read() = %d, %v", n, err)
	}
	got := decode(p[:16])
	want := []float32{0, 0.125, 0.25, 0.375}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sample %d = %g, want %g", i, got[i], want[i])
		}
	}
	for i, b := range p[16:] {
		if b != 0 {
			t.Fatalf("trailing byte %d = %#x, want 0", i, b)
		}
	}
}

func TestReaderWithoutSourceIsSilent(t *testing.T) {
	r := newReader(nil, 1, 16)
	p := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	if n, _ := r.Read(p); n != len(p) {
		t.Fatalf("Read() = %d", n)
	}
	for _, b := range p {
		if b != 0 {
			t.Fatalf("silence expected, got %v", p)
		}
	}
}

func TestReaderGrowsAndDetaches(t *testing.T) {
	src := &rampSource{}
	r := newReader(src, 1, 1)
	p := make([]byte, 64*bytesPerSample)
	if _, err := r.Read(p); err != nil {
		t.Fatal(err)
	}
	if got := decode(p)[63]; got != 63.0/8 {
		t.Fatalf("last sample = %g", got)
	}

	r.setSource(nil)
	if _, err := r.Read(p); err != nil {
		t.Fatal(err)
	}
	if src.calls != 1 {
		t.Fatalf("detached source rendered %d times", src.calls)
	}
}

func TestReaderAllocations(t *testing.T) {
	r := newReader(&rampSource{}, 2, 512)
	p := make([]byte, 512*2*bytesPerSample)
	if n := testing.AllocsPerRun(20, func() { _, _ = r.Read(p) }); n != 0 {
		t.Fatalf("Read allocates %g times per call", n)
	}
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		ok   bool
	}{
		{"defaults", Config{}, true},
		{"mono", Config{SampleRate: 44100, Channels: 1}, true},
		{"three channels", Config{Channels: 3}, false},
		{"negative rate", Config{SampleRate: -1}, false},
		{"negative buffer", Config{Buffer: -1}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.withDefaults().validate()
			if (err == nil) != tc.ok {
				t.Fatalf("validate() = %v, want ok=%v", err, tc.ok)
			}
		})
	}
	if got := (Config{SampleRate: 48000}).prealloc(); got != 4096 {
		t.Fatalf("default prealloc = %d", got)
	}
}
