package dynamics

import "testing"

func BenchmarkLimiterProcessInPlace(b *testing.B) {
	l, err := NewLimiter(48000, WithThreshold(-3), WithKnee(6), WithRatio(20))
	if err != nil {
		b.Fatal(err)
	}
	buf := make([]float64, 4096)
	for i := range buf {
		buf[i] = float64(i%200)/100 - 1
	}
	b.SetBytes(int64(len(buf) * 8))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		l.ProcessInPlace(buf)
	}
}
