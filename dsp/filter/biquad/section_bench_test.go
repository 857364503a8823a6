package biquad

import (
	"fmt"
	"testing"
)

func BenchmarkProcessSample(b *testing.B) {
	s := NewSection(testCoeffs)
	x := 1.0
	for i := 0; i < b.N; i++ {
		x = s.ProcessSample(x)
	}
	_ = x
}

func BenchmarkProcessBlock(b *testing.B) {
	for _, size := range []int{128, 1024, 4096} {
		b.Run(fmt.Sprintf("N=%d", size), func(b *testing.B) {
			s := NewSection(testCoeffs)
			buf := make([]float64, size)
			for i := range buf {
				buf[i] = float64(i) * 0.001
			}
			b.SetBytes(int64(size * 8))
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				s.ProcessBlock(buf)
			}
		})
	}
}
