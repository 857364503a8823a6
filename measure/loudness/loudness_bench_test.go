package loudness

import (
	"fmt"
	"testing"
)

func BenchmarkMeterProcess(b *testing.B) {
	for _, size := range []int{64, 256, 1024} {
		for _, ch := range []int{1, 2} {
			b.Run(fmt.Sprintf("%dx%d", size, ch), func(b *testing.B) {
				m, err := NewMeter(48000, ch)
				if err != nil {
					b.Fatal(err)
				}
				block := make([]float64, size*ch)
				b.SetBytes(int64(size * ch * 8))
				b.ResetTimer()
				for range b.N {
					m.Process(block)
				}
			})
		}
	}
}
