// Package generic registers the portable biquad kernel.
package generic

import (
	"github.com/cwbudde/algo-ambient/dsp/filter/biquad/internal/arch/registry"
	"github.com/cwbudde/algo-vecmath/cpu"
)

func init() {
	registry.Global.Register(registry.OpEntry{
		Name:         "generic",
		SIMDLevel:    cpu.SIMDNone,
		Priority:     0,
		ProcessBlock: processBlock,
	})
}

// processBlock runs the recurrence two samples per iteration.
func processBlock(c registry.Coefficients, d0, d1 float64, buf []float64) (newD0, newD1 float64) {
	b0, b1, b2, a1, a2 := c.B0, c.B1, c.B2, c.A1, c.A2

	n := len(buf)
	i := 0
	for ; i+1 < n; i += 2 {
		x := buf[i]
		y := b0*x + d0
		t0 := b1*x - a1*y + d1
		t1 := b2*x - a2*y
		buf[i] = y

		x = buf[i+1]
		y = b0*x + t0
		d0 = b1*x - a1*y + t1
		d1 = b2*x - a2*y
		buf[i+1] = y
	}
	if i < n {
		x := buf[i]
		y := b0*x + d0
		d0 = b1*x - a1*y + d1
		d1 = b2*x - a2*y
		buf[i] = y
	}
	return d0, d1
}
