package biquad_test

import (
	"fmt"

	"github.com/cwbudde/algo-ambient/dsp/filter/biquad"
)

func ExampleSection_ProcessBlock() {
	s := biquad.NewSection(biquad.Coefficients{B0: 0.25, B1: 0.5, B2: 0.25, A1: -0.2, A2: 0.04})
	buf := []float64{1, 0, 0, 0}
	s.ProcessBlock(buf)
	fmt.Printf("%.3f %.3f %.3f %.3f\n", buf[0], buf[1], buf[2], buf[3])

	// Output:
	// 0.250 0.550 0.350 0.048
}
