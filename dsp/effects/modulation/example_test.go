package modulation_test

import (
	"fmt"

	"github.com/cwbudde/algo-ambient/dsp/effects/modulation"
)

func ExampleLFO() {
	lfo, err := modulation.NewLFO(modulation.WithLFORateHz(0.25), modulation.WithLFODepth(100))
	if err != nil {
		panic(err)
	}
	for i := 0; i < 4; i++ {
		fmt.Printf("%.0f ", lfo.Advance(1))
	}
	fmt.Println()

	// Output:
	// 100 0 -100 0
}
