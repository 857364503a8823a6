package smooth_test

import (
	"fmt"

	"github.com/cwbudde/algo-ambient/dsp/smooth"
)

func ExampleSmoother() {
	gain := smooth.New(0)
	gain.SetTarget(1, 0.1)

	for i := 0; i < 3; i++ {
		gain.Advance(0.1)
		fmt.Printf("%.3f\n", gain.Value())
	}

	// Output:
	// 0.632
	// 0.865
	// 0.950
}
