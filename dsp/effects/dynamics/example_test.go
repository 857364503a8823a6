package dynamics_test

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-ambient/dsp/effects/dynamics"
)

func ExampleCompressor_OutputLevel() {
	comp, err := dynamics.NewCompressor(48000,
		dynamics.WithThreshold(-12),
		dynamics.WithRatio(4),
		dynamics.WithKnee(0),
		dynamics.WithMakeupGain(0),
	)
	if err != nil {
		panic(err)
	}
	out := comp.OutputLevel(1)
	fmt.Printf("%.1f dB\n", 20*math.Log10(out))

	// Output:
	// -9.0 dB
}
