package noise_test

import (
	"fmt"

	"github.com/cwbudde/algo-ambient/dsp/noise"
)

func ExampleSource_SetType() {
	src, err := noise.New(noise.WithSeed(1), noise.WithType(noise.Brown))
	if err != nil {
		panic(err)
	}
	buf := make([]float64, 256)
	src.GenerateBlock(buf)

	before := src.BrownState()
	src.SetType(noise.White)
	src.GenerateBlock(buf)
	src.SetType(noise.Brown)

	fmt.Println(src.Type(), src.BrownState() == before)

	// Output:
	// brown true
}
