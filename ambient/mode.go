package ambient

import (
	"fmt"
	"strings"

	"github.com/cwbudde/algo-ambient/dsp/core"
	"github.com/cwbudde/algo-ambient/dsp/noise"
)

// Mode selects what the engine plays. Custom drives the white generator
// with user-chosen parameters.
type Mode int32

const (
	White Mode = iota
	Pink
	Brown
	Custom
)

// Modes lists all modes in display order.
var Modes = []Mode{White, Pink, Brown, Custom}

func (m Mode) String() string {
	switch m {
	case White:
		return "white"
	case Pink:
		return "pink"
	case Brown:
		return "brown"
	case Custom:
		return "custom"
	default:
		return fmt.Sprintf("Mode(%d)", int32(m))
	}
}

// Valid reports whether m is one of the defined modes.
func (m Mode) Valid() bool {
	return m >= White && m <= Custom
}

// NoiseType returns the generator behind m.
func (m Mode) NoiseType() noise.Type {
	switch m {
	case Pink:
		return noise.Pink
	case Brown:
		return noise.Brown
	default:
		return noise.White
	}
}

// ParseMode maps a name to a Mode. Unknown names yield White and an error
// wrapping ErrUnknownMode.
func ParseMode(name string) (Mode, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, m := range Modes {
		if m.String() == key {
			return m, nil
		}
	}
	if key == "brownian" || key == "red" {
		return Brown, nil
	}
	return White, fmt.Errorf("%w: %q", ErrUnknownMode, name)
}

// Parameter names a user-tunable knob.
type Parameter int

const (
	ParamGain Parameter = iota
	ParamHighpass
	ParamLowpass
	ParamLowpassQ
	ParamMod
)

// Parameters lists all knobs in display order.
var Parameters = []Parameter{ParamGain, ParamHighpass, ParamLowpass, ParamLowpassQ, ParamMod}

var parameterNames = map[Parameter]string{
	ParamGain:     "gain",
	ParamHighpass: "highpass",
	ParamLowpass:  "lowpass",
	ParamLowpassQ: "q",
	ParamMod:      "mod",
}

var parameterRanges = map[Parameter]core.Range{
	ParamGain:     {Min: 0, Max: 0.5},
	ParamHighpass: {Min: 20, Max: 1200},
	ParamLowpass:  {Min: 200, Max: 3000},
	ParamLowpassQ: {Min: 0.5, Max: 4},
	ParamMod:      {Min: 0, Max: 800},
}

func (p Parameter) String() string {
	if name, ok := parameterNames[p]; ok {
		return name
	}
	return fmt.Sprintf("Parameter(%d)", int(p))
}

// Range returns the accepted interval of p.
func (p Parameter) Range() (core.Range, error) {
	r, ok := parameterRanges[p]
	if !ok {
		return core.Range{}, fmt.Errorf("%w: %d", ErrUnknownParameter, int(p))
	}
	return r, nil
}

// Unit returns the display unit of p.
func (p Parameter) Unit() string {
	switch p {
	case ParamHighpass, ParamLowpass, ParamMod:
		return "Hz"
	default:
		return ""
	}
}

// ParseParameter maps a name to a Parameter.
func ParseParameter(name string) (Parameter, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	switch key {
	case "resonance", "lowpassq":
		return ParamLowpassQ, nil
	case "depth", "moddepth":
		return ParamMod, nil
	}
	for p, n := range parameterNames {
		if n == key {
			return p, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownParameter, name)
}
