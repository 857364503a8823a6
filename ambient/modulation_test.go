package ambient

import (
	"math"
	"testing"
)

func TestModulatorStartsNeutral(t *testing.T) {
	m, err := NewModulator(DefaultModulation())
	if err != nil {
		t.Fatal(err)
	}
	f := m.Step(0.01)
	if f.Timbre != 0 || f.Breathe != 1 || f.Pan != 0 {
		t.Fatalf("first frame = %+v, want neutral", f)
	}
}

func TestModulatorQuarterPeriod(t *testing.T) {
	m, err := NewModulator(DefaultModulation())
	if err != nil {
		t.Fatal(err)
	}
	// 12.5 s is a quarter cycle of the 0.02 Hz routes.
	for i := 0; i < 1250; i++ {
		m.Step(0.01)
	}
	f := m.Step(0.01)

	if math.Abs(f.Breathe-1.05) > 1e-6 {
		t.Fatalf("breathe = %g, want 1.05", f.Breathe)
	}
	if math.Abs(f.Pan-0.3) > 1e-6 {
		t.Fatalf("pan = %g, want 0.3", f.Pan)
	}
	wantTimbre := math.Sin(2 * math.Pi * 0.025 * 12.5)
	if math.Abs(f.Timbre-wantTimbre) > 1e-6 {
		t.Fatalf("timbre = %g, want %g", f.Timbre, wantTimbre)
	}
}

func TestModulatorDisabledRoutes(t *testing.T) {
	cfg := DefaultModulation()
	cfg.Timbre.Enabled = false
	cfg.Breathe.Enabled = false
	cfg.Pan.Enabled = false
	m, err := NewModulator(cfg)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 100; i++ {
		f := m.Step(0.1)
		if f != (ModulationFrame{Breathe: 1}) {
			t.Fatalf("step %d = %+v, want neutral", i, f)
		}
	}
}

func TestModulatorReset(t *testing.T) {
	m, err := NewModulator(DefaultModulation())
	if err != nil {
		t.Fatal(err)
	}
	m.Step(7)
	m.Reset()
	if f := m.Step(0.01); f.Pan != 0 || f.Timbre != 0 {
		t.Fatalf("after reset = %+v", f)
	}
}

func TestNewModulatorValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ModulationConfig)
	}{
		{"zero rate", func(c *ModulationConfig) { c.Timbre.RateHz = 0 }},
		{"negative depth", func(c *ModulationConfig) { c.Pan.Depth = -1 }},
		{"breathe depth", func(c *ModulationConfig) { c.Breathe.Depth = 1.5 }},
		{"pan depth", func(c *ModulationConfig) { c.Pan.Depth = 2 }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultModulation()
			tc.mutate(&cfg)
			if _, err := NewModulator(cfg); err == nil {
				t.Fatal("NewModulator() succeeded, want error")
			}
		})
	}
}
