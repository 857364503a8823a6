package ambient

import (
	"fmt"
	"io"
	"math"

	"github.com/cwbudde/algo-ambient/dsp/core"
	"github.com/cwbudde/algo-ambient/dsp/noise"
	"github.com/sirupsen/logrus"
)

const (
	defaultSampleRate    = 48000
	defaultBlockSize     = 512
	defaultControlPeriod = 128
	defaultTapSize       = 4096
	defaultSeed          = 1
)

// Option configures an Engine.
type Option func(*config) error

type config struct {
	proc          core.ProcessorConfig
	controlPeriod int
	seed          int64
	noiseParams   noise.Params
	presets       Presets
	custom        Preset
	initialMode   Mode
	stages        FilterStageConfig
	modulation    ModulationConfig
	timing        TransitionTiming
	clock         Clock
	log           logrus.FieldLogger
	tapSize       int
}

func defaultConfig() config {
	presets := DefaultPresets()
	return config{
		proc: core.ApplyProcessorOptions(
			core.WithSampleRate(defaultSampleRate),
			core.WithBlockSize(defaultBlockSize),
			core.WithChannels(2),
		),
		controlPeriod: defaultControlPeriod,
		seed:          defaultSeed,
		noiseParams:   noise.DefaultParams(),
		presets:       presets,
		custom:        presets.White,
		initialMode:   White,
		stages:        DefaultFilterStages(),
		modulation:    DefaultModulation(),
		timing:        DefaultTransitionTiming(),
		clock:         SystemClock(),
		log:           discardLogger(),
		tapSize:       defaultTapSize,
	}
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// WithProcessorOptions applies shared processor options (sample rate,
// block size, channels) on top of the current configuration.
func WithProcessorOptions(opts ...core.ProcessorOption) Option {
	return func(c *config) error {
		for _, opt := range opts {
			if opt != nil {
				opt(&c.proc)
			}
		}
		return nil
	}
}

// WithSampleRate sets the output sample rate in Hz.
func WithSampleRate(sampleRate float64) Option {
	return func(c *config) error {
		if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
			return fmt.Errorf("%w: %f", ErrInvalidSampleRate, sampleRate)
		}
		c.proc.SampleRate = sampleRate
		return nil
	}
}

// WithBlockSize sets the nominal host block size in frames.
func WithBlockSize(frames int) Option {
	return func(c *config) error {
		if frames <= 0 {
			return fmt.Errorf("%w: block size %d", ErrInvalidBlockSize, frames)
		}
		c.proc.BlockSize = frames
		return nil
	}
}

// WithControlPeriod sets how many samples share one filter design.
func WithControlPeriod(samples int) Option {
	return func(c *config) error {
		if samples <= 0 {
			return fmt.Errorf("%w: control period %d", ErrInvalidBlockSize, samples)
		}
		c.controlPeriod = samples
		return nil
	}
}

// WithChannels selects mono (1) or stereo (2) interleaved output.
func WithChannels(channels int) Option {
	return func(c *config) error {
		if channels != 1 && channels != 2 {
			return fmt.Errorf("%w: %d", ErrInvalidChannels, channels)
		}
		c.proc.Channels = channels
		return nil
	}
}

// WithSeed seeds the noise generator.
func WithSeed(seed int64) Option {
	return func(c *config) error {
		c.seed = seed
		return nil
	}
}

// WithNoiseParams overrides the generator constants.
func WithNoiseParams(p noise.Params) Option {
	return func(c *config) error {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("noise params: %w", err)
		}
		c.noiseParams = p
		return nil
	}
}

// WithPresets replaces the built-in operating points. Values are clamped
// to the parameter ranges.
func WithPresets(p Presets) Option {
	return func(c *config) error {
		c.presets = Presets{White: p.White.Clamp(), Pink: p.Pink.Clamp(), Brown: p.Brown.Clamp()}
		return nil
	}
}

// WithCustomPreset sets the initial custom-mode values.
func WithCustomPreset(p Preset) Option {
	return func(c *config) error {
		c.custom = p.Clamp()
		return nil
	}
}

// WithInitialMode selects the mode active before the first SetType.
func WithInitialMode(m Mode) Option {
	return func(c *config) error {
		if !m.Valid() {
			return fmt.Errorf("%w: %d", ErrUnknownMode, int32(m))
		}
		c.initialMode = m
		return nil
	}
}

// WithFilterStages replaces the fixed chain constants.
func WithFilterStages(s FilterStageConfig) Option {
	return func(c *config) error {
		c.stages = s
		return nil
	}
}

// WithModulation replaces the LFO routes.
func WithModulation(m ModulationConfig) Option {
	return func(c *config) error {
		c.modulation = m
		return nil
	}
}

// WithTransitionTiming replaces the mode switch timing.
func WithTransitionTiming(t TransitionTiming) Option {
	return func(c *config) error {
		if err := t.Validate(); err != nil {
			return err
		}
		c.timing = t
		return nil
	}
}

// WithClock sets the scheduler for transition callbacks.
func WithClock(clock Clock) Option {
	return func(c *config) error {
		if clock == nil {
			return fmt.Errorf("clock must not be nil")
		}
		c.clock = clock
		return nil
	}
}

// WithLogger sets the control path logger.
func WithLogger(log logrus.FieldLogger) Option {
	return func(c *config) error {
		if log == nil {
			log = discardLogger()
		}
		c.log = log
		return nil
	}
}

// WithTapSize sets the visualization ring size; it is rounded up to a
// power of two.
func WithTapSize(samples int) Option {
	return func(c *config) error {
		if samples < 2 {
			return fmt.Errorf("tap size must be >= 2: %d", samples)
		}
		c.tapSize = samples
		return nil
	}
}

func (c *config) validate() error {
	if c.proc.SampleRate <= 0 || !core.IsFinite(c.proc.SampleRate) {
		return fmt.Errorf("%w: %f", ErrInvalidSampleRate, c.proc.SampleRate)
	}
	if c.proc.BlockSize <= 0 {
		return fmt.Errorf("%w: block size %d", ErrInvalidBlockSize, c.proc.BlockSize)
	}
	if c.proc.Channels != 1 && c.proc.Channels != 2 {
		return fmt.Errorf("%w: %d", ErrInvalidChannels, c.proc.Channels)
	}
	if c.controlPeriod > c.proc.BlockSize {
		c.controlPeriod = c.proc.BlockSize
	}
	if err := c.stages.Validate(c.proc.SampleRate); err != nil {
		return err
	}
	if _, err := NewModulator(c.modulation); err != nil {
		return err
	}
	return nil
}
