package ambient

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-ambient/dsp/core"
	"github.com/cwbudde/algo-ambient/dsp/effects/dynamics"
	"github.com/cwbudde/algo-ambient/dsp/filter/biquad"
	"github.com/cwbudde/algo-ambient/dsp/filter/design"
)

const (
	minQ = 0.1
	maxQ = 20.0
)

// LimiterConfig configures the soft limiter at the end of the chain.
type LimiterConfig struct {
	ThresholdDB float64
	KneeDB      float64
	Ratio       float64
	AttackMs    float64
	ReleaseMs   float64
}

// FilterStageConfig holds the fixed stage constants of the chain.
type FilterStageConfig struct {
	HighpassQ   float64
	NotchHz     float64
	NotchGainDB float64
	NotchQ      float64
	Limiter     LimiterConfig

	// Cutoffs are clamped to [MinCutoffHz, MaxCutoffRatio*sampleRate].
	MinCutoffHz    float64
	MaxCutoffRatio float64
}

// DefaultFilterStages returns the stock chain: Butterworth highpass, a 6 dB
// dip at 1.2 kHz and a limiter just below full scale.
func DefaultFilterStages() FilterStageConfig {
	return FilterStageConfig{
		HighpassQ:   design.ButterworthQ,
		NotchHz:     1200,
		NotchGainDB: -6,
		NotchQ:      1,
		Limiter: LimiterConfig{
			ThresholdDB: -3,
			KneeDB:      6,
			Ratio:       20,
			AttackMs:    3,
			ReleaseMs:   250,
		},
		MinCutoffHz:    20,
		MaxCutoffRatio: 0.45,
	}
}

// Validate checks the stage constants against sampleRate.
func (c FilterStageConfig) Validate(sampleRate float64) error {
	_, err := NewFilterChain(sampleRate, c)
	return err
}

// FilterChain is highpass -> notch -> lowpass -> limiter. It is owned by
// the generation path.
type FilterChain struct {
	sampleRate float64
	cfg        FilterStageConfig
	minHz      float64
	maxHz      float64

	highpass *biquad.Section
	notch    *biquad.Section
	lowpass  *biquad.Section
	limiter  *dynamics.Limiter

	hpHz, lpHz, lpQ float64
	tuned           bool
}

// NewFilterChain builds a chain at sampleRate. The filters start as
// identity sections until the first Retune.
func NewFilterChain(sampleRate float64, cfg FilterStageConfig) (*FilterChain, error) {
	if sampleRate <= 0 || !core.IsFinite(sampleRate) {
		return nil, fmt.Errorf("filter chain: %w: %f", ErrInvalidSampleRate, sampleRate)
	}
	if err := (core.Range{Min: minQ, Max: maxQ}).Check("highpass q", cfg.HighpassQ); err != nil {
		return nil, fmt.Errorf("filter chain: %w", err)
	}
	if err := (core.Range{Min: minQ, Max: maxQ}).Check("notch q", cfg.NotchQ); err != nil {
		return nil, fmt.Errorf("filter chain: %w", err)
	}
	if cfg.MaxCutoffRatio <= 0 || cfg.MaxCutoffRatio >= 0.5 {
		return nil, fmt.Errorf("filter chain: max cutoff ratio must be in (0, 0.5): %f", cfg.MaxCutoffRatio)
	}

	maxHz := cfg.MaxCutoffRatio * sampleRate
	if cfg.MinCutoffHz <= 0 || cfg.MinCutoffHz >= maxHz {
		return nil, fmt.Errorf("filter chain: min cutoff must be in (0, %g): %f", maxHz, cfg.MinCutoffHz)
	}
	if !design.Valid(cfg.NotchHz, sampleRate) {
		return nil, fmt.Errorf("filter chain: notch frequency must be in (0, %g): %f", sampleRate/2, cfg.NotchHz)
	}

	lim, err := dynamics.NewLimiter(sampleRate,
		dynamics.WithThreshold(cfg.Limiter.ThresholdDB),
		dynamics.WithKnee(cfg.Limiter.KneeDB),
		dynamics.WithRatio(cfg.Limiter.Ratio),
		dynamics.WithAttack(cfg.Limiter.AttackMs),
		dynamics.WithRelease(cfg.Limiter.ReleaseMs),
	)
	if err != nil {
		return nil, fmt.Errorf("filter chain: limiter: %w", err)
	}

	return &FilterChain{
		sampleRate: sampleRate,
		cfg:        cfg,
		minHz:      cfg.MinCutoffHz,
		maxHz:      maxHz,
		highpass:   biquad.NewSection(biquad.Identity()),
		notch:      biquad.NewSection(design.Peak(cfg.NotchHz, cfg.NotchGainDB, cfg.NotchQ, sampleRate)),
		lowpass:    biquad.NewSection(biquad.Identity()),
		limiter:    lim,
	}, nil
}

// ClampCutoff limits hz to the designable range of the chain.
func (c *FilterChain) ClampCutoff(hz float64) float64 {
	if math.IsNaN(hz) {
		return c.minHz
	}
	return core.Clamp(hz, c.minHz, c.maxHz)
}

// Retune redesigns the highpass and lowpass for a new operating point and
// reports whether anything changed. Filter memory is kept.
func (c *FilterChain) Retune(highpassHz, lowpassHz, lowpassQ float64) bool {
	hp := c.ClampCutoff(highpassHz)
	lp := c.ClampCutoff(lowpassHz)
	q := core.Clamp(lowpassQ, minQ, maxQ)
	if math.IsNaN(lowpassQ) {
		q = 1
	}
	if c.tuned && hp == c.hpHz && lp == c.lpHz && q == c.lpQ {
		return false
	}
	if !c.tuned || hp != c.hpHz {
		c.highpass.SetCoefficients(design.Highpass(hp, c.cfg.HighpassQ, c.sampleRate))
	}
	if !c.tuned || lp != c.lpHz || q != c.lpQ {
		c.lowpass.SetCoefficients(design.Lowpass(lp, q, c.sampleRate))
	}
	c.hpHz, c.lpHz, c.lpQ = hp, lp, q
	c.tuned = true
	return true
}

// OperatingPoint returns the clamped values of the last Retune.
func (c *FilterChain) OperatingPoint() (highpassHz, lowpassHz, lowpassQ float64) {
	return c.hpHz, c.lpHz, c.lpQ
}

// Process runs buf through all stages in place.
func (c *FilterChain) Process(buf []float64) {
	c.highpass.ProcessBlock(buf)
	c.notch.ProcessBlock(buf)
	c.lowpass.ProcessBlock(buf)
	c.limiter.ProcessInPlace(buf)
}

// ResponseDB returns the small-signal magnitude response of the three
// filters at freqHz. The limiter is not included.
func (c *FilterChain) ResponseDB(freqHz float64) float64 {
	return c.highpass.Coefficients.MagnitudeDB(freqHz, c.sampleRate) +
		c.notch.Coefficients.MagnitudeDB(freqHz, c.sampleRate) +
		c.lowpass.Coefficients.MagnitudeDB(freqHz, c.sampleRate)
}

// LimiterMetrics returns the limiter peak statistics.
func (c *FilterChain) LimiterMetrics() dynamics.Metrics {
	return c.limiter.Metrics()
}

// Reset clears all filter and limiter memory.
func (c *FilterChain) Reset() {
	c.highpass.Reset()
	c.notch.Reset()
	c.lowpass.Reset()
	c.limiter.Reset()
}
