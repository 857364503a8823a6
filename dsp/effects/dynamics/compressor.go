package dynamics

import (
	"fmt"
	"math"
)

const (
	defaultThresholdDB = -20.0
	defaultRatio       = 4.0
	defaultKneeDB      = 6.0
	defaultAttackMs    = 10.0
	defaultReleaseMs   = 100.0

	minRatio     = 1.0
	maxRatio     = 100.0
	minAttackMs  = 0.1
	maxAttackMs  = 1000.0
	minReleaseMs = 1.0
	maxReleaseMs = 5000.0
	minKneeDB    = 0.0
	maxKneeDB    = 24.0

	// dbToLog2 converts dB to log2 units: log2(10) / 20.
	dbToLog2 = 0.166096404744
)

// Metrics records peaks and the deepest gain reduction since the last reset.
type Metrics struct {
	InputPeak  float64
	OutputPeak float64
	// MinGain is the smallest linear gain applied (1 = no reduction).
	MinGain float64
}

// Compressor is a mono soft-knee compressor with a peak envelope follower.
// It is not safe for concurrent use; reconfigure it from the goroutine that
// processes audio or before processing starts.
type Compressor struct {
	thresholdDB  float64
	ratio        float64
	kneeDB       float64
	attackMs     float64
	releaseMs    float64
	makeupGainDB float64
	autoMakeup   bool
	sampleRate   float64

	envelope float64

	attackCoeff  float64
	releaseCoeff float64
	thresholdL2  float64
	kneeL2       float64
	invKneeL2    float64
	slope        float64
	makeupLin    float64

	metrics Metrics
}

// Option configures a Compressor at construction.
type Option func(*Compressor) error

// WithThreshold sets the threshold in dB.
func WithThreshold(dB float64) Option {
	return func(c *Compressor) error { return c.SetThreshold(dB) }
}

// WithRatio sets the compression ratio.
func WithRatio(ratio float64) Option {
	return func(c *Compressor) error { return c.SetRatio(ratio) }
}

// WithKnee sets the soft-knee width in dB.
func WithKnee(dB float64) Option {
	return func(c *Compressor) error { return c.SetKnee(dB) }
}

// WithAttack sets the attack time in milliseconds.
func WithAttack(ms float64) Option {
	return func(c *Compressor) error { return c.SetAttack(ms) }
}

// WithRelease sets the release time in milliseconds.
func WithRelease(ms float64) Option {
	return func(c *Compressor) error { return c.SetRelease(ms) }
}

// WithMakeupGain sets a fixed makeup gain and disables auto makeup.
func WithMakeupGain(dB float64) Option {
	return func(c *Compressor) error { return c.SetMakeupGain(dB) }
}

// NewCompressor returns a compressor with the defaults -20 dB threshold,
// 4:1, 6 dB knee, 10 ms attack, 100 ms release and auto makeup.
func NewCompressor(sampleRate float64, opts ...Option) (*Compressor, error) {
	if !validSampleRate(sampleRate) {
		return nil, fmt.Errorf("compressor sample rate must be positive and finite: %f", sampleRate)
	}

	c := &Compressor{
		thresholdDB: defaultThresholdDB,
		ratio:       defaultRatio,
		kneeDB:      defaultKneeDB,
		attackMs:    defaultAttackMs,
		releaseMs:   defaultReleaseMs,
		autoMakeup:  true,
		sampleRate:  sampleRate,
		metrics:     Metrics{MinGain: 1},
	}
	c.update()

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func validSampleRate(sr float64) bool {
	return sr > 0 && !math.IsNaN(sr) && !math.IsInf(sr, 0)
}

func checkRange(name string, v, lo, hi float64) error {
	if math.IsNaN(v) || v < lo || v > hi {
		return fmt.Errorf("compressor %s must be in [%f, %f]: %f", name, lo, hi, v)
	}
	return nil
}

// SetThreshold sets the threshold in dB.
func (c *Compressor) SetThreshold(dB float64) error {
	if math.IsNaN(dB) || math.IsInf(dB, 0) {
		return fmt.Errorf("compressor threshold must be finite: %f", dB)
	}
	c.thresholdDB = dB
	c.update()
	return nil
}

// SetRatio sets the ratio in [1, 100]; 1 disables compression.
func (c *Compressor) SetRatio(ratio float64) error {
	if err := checkRange("ratio", ratio, minRatio, maxRatio); err != nil {
		return err
	}
	c.ratio = ratio
	c.update()
	return nil
}

// SetKnee sets the knee width in [0, 24] dB; 0 is a hard knee.
func (c *Compressor) SetKnee(dB float64) error {
	if err := checkRange("knee", dB, minKneeDB, maxKneeDB); err != nil {
		return err
	}
	c.kneeDB = dB
	c.update()
	return nil
}

// SetAttack sets the attack time in [0.1, 1000] ms.
func (c *Compressor) SetAttack(ms float64) error {
	if err := checkRange("attack", ms, minAttackMs, maxAttackMs); err != nil {
		return err
	}
	c.attackMs = ms
	c.updateTimeConstants()
	return nil
}

// SetRelease sets the release time in [1, 5000] ms.
func (c *Compressor) SetRelease(ms float64) error {
	if err := checkRange("release", ms, minReleaseMs, maxReleaseMs); err != nil {
		return err
	}
	c.releaseMs = ms
	c.updateTimeConstants()
	return nil
}

// SetMakeupGain sets a fixed makeup gain in dB and disables auto makeup.
func (c *Compressor) SetMakeupGain(dB float64) error {
	if math.IsNaN(dB) || math.IsInf(dB, 0) {
		return fmt.Errorf("compressor makeup gain must be finite: %f", dB)
	}
	c.makeupGainDB = dB
	c.autoMakeup = false
	c.update()
	return nil
}

// SetAutoMakeup toggles makeup gain that compensates the reduction at threshold.
func (c *Compressor) SetAutoMakeup(enable bool) {
	c.autoMakeup = enable
	c.update()
}

// SetSampleRate changes the sample rate and recomputes the time constants.
func (c *Compressor) SetSampleRate(sampleRate float64) error {
	if !validSampleRate(sampleRate) {
		return fmt.Errorf("compressor sample rate must be positive and finite: %f", sampleRate)
	}
	c.sampleRate = sampleRate
	c.updateTimeConstants()
	return nil
}

func (c *Compressor) Threshold() float64  { return c.thresholdDB }
func (c *Compressor) Ratio() float64      { return c.ratio }
func (c *Compressor) Knee() float64       { return c.kneeDB }
func (c *Compressor) Attack() float64     { return c.attackMs }
func (c *Compressor) Release() float64    { return c.releaseMs }
func (c *Compressor) MakeupGain() float64 { return c.makeupGainDB }
func (c *Compressor) SampleRate() float64 { return c.sampleRate }

// ProcessSample compresses one sample.
func (c *Compressor) ProcessSample(x float64) float64 {
	level := math.Abs(x)
	if level > c.envelope {
		c.envelope += (level - c.envelope) * c.attackCoeff
	} else {
		c.envelope = level + (c.envelope-level)*c.releaseCoeff
	}

	g := c.gain(c.envelope)
	y := x * g * c.makeupLin

	if level > c.metrics.InputPeak {
		c.metrics.InputPeak = level
	}
	if a := math.Abs(y); a > c.metrics.OutputPeak {
		c.metrics.OutputPeak = a
	}
	if g < c.metrics.MinGain {
		c.metrics.MinGain = g
	}
	return y
}

// ProcessInPlace compresses buf in place.
func (c *Compressor) ProcessInPlace(buf []float64) {
	for i, x := range buf {
		buf[i] = c.ProcessSample(x)
	}
}

// OutputLevel returns the static curve: the steady-state output magnitude
// for a constant input magnitude.
func (c *Compressor) OutputLevel(input float64) float64 {
	input = math.Abs(input)
	return input * c.gain(input) * c.makeupLin
}

// Envelope returns the follower's current level.
func (c *Compressor) Envelope() float64 {
	return c.envelope
}

// Metrics returns the meters since the last reset.
func (c *Compressor) Metrics() Metrics {
	return c.metrics
}

// ResetMetrics clears the meters.
func (c *Compressor) ResetMetrics() {
	c.metrics = Metrics{MinGain: 1}
}

// Reset clears the envelope and the meters.
func (c *Compressor) Reset() {
	c.envelope = 0
	c.ResetMetrics()
}

func (c *Compressor) update() {
	c.thresholdL2 = c.thresholdDB * dbToLog2
	c.kneeL2 = c.kneeDB * dbToLog2
	c.invKneeL2 = 0
	if c.kneeDB > 0 {
		c.invKneeL2 = 1 / c.kneeL2
	}
	c.slope = 1 - 1/c.ratio

	if c.autoMakeup {
		c.makeupGainDB = -c.thresholdDB * c.slope
	}
	c.makeupLin = mathPower10(c.makeupGainDB / 20)

	c.updateTimeConstants()
}

// updateTimeConstants derives half-life coefficients from the times.
func (c *Compressor) updateTimeConstants() {
	c.attackCoeff = 1 - math.Exp(-math.Ln2/(c.attackMs*0.001*c.sampleRate))
	c.releaseCoeff = math.Exp(-math.Ln2 / (c.releaseMs * 0.001 * c.sampleRate))
}

// gain evaluates the static curve at level. Inside the knee the overshoot
// is replaced by (o + k/2)^2 / (2k).
func (c *Compressor) gain(level float64) float64 {
	if level <= 0 {
		return 1
	}
	over := mathLog2(level) - c.thresholdL2

	if c.kneeDB <= 0 {
		if over <= 0 {
			return 1
		}
		return mathPower2(-over * c.slope)
	}

	half := c.kneeL2 * 0.5
	switch {
	case over < -half:
		return 1
	case over <= half:
		s := over + half
		over = s * s * 0.5 * c.invKneeL2
	}
	return mathPower2(-over * c.slope)
}
