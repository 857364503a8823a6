package dynamics

// Limiter is a Compressor preset for peak control: 100:1, hard knee,
// 0.1 ms attack and no makeup gain. Options passed to NewLimiter are
// applied on top of the preset.
type Limiter struct {
	comp *Compressor
}

// NewLimiter returns a limiter at 0 dBFS unless opts override it.
func NewLimiter(sampleRate float64, opts ...Option) (*Limiter, error) {
	preset := []Option{
		WithThreshold(0),
		WithRatio(maxRatio),
		WithKnee(0),
		WithAttack(minAttackMs),
		WithMakeupGain(0),
	}
	c, err := NewCompressor(sampleRate, append(preset, opts...)...)
	if err != nil {
		return nil, err
	}
	return &Limiter{comp: c}, nil
}

// SetThreshold sets the ceiling in dB.
func (l *Limiter) SetThreshold(dB float64) error {
	return l.comp.SetThreshold(dB)
}

// SetRelease sets the release time in milliseconds.
func (l *Limiter) SetRelease(ms float64) error {
	return l.comp.SetRelease(ms)
}

// SetSampleRate changes the sample rate.
func (l *Limiter) SetSampleRate(sampleRate float64) error {
	return l.comp.SetSampleRate(sampleRate)
}

// ProcessSample limits one sample.
func (l *Limiter) ProcessSample(x float64) float64 {
	return l.comp.ProcessSample(x)
}

// ProcessInPlace limits buf in place.
func (l *Limiter) ProcessInPlace(buf []float64) {
	l.comp.ProcessInPlace(buf)
}

// OutputLevel returns the static curve at input.
func (l *Limiter) OutputLevel(input float64) float64 {
	return l.comp.OutputLevel(input)
}

// Compressor exposes the underlying gain computer for inspection.
func (l *Limiter) Compressor() *Compressor {
	return l.comp
}

// Metrics returns the meters since the last reset.
func (l *Limiter) Metrics() Metrics {
	return l.comp.Metrics()
}

// Reset clears the envelope and the meters.
func (l *Limiter) Reset() {
	l.comp.Reset()
}
