package ambient

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/cwbudde/algo-ambient/dsp/core"
	"github.com/cwbudde/algo-ambient/dsp/effects/modulation"
	"github.com/cwbudde/algo-ambient/dsp/noise"
	"github.com/cwbudde/algo-ambient/dsp/smooth"
	"github.com/cwbudde/algo-vecmath"
	"github.com/sirupsen/logrus"
)

// Status is a view of the smoothed parameters as last seen by the
// generation path.
type Status struct {
	Mode       Mode
	State      TransitionState
	Running    bool
	Gain       float64
	HighpassHz float64
	LowpassHz  float64
	LowpassQ   float64
	ModDepthHz float64
}

// Engine is the ambient-noise generator.
type Engine struct {
	cfg config
	log logrus.FieldLogger

	// mu serializes the control path, including transition callbacks.
	mu         sync.Mutex
	initOnce   sync.Once
	initErr    error
	ready      atomic.Bool
	running    atomic.Bool
	closed     atomic.Bool
	mode       atomic.Int32
	custom     atomic.Pointer[Preset]
	transition *TransitionController

	gain     *smooth.Smoother
	highpass *smooth.Smoother
	lowpass  *smooth.Smoother
	q        *smooth.Smoother
	modDepth *smooth.Smoother

	// Owned by the generation path after init.
	src     *noise.Source
	chain   *FilterChain
	mod     *Modulator
	tap     *Tap
	dt      float64
	mix     []float64
	gainBuf []float64
}

// New returns an engine configured by opts. DSP state is built on first
// activation.
func New(opts ...Option) (*Engine, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, fmt.Errorf("ambient: %w", err)
		}
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("ambient: %w", err)
	}

	p := cfg.presets.For(cfg.initialMode)
	if cfg.initialMode == Custom {
		p = cfg.custom
	}
	e := &Engine{
		cfg:      cfg,
		log:      cfg.log,
		gain:     smooth.New(p.Gain),
		highpass: smooth.New(p.HighpassHz),
		lowpass:  smooth.New(p.LowpassHz),
		q:        smooth.New(p.LowpassQ),
		modDepth: smooth.New(p.ModDepthHz),
		tap:      newTap(cfg.tapSize, cfg.proc.SampleRate),
	}
	custom := cfg.custom
	e.custom.Store(&custom)
	e.mode.Store(int32(cfg.initialMode))
	e.transition = newTransitionController(&e.mu, (*engineSwitcher)(e), cfg.clock, cfg.timing, cfg.log)
	return e, nil
}

// activate builds the DSP state once. Must hold e.mu.
func (e *Engine) activate() error {
	e.initOnce.Do(func() {
		src, err := noise.New(
			noise.WithSeed(e.cfg.seed),
			noise.WithParams(e.cfg.noiseParams),
			noise.WithType(Mode(e.mode.Load()).NoiseType()),
		)
		if err != nil {
			e.initErr = fmt.Errorf("ambient: noise source: %w", err)
			return
		}
		chain, err := NewFilterChain(e.cfg.proc.SampleRate, e.cfg.stages)
		if err != nil {
			e.initErr = fmt.Errorf("ambient: %w", err)
			return
		}
		mod, err := NewModulator(e.cfg.modulation)
		if err != nil {
			e.initErr = fmt.Errorf("ambient: %w", err)
			return
		}
		e.src = src
		e.chain = chain
		e.mod = mod
		e.dt = float64(e.cfg.controlPeriod) / e.cfg.proc.SampleRate
		e.mix = make([]float64, e.cfg.controlPeriod)
		e.gainBuf = make([]float64, e.cfg.controlPeriod)
		e.ready.Store(true)
		e.log.WithFields(logrus.Fields{
			"sample_rate":    e.cfg.proc.SampleRate,
			"control_period": e.cfg.controlPeriod,
			"channels":       e.cfg.proc.Channels,
			"mode":           Mode(e.mode.Load()),
		}).Debug("engine activated")
	})
	return e.initErr
}

// SetType requests a mode change. Invalid modes fall back to White. While
// rendering, the switch fades out, swaps and fades back in.
func (e *Engine) SetType(m Mode) {
	if !m.Valid() {
		e.log.WithField("mode", int32(m)).Warn("unknown mode, using white")
		m = White
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed.Load() {
		return
	}
	if err := e.activate(); err != nil {
		e.log.WithError(err).Error("engine activation failed")
		return
	}
	e.transition.request(m)
}

// SetParameter stores a custom-mode value, clamped to its range. NaN is
// rejected with ErrInvalidValue and the stored value is kept. When
// Custom is active and steady the value ramps in immediately; a pending
// switch into Custom picks it up on swap.
func (e *Engine) SetParameter(p Parameter, value float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed.Load() {
		return ErrClosed
	}

	next, err := e.custom.Load().With(p, value)
	if err != nil {
		e.log.WithError(err).WithField("parameter", int(p)).Warn("parameter rejected")
		return err
	}
	e.custom.Store(&next)

	v, _ := next.Value(p)
	fields := logrus.Fields{"parameter": p, "value": v}
	if Mode(e.mode.Load()) != Custom || e.transition.State() != Steady {
		e.log.WithFields(fields).Debug("custom parameter stored")
		return nil
	}
	e.smootherFor(p).SetTarget(v, e.cfg.timing.ParamTau)
	e.log.WithFields(fields).Debug("custom parameter applied")
	return nil
}

func (e *Engine) smootherFor(p Parameter) *smooth.Smoother {
	switch p {
	case ParamHighpass:
		return e.highpass
	case ParamLowpass:
		return e.lowpass
	case ParamLowpassQ:
		return e.q
	case ParamMod:
		return e.modDepth
	default:
		return e.gain
	}
}

// Start begins rendering and fades the gain in from silence.
func (e *Engine) Start() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed.Load() {
		return ErrClosed
	}
	if err := e.activate(); err != nil {
		return err
	}
	if e.running.Load() {
		return nil
	}
	e.gain.SetTargetFrom(0, e.gain.Target(), e.cfg.timing.FadeInTau)
	e.running.Store(true)
	e.log.WithField("mode", Mode(e.mode.Load())).Info("engine started")
	return nil
}

// Stop suspends rendering. Generator, filter and LFO memory is kept.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.running.Swap(false) {
		e.log.Info("engine stopped")
	}
}

// Close stops the engine and cancels any pending transition. Render keeps
// returning silence afterwards.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed.Swap(true) {
		return nil
	}
	e.running.Store(false)
	e.transition.cancel()
	e.log.Debug("engine closed")
	return nil
}

// Mode returns the mode feeding the generator.
func (e *Engine) Mode() Mode {
	return Mode(e.mode.Load())
}

// PendingMode returns the mode a transition in flight is heading for.
func (e *Engine) PendingMode() Mode {
	return e.transition.Pending()
}

// Running reports whether Render produces audio.
func (e *Engine) Running() bool {
	return e.running.Load()
}

// TransitionState reports whether a mode switch is in flight.
func (e *Engine) TransitionState() TransitionState {
	return e.transition.State()
}

// Parameters returns the smoothed parameter values.
func (e *Engine) Parameters() Status {
	return Status{
		Mode:       e.Mode(),
		State:      e.TransitionState(),
		Running:    e.Running(),
		Gain:       e.gain.Value(),
		HighpassHz: e.highpass.Value(),
		LowpassHz:  e.lowpass.Value(),
		LowpassQ:   e.q.Value(),
		ModDepthHz: e.modDepth.Value(),
	}
}

// CustomPreset returns the stored custom-mode values.
func (e *Engine) CustomPreset() Preset {
	return *e.custom.Load()
}

// Presets returns the built-in operating points.
func (e *Engine) Presets() Presets {
	return e.cfg.presets
}

// SampleRate returns the output rate in Hz.
func (e *Engine) SampleRate() float64 {
	return e.cfg.proc.SampleRate
}

// Channels returns the interleaved channel count.
func (e *Engine) Channels() int {
	return e.cfg.proc.Channels
}

// BlockSize returns the nominal host block size.
func (e *Engine) BlockSize() int {
	return e.cfg.proc.BlockSize
}

// Tap returns the visualization tap.
func (e *Engine) Tap() *Tap {
	return e.tap
}

// Render fills left and right with the next len(left) frames. A nil right
// renders mono without panning. When right is shorter, only len(right)
// frames are rendered and the rest of left is silenced. Stopped engines
// write silence and advance nothing. Render must only be called from one
// goroutine at a time.
func (e *Engine) Render(left, right []float32) {
	if right != nil && len(right) < len(left) {
		core.Zero32(left[len(right):])
		left = left[:len(right)]
	}
	if !e.ready.Load() || !e.running.Load() {
		core.Zero32(left)
		if right != nil {
			core.Zero32(right[:len(left)])
		}
		return
	}

	for off := 0; off < len(left); {
		n := min(len(left)-off, len(e.mix))
		var r []float32
		if right != nil {
			r = right[off : off+n]
		}
		e.renderSlice(left[off:off+n], r)
		off += n
	}
}

// RenderInterleaved fills dst with interleaved frames in the configured
// channel layout.
func (e *Engine) RenderInterleaved(dst []float32) {
	ch := e.cfg.proc.Channels
	frames := len(dst) / ch
	if !e.ready.Load() || !e.running.Load() {
		core.Zero32(dst)
		return
	}

	var l, r [defaultControlPeriod]float32
	for off := 0; off < frames; {
		n := min(frames-off, len(e.mix), len(l))
		if ch == 1 {
			e.renderSlice(dst[off:off+n], nil)
		} else {
			e.renderSlice(l[:n], r[:n])
			out := dst[2*off : 2*(off+n)]
			for i := 0; i < n; i++ {
				out[2*i] = l[i]
				out[2*i+1] = r[i]
			}
		}
		off += n
	}
	core.Zero32(dst[frames*ch:])
}

// renderSlice produces one control slice of at most len(e.mix) frames.
func (e *Engine) renderSlice(left, right []float32) {
	n := len(left)
	dt := float64(n) / e.cfg.proc.SampleRate
	buf := e.mix[:n]

	hp := e.highpass.Advance(dt)
	lp := e.lowpass.Advance(dt)
	q := e.q.Advance(dt)
	depth := e.modDepth.Advance(dt)
	f := e.mod.Step(dt)

	e.chain.Retune(hp, lp+depth*f.Timbre, q)
	e.src.GenerateBlock(buf)
	e.chain.Process(buf)

	g := e.gainBuf[:n]
	e.gain.Fill(g, e.cfg.proc.SampleRate)
	vecmath.MulBlockInPlace(buf, g)
	if f.Breathe != 1 {
		vecmath.ScaleBlockInPlace(buf, f.Breathe)
	}
	e.tap.write(buf)

	if right == nil {
		core.ToFloat32(left, buf)
		return
	}
	if !e.cfg.modulation.Pan.Enabled {
		core.ToFloat32(left, buf)
		copy(right, left)
		return
	}
	pl, pr := modulation.EqualPower(f.Pan)
	core.ScaleToFloat32(left, buf, pl)
	core.ScaleToFloat32(right, buf, pr)
}

// engineSwitcher is the Engine as seen by its transition controller.
type engineSwitcher Engine

func (s *engineSwitcher) ActiveMode() Mode {
	return Mode(s.mode.Load())
}

func (s *engineSwitcher) Rendering() bool {
	return s.ready.Load() && s.running.Load()
}

func (s *engineSwitcher) GainLevel() float64 {
	return s.gain.Value()
}

func (s *engineSwitcher) Mute(tau float64) {
	s.gain.SetTarget(0, tau)
}

func (s *engineSwitcher) Apply(m Mode, tau float64) {
	p := s.cfg.presets.For(m)
	if m == Custom {
		p = *s.custom.Load()
	}
	if s.src != nil {
		s.src.SetType(m.NoiseType())
	}
	s.mode.Store(int32(m))

	s.highpass.SetTarget(p.HighpassHz, tau)
	s.lowpass.SetTarget(p.LowpassHz, tau)
	s.q.SetTarget(p.LowpassQ, tau)
	s.modDepth.SetTarget(p.ModDepthHz, tau)
	s.gain.SetTarget(p.Gain, tau)
}
