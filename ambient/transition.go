package ambient

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
)

// TransitionState is the phase of the transition controller.
type TransitionState int32

const (
	Steady TransitionState = iota
	Switching
)

func (s TransitionState) String() string {
	switch s {
	case Steady:
		return "steady"
	case Switching:
		return "switching"
	default:
		return fmt.Sprintf("TransitionState(%d)", int32(s))
	}
}

// TransitionTiming holds the time constants of a mode switch. Taus are in
// seconds.
type TransitionTiming struct {
	MuteTau      float64
	QuietPeriod  time.Duration
	QuietLevel   float64
	PollInterval time.Duration
	MaxWait      time.Duration
	RetuneTau    float64
	ParamTau     float64
	FadeInTau    float64
}

// DefaultTransitionTiming returns the stock timing.
func DefaultTransitionTiming() TransitionTiming {
	return TransitionTiming{
		MuteTau:      0.05,
		QuietPeriod:  100 * time.Millisecond,
		QuietLevel:   0.002,
		PollInterval: 10 * time.Millisecond,
		MaxWait:      time.Second,
		RetuneTau:    0.5,
		ParamTau:     0.2,
		FadeInTau:    0.5,
	}
}

// Validate rejects negative or unusable timing values.
func (t TransitionTiming) Validate() error {
	switch {
	case t.MuteTau < 0, t.RetuneTau < 0, t.ParamTau < 0, t.FadeInTau < 0:
		return fmt.Errorf("transition: time constants must be >= 0")
	case t.QuietPeriod < 0, t.MaxWait < 0:
		return fmt.Errorf("transition: durations must be >= 0")
	case t.PollInterval <= 0:
		return fmt.Errorf("transition: poll interval must be > 0: %v", t.PollInterval)
	case t.QuietLevel < 0:
		return fmt.Errorf("transition: quiet level must be >= 0: %f", t.QuietLevel)
	}
	return nil
}

// Switcher is what the transition controller drives. All methods are called
// with the controller lock held.
type Switcher interface {
	// ActiveMode returns the mode currently feeding the generator.
	ActiveMode() Mode
	// Rendering reports whether the generation path is consuming audio.
	Rendering() bool
	// GainLevel returns the smoothed master gain last seen by the
	// generation path.
	GainLevel() float64
	// Mute ramps the master gain to zero with time constant tau.
	Mute(tau float64)
	// Apply switches the generator to m and retargets every smoothed
	// parameter to its preset with time constant tau (0 jumps).
	Apply(m Mode, tau float64)
}

// TransitionController runs the fade-out, swap, fade-in sequence.
type TransitionController struct {
	mu     sync.Locker
	target Switcher
	clock  Clock
	timing TransitionTiming
	log    logrus.FieldLogger

	state   atomic.Int32
	pending atomic.Int32
	seq     uint64
	timer   Timer
}

// NewTransitionController returns a controller that serializes on its own
// mutex.
func NewTransitionController(target Switcher, clock Clock, timing TransitionTiming, log logrus.FieldLogger) *TransitionController {
	return newTransitionController(&sync.Mutex{}, target, clock, timing, log)
}

func newTransitionController(mu sync.Locker, target Switcher, clock Clock, timing TransitionTiming, log logrus.FieldLogger) *TransitionController {
	if clock == nil {
		clock = SystemClock()
	}
	if log == nil {
		log = discardLogger()
	}
	tc := &TransitionController{mu: mu, target: target, clock: clock, timing: timing, log: log}
	tc.pending.Store(int32(target.ActiveMode()))
	return tc
}

// State returns Steady or Switching.
func (tc *TransitionController) State() TransitionState {
	return TransitionState(tc.state.Load())
}

// Pending returns the mode the controller is heading for. While Steady it
// equals the active mode.
func (tc *TransitionController) Pending() Mode {
	return Mode(tc.pending.Load())
}

// Request starts a transition to m, superseding any transition in flight.
func (tc *TransitionController) Request(m Mode) {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	tc.request(m)
}

// Cancel drops a pending transition without applying it.
func (tc *TransitionController) Cancel() {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	tc.cancel()
}

func (tc *TransitionController) cancel() {
	tc.seq++
	if tc.timer != nil {
		tc.timer.Stop()
		tc.timer = nil
	}
	tc.pending.Store(int32(tc.target.ActiveMode()))
	tc.state.Store(int32(Steady))
}

// request must be called with the lock held.
func (tc *TransitionController) request(m Mode) {
	active := tc.target.ActiveMode()
	if tc.State() == Steady && m == active {
		tc.log.WithField("mode", m).Debug("mode already active")
		return
	}

	tc.seq++
	if tc.timer != nil {
		tc.timer.Stop()
		tc.timer = nil
	}
	tc.pending.Store(int32(m))

	fields := logrus.Fields{"from": active, "to": m}
	if !tc.target.Rendering() {
		tc.target.Apply(m, 0)
		tc.state.Store(int32(Steady))
		tc.log.WithFields(fields).Info("mode switched while idle")
		return
	}

	tc.state.Store(int32(Switching))
	tc.target.Mute(tc.timing.MuteTau)
	tc.log.WithFields(fields).Debug("mode transition started")

	seq := tc.seq
	tc.timer = tc.clock.AfterFunc(tc.timing.QuietPeriod, func() { tc.fire(seq, 0) })
}

func (tc *TransitionController) fire(seq uint64, waited time.Duration) {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	if seq != tc.seq {
		return
	}
	tc.timer = nil

	m := tc.Pending()
	level := tc.target.GainLevel()
	if tc.target.Rendering() && level > tc.timing.QuietLevel {
		if waited < tc.timing.MaxWait {
			next := waited + tc.timing.PollInterval
			tc.timer = tc.clock.AfterFunc(tc.timing.PollInterval, func() { tc.fire(seq, next) })
			return
		}
		tc.log.WithFields(logrus.Fields{"to": m, "gain": level}).Warn("output not quiet before mode swap")
	}

	tc.target.Apply(m, tc.timing.RetuneTau)
	tc.state.Store(int32(Steady))
	tc.log.WithFields(logrus.Fields{"to": m, "waited": tc.timing.QuietPeriod + waited}).Info("mode switched")
}
