//go:build headless

package player

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Player is the device-free twin used in headless builds. It pulls from
// the source at real-time pace and discards the audio.
type Player struct {
	reader  *reader
	log     logrus.FieldLogger
	period  time.Duration
	bytes   []byte
	started bool
	stop    chan struct{}
	done    chan struct{}
	mu      sync.Mutex
}

// New returns a headless player.
func New(src Source, cfg Config) (*Player, error) {
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	frames := cfg.prealloc()
	return &Player{
		reader: newReader(src, cfg.Channels, frames),
		log:    cfg.Logger,
		period: time.Duration(float64(frames) / float64(cfg.SampleRate) * float64(time.Second)),
		bytes:  make([]byte, frames*cfg.Channels*bytesPerSample),
	}, nil
}

// Start begins pulling audio from the source.
func (p *Player) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started {
		return
	}
	p.started = true
	p.stop = make(chan struct{})
	p.done = make(chan struct{})
	go p.loop(p.stop, p.done)
	p.log.Debug("headless playback started")
}

func (p *Player) loop(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	ticker := time.NewTicker(p.period)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			_, _ = p.reader.Read(p.bytes)
		}
	}
}

// Stop halts the pull loop.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.started {
		return
	}
	close(p.stop)
	<-p.done
	p.started = false
}

// Close stops the player.
func (p *Player) Close() error {
	p.Stop()
	p.reader.setSource(nil)
	return nil
}

// IsStarted reports whether the pull loop runs.
func (p *Player) IsStarted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.started
}
