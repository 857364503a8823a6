//go:build !headless

package player

import (
	"fmt"
	"sync"

	"github.com/ebitengine/oto/v3"
	"github.com/sirupsen/logrus"
)

// Player plays a Source on the default output device.
type Player struct {
	ctx     *oto.Context
	player  *oto.Player
	reader  *reader
	log     logrus.FieldLogger
	started bool
	mu      sync.Mutex
}

// New opens the output device. Only one Player may exist per process.
func New(src Source, cfg Config) (*Player, error) {
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   cfg.SampleRate,
		ChannelCount: cfg.Channels,
		Format:       oto.FormatFloat32LE,
		BufferSize:   cfg.Buffer,
	})
	if err != nil {
		return nil, fmt.Errorf("player: open device: %w", err)
	}
	<-ready

	r := newReader(src, cfg.Channels, cfg.prealloc())
	p := &Player{ctx: ctx, reader: r, log: cfg.Logger}
	p.player = ctx.NewPlayer(r)
	p.log.WithFields(logrus.Fields{
		"sample_rate": cfg.SampleRate,
		"channels":    cfg.Channels,
		"buffer":      cfg.Buffer,
	}).Debug("audio device opened")
	return p, nil
}

// Start begins pulling audio from the source.
func (p *Player) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.started && p.player != nil {
		p.player.Play()
		p.started = true
		p.log.Debug("playback started")
	}
}

// Stop pauses the device. The source is not touched.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started && p.player != nil {
		p.player.Pause()
		p.started = false
		p.log.Debug("playback paused")
	}
}

// Close releases the device stream.
func (p *Player) Close() error {
	p.Stop()
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.player == nil {
		return nil
	}
	err := p.player.Close()
	p.player = nil
	p.reader.setSource(nil)
	if err != nil {
		return fmt.Errorf("player: close: %w", err)
	}
	return nil
}

// IsStarted reports whether the device is pulling audio.
func (p *Player) IsStarted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.started
}
