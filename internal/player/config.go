package player

import (
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"
)

// Config describes the device stream.
type Config struct {
	SampleRate int
	Channels   int
	// Buffer is the device buffer duration; zero lets the backend choose.
	Buffer time.Duration
	Logger logrus.FieldLogger
}

func (c Config) withDefaults() Config {
	if c.SampleRate == 0 {
		c.SampleRate = 48000
	}
	if c.Channels == 0 {
		c.Channels = 2
	}
	if c.Logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		c.Logger = l
	}
	return c
}

func (c Config) validate() error {
	if c.SampleRate <= 0 {
		return fmt.Errorf("player: sample rate must be > 0: %d", c.SampleRate)
	}
	if c.Channels != 1 && c.Channels != 2 {
		return fmt.Errorf("player: channels must be 1 or 2: %d", c.Channels)
	}
	if c.Buffer < 0 {
		return fmt.Errorf("player: buffer must be >= 0: %v", c.Buffer)
	}
	return nil
}

// prealloc returns the frame count the reader allocates up front.
func (c Config) prealloc() int {
	if c.Buffer <= 0 {
		return 4096
	}
	return max(int(c.Buffer.Seconds()*float64(c.SampleRate)), 256)
}
