package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/cwbudde/algo-ambient/ambient"
	"github.com/cwbudde/algo-ambient/internal/cli"
	"github.com/cwbudde/algo-ambient/internal/player"
	"github.com/cwbudde/algo-ambient/measure/level"
	"github.com/cwbudde/algo-ambient/measure/loudness"
	"github.com/sirupsen/logrus"
)

// RenderCmd renders noise faster than real time.
type RenderCmd struct {
	EngineFlags `embed:""`

	Duration time.Duration `short:"d" default:"10s" help:"Length of the render."`
	Output   string        `short:"o" default:"-" help:"Output file, - for stdout."`
	Then     string        `help:"Switch to this mode (white, pink, brown, custom) during the render."`
	At       time.Duration `default:"5s" help:"When to switch when --then is set."`
}

// Run renders and writes the audio, then prints a level and loudness report to stderr.
func (c *RenderCmd) Run(app *App) error {
	if c.Duration <= 0 {
		return errors.New("duration must be > 0")
	}
	var then ambient.Mode
	if c.Then != "" {
		m, err := ambient.ParseMode(c.Then)
		if err != nil {
			return err
		}
		then = m
	}

	out, closeOut, err := openOutput(c.Output, app.Stdout)
	if err != nil {
		return err
	}
	defer closeOut()

	clock := ambient.NewManualClock()
	e, err := c.newEngine(app.Log, clock)
	if err != nil {
		return err
	}
	defer e.Close()
	if err := e.Start(); err != nil {
		return err
	}

	lufs, err := loudness.NewMeter(float64(c.SampleRate), e.Channels())
	if err != nil {
		return err
	}

	stats, frames, err := c.render(e, clock, then, out, lufs)
	if err != nil {
		return err
	}
	app.Log.WithFields(logrus.Fields{
		"frames": frames,
		"output": c.Output,
		"mode":   e.Mode(),
	}).Info("render complete")

	cli.PrintReport(app.Stderr, "Render", []cli.KeyValue{
		{Key: "Mode", Value: describeModes(c.Mode, c.Then, c.At)},
		{Key: "Length", Value: fmt.Sprintf("%d frames, %.2f s", frames, float64(frames)/float64(c.SampleRate))},
		{Key: "Format", Value: fmt.Sprintf("float32 LE, %d Hz, %d ch", c.SampleRate, c.Channels)},
		{Key: "RMS", Value: fmt.Sprintf("%.1f dBFS", stats.RMSdB)},
		{Key: "Peak", Value: fmt.Sprintf("%.1f dBFS", stats.PeakdB)},
		{Key: "Crest", Value: fmt.Sprintf("%.1f dB", stats.CrestdB)},
		{Key: "DC", Value: fmt.Sprintf("%.2e", stats.DC)},
		{Key: "Loudness", Value: fmt.Sprintf("%.1f LUFS integrated, %.1f LUFS short-term", lufs.Integrated(), lufs.ShortTerm())},
	})
	return nil
}

func (c *RenderCmd) render(e *ambient.Engine, clock *ambient.ManualClock, then ambient.Mode, out io.Writer, lufs *loudness.Meter) (level.Stats, int, error) {
	sr := float64(c.SampleRate)
	total := int(c.Duration.Seconds() * sr)
	ch := e.Channels()

	w := bufio.NewWriterSize(out, 1<<16)
	buf := make([]float32, c.Block*ch)
	wide := make([]float64, len(buf))
	raw := make([]byte, 4*len(buf))
	meter := level.NewMeter(sr, 0.3)
	switched := c.Then == ""

	for done := 0; done < total; {
		if !switched && clock.Now() >= c.At {
			e.SetType(then)
			switched = true
		}
		n := min(c.Block, total-done)
		samples := buf[:n*ch]
		e.RenderInterleaved(samples)

		for i, v := range samples {
			wide[i] = float64(v)
		}
		meter.Update(wide[:len(samples)])
		lufs.Process(wide[:len(samples)])
		player.EncodeFloat32LE(raw, samples)
		if _, err := w.Write(raw[:4*len(samples)]); err != nil {
			return level.Stats{}, done, fmt.Errorf("write: %w", err)
		}

		done += n
		clock.Advance(time.Duration(float64(n) / sr * float64(time.Second)))
	}
	if err := w.Flush(); err != nil {
		return level.Stats{}, total, fmt.Errorf("write: %w", err)
	}
	return meter.Result(), total, nil
}

func openOutput(path string, stdout io.Writer) (io.Writer, func(), error) {
	if path == "-" {
		if f, ok := stdout.(*os.File); ok && isTerminal(f) {
			return nil, nil, errors.New("refusing to write audio to a terminal; use -o FILE or a pipe")
		}
		return stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create output: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}

func describeModes(mode, then string, at time.Duration) string {
	if then == "" {
		return mode
	}
	return fmt.Sprintf("%s, %s from %v", mode, then, at)
}
