package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cwbudde/algo-ambient/ambient"
	"github.com/cwbudde/algo-ambient/internal/player"
	"github.com/cwbudde/algo-ambient/internal/ui"
	"golang.org/x/term"
)

// PlayCmd plays noise in real time.
type PlayCmd struct {
	EngineFlags `embed:""`

	Duration time.Duration `short:"d" help:"Stop after this long; 0 plays until interrupted."`
	Buffer   time.Duration `default:"50ms" help:"Audio device buffer length."`
	NoUI     bool          `name:"no-ui" help:"Disable the interactive interface."`
}

// Run starts the device and blocks until interrupted, the duration
// elapses or the interface quits.
func (c *PlayCmd) Run(app *App) error {
	interactive := !c.NoUI && isTerminal(os.Stdout) && isTerminal(os.Stdin)
	if interactive && !app.LogToFile {
		app.Log.SetOutput(io.Discard)
	}

	e, err := c.newEngine(app.Log, ambient.SystemClock())
	if err != nil {
		return err
	}
	defer e.Close()

	p, err := player.New(e, player.Config{
		SampleRate: c.SampleRate,
		Channels:   c.Channels,
		Buffer:     c.Buffer,
		Logger:     app.Log,
	})
	if err != nil {
		return err
	}
	defer p.Close()

	if err := e.Start(); err != nil {
		return err
	}
	p.Start()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if c.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Duration)
		defer cancel()
	}

	if interactive {
		prog := tea.NewProgram(ui.NewModel(e), tea.WithAltScreen(), tea.WithContext(ctx))
		if _, err := prog.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			return fmt.Errorf("interface: %w", err)
		}
	} else {
		fmt.Fprintf(app.Stdout, "playing %s noise at %d Hz, Ctrl+C to stop\n", e.Mode(), c.SampleRate)
		<-ctx.Done()
	}

	e.Stop()
	return nil
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
