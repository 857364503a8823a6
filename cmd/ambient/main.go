// Command ambient plays or renders procedural ambient noise.
//
// Usage:
//
//	ambient [play] [flags]
//	ambient render [flags] -o noise.f32
//
// Examples:
//
//	ambient --mode brown
//	ambient play --mode custom --set lowpass=900 --set mod=300
//	ambient render --mode pink --then brown --at 5s -d 10s -o out.f32
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/cwbudde/algo-ambient/ambient"
	"github.com/cwbudde/algo-ambient/internal/cli"
	"github.com/sirupsen/logrus"
)

var version = "0.1.0"

// CLI defines the command-line interface
type CLI struct {
	Version  versionFlag `short:"v" help:"Show version information."`
	LogLevel string      `name:"log-level" default:"warn" enum:"trace,debug,info,warn,error" help:"Log verbosity."`
	LogFile  string      `name:"log-file" type:"path" help:"Write logs to this file instead of stderr."`

	Play   PlayCmd   `cmd:"" default:"withargs" help:"Play noise on the default audio device."`
	Render RenderCmd `cmd:"" help:"Render noise offline as raw float32 little-endian PCM."`
}

// App carries what every command needs.
type App struct {
	Log       *logrus.Logger
	LogToFile bool
	Stdout    io.Writer
	Stderr    io.Writer
}

type versionFlag bool

func (versionFlag) BeforeReset(app *kong.Kong, vars kong.Vars) error {
	cli.PrintVersion(app.Stdout, vars["version"])
	app.Exit(0)
	return nil
}

// EngineFlags are shared by play and render.
type EngineFlags struct {
	Mode       string             `short:"m" default:"pink" enum:"white,pink,brown,custom" help:"Noise colour."`
	SampleRate int                `name:"sample-rate" default:"48000" help:"Output sample rate in Hz."`
	Channels   int                `default:"2" help:"Output channels (1 or 2)."`
	Block      int                `default:"512" help:"Frames per render block."`
	Seed       int64              `default:"1" help:"Noise generator seed."`
	NoPan      bool               `name:"no-pan" help:"Disable the slow stereo drift."`
	Set        map[string]float64 `help:"Custom mode parameter, e.g. --set lowpass=900 (gain, highpass, lowpass, q, mod)."`
}

func (f EngineFlags) newEngine(log logrus.FieldLogger, clock ambient.Clock) (*ambient.Engine, error) {
	mode, err := ambient.ParseMode(f.Mode)
	if err != nil {
		return nil, err
	}
	routes := ambient.DefaultModulation()
	routes.Pan.Enabled = !f.NoPan

	e, err := ambient.New(
		ambient.WithSampleRate(float64(f.SampleRate)),
		ambient.WithChannels(f.Channels),
		ambient.WithBlockSize(f.Block),
		ambient.WithSeed(f.Seed),
		ambient.WithModulation(routes),
		ambient.WithClock(clock),
		ambient.WithLogger(log),
	)
	if err != nil {
		return nil, err
	}
	for name, v := range f.Set {
		p, err := ambient.ParseParameter(name)
		if err != nil {
			return nil, err
		}
		if err := e.SetParameter(p, v); err != nil {
			return nil, err
		}
	}
	e.SetType(mode)
	return e, nil
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cliArgs := &CLI{}
	parser, err := kong.New(cliArgs,
		kong.Name("ambient"),
		kong.Description("Procedural ambient noise generator"),
		kong.UsageOnError(),
		kong.Vars{
			"version": version,
		},
		kong.Help(cli.StyledHelpPrinter(kong.HelpOptions{Compact: true})),
	)
	if err != nil {
		cli.PrintError(err.Error())
		return 2
	}
	ctx, err := parser.Parse(args)
	if err != nil {
		cli.PrintError(err.Error())
		return 2
	}

	app := &App{Stdout: os.Stdout, Stderr: os.Stderr, LogToFile: cliArgs.LogFile != ""}
	logOut := io.Writer(os.Stderr)
	if cliArgs.LogFile != "" {
		f, err := os.OpenFile(cliArgs.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			cli.PrintError(fmt.Sprintf("open log file: %v", err))
			return 1
		}
		defer f.Close()
		logOut = f
	}
	app.Log, err = cli.NewLogger(cliArgs.LogLevel, logOut)
	if err != nil {
		cli.PrintError(err.Error())
		return 2
	}

	if err := ctx.Run(app); err != nil {
		app.Log.WithError(err).Debug("command failed")
		cli.PrintError(err.Error())
		return 1
	}
	return 0
}
