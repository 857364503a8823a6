package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
)

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewLogger("info", &buf)
	if err != nil {
		t.Fatal(err)
	}
	log.Debug("hidden")
	log.WithField("mode", "pink").Info("switched")
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug line written at info level: %q", out)
	}
	if !strings.Contains(out, "switched") || !strings.Contains(out, "mode=pink") {
		t.Fatalf("info line missing: %q", out)
	}
	if _, err := NewLogger("loud", &buf); err == nil {
		t.Fatal("unknown level accepted")
	}
}

func TestPrintReport(t *testing.T) {
	var buf bytes.Buffer
	PrintReport(&buf, "Render", []KeyValue{{"RMS", "-30.0 dBFS"}, {"Peak level", "-12.0 dBFS"}})
	out := buf.String()
	for _, want := range []string{"Render", "RMS:", "-30.0 dBFS", "Peak level:"} {
		if !strings.Contains(out, want) {
			t.Fatalf("report missing %q:\n%s", want, out)
		}
	}
}

func TestPrintVersion(t *testing.T) {
	var buf bytes.Buffer
	PrintVersion(&buf, "1.2.3")
	if !strings.Contains(buf.String(), "1.2.3") {
		t.Fatalf("version missing: %q", buf.String())
	}
}

type helpCLI struct {
	Level string   `help:"Log level." default:"warn"`
	Play  struct{} `cmd:"" help:"Play noise."`
	Dump  struct {
		Out string `short:"o" help:"Output file."`
	} `cmd:"" help:"Write noise to a file."`
}

func TestStyledHelpPrinter(t *testing.T) {
	var buf bytes.Buffer
	parser, err := kong.New(&helpCLI{},
		kong.Name("ambient"),
		kong.Description("Procedural ambient noise"),
		kong.Writers(&buf, &buf),
		kong.Exit(func(int) {}),
		kong.Help(StyledHelpPrinter(kong.HelpOptions{Compact: true})),
	)
	if err != nil {
		t.Fatal(err)
	}
	_, _ = parser.Parse([]string{"--help"})

	out := buf.String()
	for _, want := range []string{"Usage:", "Commands:", "play", "dump", "--level", "(default: warn)"} {
		if !strings.Contains(out, want) {
			t.Fatalf("help missing %q:\n%s", want, out)
		}
	}
}
