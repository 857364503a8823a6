// Package cli holds the styled terminal output of the ambient command.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	primaryColor = lipgloss.Color("#5F87AF") // slate blue
	accentColor  = lipgloss.Color("#87AF87") // sage
	mutedColor   = lipgloss.Color("#888888")
	textColor    = lipgloss.Color("#FFFFFF")
	errorColor   = lipgloss.Color("#D75F5F")
)

// Styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginBottom(1)

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(errorColor)

	KeyStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	ValueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(textColor)

	AccentStyle = lipgloss.NewStyle().
			Foreground(accentColor)
)

// AppName is the display name used in titles.
const AppName = "Ambient"

// PrintVersion prints version information
func PrintVersion(w io.Writer, version string) {
	fmt.Fprintln(w, TitleStyle.Render(AppName+" ≋"))
	fmt.Fprintf(w, "%s %s\n", KeyStyle.Render("Version:"), ValueStyle.Render(version))
	fmt.Fprintln(w)
}

// PrintError prints an error message to stderr.
func PrintError(message string) {
	fmt.Fprintf(os.Stderr, "%s %s\n", ErrorStyle.Render("Error:"), message)
}

// KeyValue is one line of a report.
type KeyValue struct {
	Key   string
	Value string
}

// PrintReport prints a titled block of aligned key/value lines.
func PrintReport(w io.Writer, title string, rows []KeyValue) {
	width := 0
	for _, r := range rows {
		width = max(width, len(r.Key))
	}
	fmt.Fprintln(w, TitleStyle.Render(title))
	for _, r := range rows {
		key := fmt.Sprintf("%-*s", width+1, r.Key+":")
		fmt.Fprintf(w, "  %s %s\n", KeyStyle.Render(key), ValueStyle.Render(r.Value))
	}
	fmt.Fprintln(w)
}
