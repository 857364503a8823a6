package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/cwbudde/algo-ambient/ambient"
)

const (
	panelWidth = 64
	meterWidth = 40
	meterMinDB = -60.0
	barMinDB   = -120.0
	barMaxDB   = -40.0
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#5F87AF"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	activeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#87AF87"))

	pendingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Italic(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#D75F5F"))

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#5F87AF")).
			Padding(0, 1).
			Width(panelWidth)
)

var barGlyphs = []rune("▁▂▃▄▅▆▇█")

// View renders the UI
func (m Model) View() string {
	if m.Quitting {
		return ""
	}
	var b strings.Builder

	b.WriteString(renderHeader(m))
	b.WriteString("\n\n")
	b.WriteString(panelStyle.Render(renderModes(m) + "\n\n" + renderParameters(m)))
	b.WriteString("\n")
	b.WriteString(panelStyle.Render(renderLevel(m) + "\n" + renderSpectrum(m.Bars)))
	b.WriteString("\n")
	if m.Err != nil {
		b.WriteString(errorStyle.Render("Error: " + m.Err.Error()))
		b.WriteString("\n")
	}
	b.WriteString(mutedStyle.Render("w/p/b/c mode · space play/pause · ↑↓ select · ←→ adjust · q quit"))
	return b.String()
}

func renderHeader(m Model) string {
	state := "paused"
	if m.Status.Running {
		state = "playing"
	}
	title := titleStyle.Render("Ambient ≋")
	sub := mutedStyle.Render(fmt.Sprintf("%s · %s", state, m.Status.State))
	return title + "\n" + sub
}

func renderModes(m Model) string {
	parts := make([]string, 0, len(ambient.Modes))
	for _, mode := range ambient.Modes {
		label := mode.String()
		switch {
		case mode == m.Status.Mode:
			parts = append(parts, activeStyle.Render("● "+label))
		case m.Status.State == ambient.Switching && mode == m.Pending:
			parts = append(parts, pendingStyle.Render("◌ "+label))
		default:
			parts = append(parts, mutedStyle.Render("○ "+label))
		}
	}
	return strings.Join(parts, "   ")
}

func renderParameters(m Model) string {
	live := map[ambient.Parameter]float64{
		ambient.ParamGain:     m.Status.Gain,
		ambient.ParamHighpass: m.Status.HighpassHz,
		ambient.ParamLowpass:  m.Status.LowpassHz,
		ambient.ParamLowpassQ: m.Status.LowpassQ,
		ambient.ParamMod:      m.Status.ModDepthHz,
	}

	var b strings.Builder
	for i, p := range ambient.Parameters {
		cursor := "  "
		if i == m.Selected {
			cursor = activeStyle.Render("▸ ")
		}
		custom, _ := m.Custom.Value(p)
		fmt.Fprintf(&b, "%s%-9s %s %s\n", cursor, p, formatValue(custom, p.Unit()),
			mutedStyle.Render("now "+formatValue(live[p], p.Unit())))
	}
	if m.Status.Mode != ambient.Custom {
		b.WriteString(mutedStyle.Render("custom values apply in custom mode"))
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatValue(v float64, unit string) string {
	if unit == "" {
		return fmt.Sprintf("%8.3f", v)
	}
	return fmt.Sprintf("%6.0f %s", v, unit)
}

func renderLevel(m Model) string {
	db := m.Level.RMSdB
	frac := 0.0
	if !math.IsInf(db, -1) && !math.IsNaN(db) {
		frac = math.Min(math.Max((db-meterMinDB)/-meterMinDB, 0), 1)
	}
	filled := int(frac * meterWidth)
	bar := strings.Repeat("█", filled) + strings.Repeat("░", meterWidth-filled)
	label := "  -inf dBFS"
	if frac > 0 {
		label = fmt.Sprintf("%6.1f dBFS", db)
	}
	return fmt.Sprintf("RMS %s %s", bar, label)
}

func renderSpectrum(bars []float64) string {
	var b strings.Builder
	for _, db := range bars {
		frac := (db - barMinDB) / (barMaxDB - barMinDB)
		idx := int(math.Round(frac * float64(len(barGlyphs)-1)))
		idx = min(max(idx, 0), len(barGlyphs)-1)
		b.WriteRune(barGlyphs[idx])
	}
	return "    " + b.String()
}
