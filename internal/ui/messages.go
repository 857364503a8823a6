package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// refreshInterval is how often the view polls the engine.
const refreshInterval = 100 * time.Millisecond

// TickMsg triggers a refresh of the engine readouts.
type TickMsg time.Time

// ErrorMsg reports a failed control action.
type ErrorMsg struct {
	Err error
}

func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
