// Package ui provides the Bubbletea control surface for the ambient engine.
package ui

import (
	"math"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cwbudde/algo-ambient/ambient"
	"github.com/cwbudde/algo-ambient/measure/level"
)

const (
	spectrumSize = 2048
	spectrumBars = 32
	spectrumLoHz = 40
	spectrumHiHz = 8000
	// adjustSteps is the number of key presses spanning a parameter range.
	adjustSteps = 50
)

// Controller is the engine surface the UI drives.
type Controller interface {
	SetType(m ambient.Mode)
	SetParameter(p ambient.Parameter, v float64) error
	Parameters() ambient.Status
	PendingMode() ambient.Mode
	CustomPreset() ambient.Preset
	Start() error
	Stop()
	Tap() *ambient.Tap
}

// Model is the Bubbletea model for live playback.
type Model struct {
	ctl Controller

	Selected int
	Status   ambient.Status
	Pending  ambient.Mode
	Custom   ambient.Preset
	Level    level.Stats
	Bars     []float64
	Err      error

	Width    int
	Height   int
	Quitting bool

	snapshot []float64
	spectrum []float64
}

// NewModel returns a model bound to ctl.
func NewModel(ctl Controller) Model {
	m := Model{
		ctl:      ctl,
		Bars:     make([]float64, spectrumBars),
		snapshot: make([]float64, int(ctl.Tap().SampleRate()/10)),
		spectrum: make([]float64, spectrumSize/2+1),
	}
	m.refresh()
	return m
}

// Init starts the refresh ticker.
func (m Model) Init() tea.Cmd {
	return tick()
}

// Update handles key presses and refresh ticks.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height

	case TickMsg:
		m.refresh()
		return m, tick()

	case ErrorMsg:
		m.Err = msg.Err
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		m.Quitting = true
		return m, tea.Quit
	case "w", "1":
		m.ctl.SetType(ambient.White)
	case "p", "2":
		m.ctl.SetType(ambient.Pink)
	case "b", "3":
		m.ctl.SetType(ambient.Brown)
	case "c", "4":
		m.ctl.SetType(ambient.Custom)
	case " ":
		if m.Status.Running {
			m.ctl.Stop()
		} else if err := m.ctl.Start(); err != nil {
			m.Err = err
		}
	case "tab", "down", "j":
		m.Selected = (m.Selected + 1) % len(ambient.Parameters)
	case "shift+tab", "up", "k":
		m.Selected = (m.Selected + len(ambient.Parameters) - 1) % len(ambient.Parameters)
	case "right", "l", "+", "=":
		m.adjust(1)
	case "left", "h", "-":
		m.adjust(-1)
	}
	m.refresh()
	return m, nil
}

// adjust moves the selected custom parameter by one step.
func (m *Model) adjust(dir float64) {
	p := ambient.Parameters[m.Selected]
	r, err := p.Range()
	if err != nil {
		m.Err = err
		return
	}
	v, _ := m.ctl.CustomPreset().Value(p)
	if err := m.ctl.SetParameter(p, v+dir*(r.Max-r.Min)/adjustSteps); err != nil {
		m.Err = err
	}
}

// refresh pulls status, level and spectrum from the engine.
func (m *Model) refresh() {
	m.Status = m.ctl.Parameters()
	m.Pending = m.ctl.PendingMode()
	m.Custom = m.ctl.CustomPreset()

	tap := m.ctl.Tap()
	n := tap.Snapshot(m.snapshot)
	m.Level = level.Calculate(m.snapshot[:n])

	bins, err := tap.Spectrum(m.spectrum, spectrumSize)
	if err != nil {
		m.Err = err
		return
	}
	collapseBars(m.Bars, m.spectrum[:bins], tap.SampleRate(), spectrumSize)
}

// collapseBars maps dB bins onto log-spaced bars between spectrumLoHz and
// spectrumHiHz, keeping the loudest bin of each bar.
func collapseBars(bars, binsDB []float64, sampleRate float64, size int) {
	ratio := math.Pow(spectrumHiHz/spectrumLoHz, 1/float64(len(bars)))
	binHz := sampleRate / float64(size)
	lo := float64(spectrumLoHz)
	for i := range bars {
		hi := lo * ratio
		k0 := int(math.Floor(lo / binHz))
		k1 := max(int(math.Ceil(hi/binHz)), k0+1)
		best := ambient.SpectrumFloorDB
		for k := k0; k < k1 && k < len(binsDB); k++ {
			best = math.Max(best, binsDB[k])
		}
		bars[i] = best
		lo = hi
	}
}
