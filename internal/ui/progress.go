// Package ui implements the Bubbletea progress display shown while v2p
// streams a file through the pitch analyzer. A goroutine runs the actual
// decode-and-analyze work and pushes messages into the running Bubbletea
// program via Program.Send.
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// AnalysisProgress is sent as samples stream through the analyzer.
type AnalysisProgress struct {
	SamplesRead  int64
	TotalSamples int64 // 0 if the decoder couldn't report a total up front
	Steps        int   // Analyzer.PathLen() so far
	LastPitch    float64
	Elapsed      time.Duration
}

// AnalysisComplete signals the stream has been fully decoded and every
// step scheduled; the final path/note extraction happens after this.
type AnalysisComplete struct {
	Steps    int
	Duration time.Duration
}

// quitTimerMsg is sent when it's time to quit after showing completion.
type quitTimerMsg struct{}

// Model implements the Bubbletea model for the streaming progress display.
type Model struct {
	progress        progress.Model
	last            AnalysisProgress
	complete        *AnalysisComplete
	pitchHistory    []float64
	startTime       time.Time
	width           int
	minDisplayTime  time.Duration
	completionDelay time.Duration
}

// New creates a streaming-progress UI model.
func New() tea.Model {
	p := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(60),
	)

	return &Model{
		progress:        p,
		startTime:       time.Now(),
		minDisplayTime:  400 * time.Millisecond,
		completionDelay: 250 * time.Millisecond,
	}
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.progress.Width = min(msg.Width-20, 80)
		return m, nil

	case AnalysisProgress:
		m.last = msg
		if msg.LastPitch > 0 {
			m.pitchHistory = append(m.pitchHistory, msg.LastPitch)
			if len(m.pitchHistory) > 200 {
				m.pitchHistory = m.pitchHistory[len(m.pitchHistory)-200:]
			}
		}
		return m, nil

	case AnalysisComplete:
		m.complete = &msg

		elapsed := time.Since(m.startTime)
		delay := m.completionDelay
		if elapsed < m.minDisplayTime {
			delay += m.minDisplayTime - elapsed
		}
		return m, tea.Tick(delay, func(time.Time) tea.Msg { return quitTimerMsg{} })

	case quitTimerMsg:
		return m, tea.Quit

	case tea.KeyMsg:
		if m.complete != nil || msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m *Model) View() string {
	if m.complete != nil {
		return m.renderComplete()
	}
	return m.renderProgress()
}

func (m *Model) renderProgress() string {
	var s strings.Builder

	s.WriteString(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#A40000")).Render("v2p"))
	s.WriteString("\n")
	s.WriteString(lipgloss.NewStyle().Faint(true).Render("Streaming pitch analysis"))
	s.WriteString("\n\n")

	if m.last.TotalSamples > 0 {
		percent := float64(m.last.SamplesRead) / float64(m.last.TotalSamples)
		s.WriteString(m.progress.ViewAs(percent))
		s.WriteString(fmt.Sprintf(" %d%%\n\n", int(percent*100)))
	} else {
		s.WriteString(m.progress.ViewAs(0))
		s.WriteString(fmt.Sprintf(" %d samples read\n\n", m.last.SamplesRead))
	}

	if len(m.pitchHistory) > 0 {
		s.WriteString(lipgloss.NewStyle().Faint(true).Render("Live pitch:"))
		s.WriteString("\n")
		s.WriteString(renderPitchSparkline(m.pitchHistory, min(m.width-4, 76)))
		s.WriteString("\n\n")
	}

	statsStyle := lipgloss.NewStyle().Faint(true)
	s.WriteString(statsStyle.Render("Stats:"))
	s.WriteString("\n")
	s.WriteString(fmt.Sprintf("  Steps:       %d\n", m.last.Steps))
	if m.last.LastPitch > 0 {
		s.WriteString(fmt.Sprintf("  Last pitch:  %.1f Hz\n", m.last.LastPitch))
	} else {
		s.WriteString("  Last pitch:  (unvoiced)\n")
	}

	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#A40000")).
		Padding(1, 2).
		Render(s.String())
}

func (m *Model) renderComplete() string {
	var s strings.Builder

	s.WriteString(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4A9B4A")).Render("✓ Stream Analyzed"))
	s.WriteString("\n\n")
	s.WriteString(fmt.Sprintf("  Steps:    %d\n", m.complete.Steps))
	s.WriteString(fmt.Sprintf("  Duration: %.2fs\n", m.complete.Duration.Seconds()))

	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#4A9B4A")).
		Padding(1, 2).
		Render(s.String()) + "\n"
}

// renderPitchSparkline draws a block-character sparkline of recent
// nonzero pitch estimates, normalized to the highest pitch in the window.
func renderPitchSparkline(pitchHistory []float64, width int) string {
	if len(pitchHistory) == 0 || width <= 0 {
		return ""
	}

	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	maxPitch := 0.0
	for _, p := range pitchHistory {
		if p > maxPitch {
			maxPitch = p
		}
	}
	if maxPitch == 0 {
		maxPitch = 1.0
	}

	start := 0
	if len(pitchHistory) > width {
		start = len(pitchHistory) - width
	}
	window := pitchHistory[start:]

	var out strings.Builder
	for _, p := range window {
		idx := int((p / maxPitch) * float64(len(blocks)-1))
		if idx >= len(blocks) {
			idx = len(blocks) - 1
		}
		if idx < 0 {
			idx = 0
		}
		out.WriteRune(blocks[idx])
	}
	return out.String()
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
