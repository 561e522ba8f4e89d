package cli

import "github.com/charmbracelet/lipgloss"

// Shared palette for the CLI help and TUI output.
var (
	// Accent colours (bright to deep)
	AccentGold    = lipgloss.Color("#FFD700") // Bright gold
	AccentOrange  = lipgloss.Color("#FF8C00") // Deep orange
	AccentRed     = lipgloss.Color("#FF4500") // Orange-red
	AccentCrimson = lipgloss.Color("#DC143C") // Deep crimson

	// Subtle text
	SubtleGold = lipgloss.Color("#B8860B") // Dark goldenrod
)
