// Package theme holds the TRIDENT palette and shared styles.
package theme

import "charm.land/lipgloss/v2"

// Palette: calm blues with one warm accent for the selected answer.
var (
	Primary   = lipgloss.Color("#2563EB") // Royal blue
	Secondary = lipgloss.Color("#0EA5E9") // Sky
	Accent    = lipgloss.Color("#F59E0B") // Amber
	Success   = lipgloss.Color("#10B981") // Emerald
	Error     = lipgloss.Color("#EF4444") // Red
	Text      = lipgloss.Color("#F1F5F9")
	TextDim   = lipgloss.Color("#94A3B8")
	BgCard    = lipgloss.Color("#1E293B")
	Border    = lipgloss.Color("#334155")
)

var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Heading = lipgloss.NewStyle().
		Bold(true).
		Foreground(Secondary)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	ErrorText = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)

var (
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)

	// ScaleSelected marks the chosen point on the 1-5 answer scale.
	ScaleSelected = lipgloss.NewStyle().
			Background(Accent).
			Foreground(BgCard).
			Bold(true).
			Padding(0, 1)

	ScaleIdle = lipgloss.NewStyle().
			Foreground(Text).
			Padding(0, 1)
)
