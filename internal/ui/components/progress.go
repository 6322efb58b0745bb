package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/novapath/trident/internal/ui/theme"
)

// ProgressBar is a labelled horizontal bar. Fraction is clamped to [0,1].
type ProgressBar struct {
	Label    string
	Fraction float64
	// Suffix is printed after the bar, e.g. "17/420" or "45/60".
	Suffix string
	Width  int
	// LabelWidth pads labels so bars in a column line up.
	LabelWidth int
}

// View renders the bar.
func (p ProgressBar) View() string {
	var b strings.Builder
	if p.Label != "" {
		label := p.Label
		if pad := p.LabelWidth - lipgloss.Width(label); pad > 0 {
			label += strings.Repeat(" ", pad)
		}
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(label))
		b.WriteString("  ")
	}

	suffix := ""
	if p.Suffix != "" {
		suffix = "  " + p.Suffix
	}
	barWidth := max(p.Width-lipgloss.Width(b.String())-lipgloss.Width(suffix), 4)
	filled := int(float64(barWidth) * min(max(p.Fraction, 0), 1))

	b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Render(strings.Repeat("█", filled)))
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("░", barWidth-filled)))
	if suffix != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(suffix))
	}
	return b.String()
}

// Fraction returns n/total, or 0 when total is not positive.
func Fraction(n, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(n) / float64(total)
}

// Counter formats "n/total".
func Counter(n, total int) string {
	return fmt.Sprintf("%d/%d", n, total)
}
