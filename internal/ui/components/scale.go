package components

import (
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/novapath/trident/internal/ui/theme"
)

// Scale is a horizontal Likert selector from Min to Max. Left/right (or
// h/l) move the selection and a digit jumps straight to that point.
type Scale struct {
	Min, Max int
	Value    int
	// Labels caption the two ends, e.g. "Strongly disagree".
	LowLabel, HighLabel string
}

// NewScale creates a scale positioned at def.
func NewScale(lo, hi, def int) Scale {
	return Scale{Min: lo, Max: hi, Value: def, LowLabel: "Strongly disagree", HighLabel: "Strongly agree"}
}

// Update handles movement keys. It never submits.
func (s Scale) Update(msg tea.Msg) Scale {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s
	}
	switch key := kmsg.String(); key {
	case "left", "h":
		if s.Value > s.Min {
			s.Value--
		}
	case "right", "l":
		if s.Value < s.Max {
			s.Value++
		}
	default:
		if n, err := strconv.Atoi(key); err == nil && n >= s.Min && n <= s.Max {
			s.Value = n
		}
	}
	return s
}

// Reset moves the selection back to def.
func (s *Scale) Reset(def int) {
	s.Value = def
}

// View renders the points with the selection highlighted and the end
// captions underneath.
func (s Scale) View() string {
	points := make([]string, 0, s.Max-s.Min+1)
	for v := s.Min; v <= s.Max; v++ {
		style := theme.ScaleIdle
		if v == s.Value {
			style = theme.ScaleSelected
		}
		points = append(points, style.Render(strconv.Itoa(v)))
	}
	row := strings.Join(points, "  ")

	gap := max(lipgloss.Width(row)-lipgloss.Width(s.LowLabel)-lipgloss.Width(s.HighLabel), 2)
	captions := theme.Hint.Render(s.LowLabel) + strings.Repeat(" ", gap) + theme.Hint.Render(s.HighLabel)
	return lipgloss.JoinVertical(lipgloss.Center, row, captions)
}
