// Package summary shows a finished assessment: ranked traits per section,
// the Holland code, learning styles and career guidance.
package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/novapath/trident/internal/guidance"
	"github.com/novapath/trident/internal/report"
	"github.com/novapath/trident/internal/router"
	"github.com/novapath/trident/internal/screen"
	"github.com/novapath/trident/internal/screens"
	"github.com/novapath/trident/internal/session"
	"github.com/novapath/trident/internal/ui/components"
	"github.com/novapath/trident/internal/ui/layout"
	"github.com/novapath/trident/internal/ui/theme"
)

type guidanceMsg struct {
	g   *guidance.Guidance
	err error
}

// SummaryScreen renders the report of a complete session.
type SummaryScreen struct {
	env  screens.Env
	sess *session.Session

	summary  *report.Summary
	guidance *guidance.Guidance
	errText  string
	loading  bool
	offset   int

	confirmRetake bool
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)
var _ screen.ProgressProvider = (*SummaryScreen)(nil)

// New builds the summary for sess. Guidance loads in the background.
func New(env screens.Env, sess *session.Session) *SummaryScreen {
	s := &SummaryScreen{env: env, sess: sess}
	sum, err := env.Sessions.Summary(sess, env.TopN)
	if err != nil {
		s.errText = err.Error()
		return s
	}
	s.summary = sum
	s.loading = env.Guidance != nil
	return s
}

func (s *SummaryScreen) Init() tea.Cmd {
	if !s.loading {
		return nil
	}
	env, sum := s.env, s.summary
	return func() tea.Msg {
		g, err := env.Guidance.Generate(env.Context(), sum)
		return guidanceMsg{g: g, err: err}
	}
}

func (s *SummaryScreen) Title() string {
	return "Your results"
}

func (s *SummaryScreen) Progress() string {
	return "complete"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	if s.confirmRetake {
		return []layout.KeyHint{
			{Key: "y", Description: "Retake"},
			{Key: "n", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "r", Description: "Retake"},
		{Key: "n", Description: "New user"},
		{Key: "q", Description: "Quit"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case guidanceMsg:
		s.loading = false
		if msg.err != nil {
			s.guidance = guidance.Static(s.summary)
		} else {
			s.guidance = msg.g
		}
		return s, nil

	case tea.KeyPressMsg:
		if s.confirmRetake {
			switch msg.String() {
			case "y", "Y":
				s.confirmRetake = false
				return s, s.retake()
			case "n", "N", "esc":
				s.confirmRetake = false
			}
			return s, nil
		}

		switch msg.String() {
		case "up", "k":
			s.offset = max(s.offset-1, 0)
		case "down", "j":
			s.offset++
		case "r":
			s.confirmRetake = true
		case "n", "esc":
			next := s.env.Identify()
			return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
		case "q":
			return s, tea.Quit
		}
	}
	return s, nil
}

func (s *SummaryScreen) retake() tea.Cmd {
	if err := s.env.Sessions.Reset(s.env.Context(), s.sess); err != nil {
		s.errText = "Retake failed: " + err.Error()
		return nil
	}
	next := s.env.Open(s.sess)
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

func (s *SummaryScreen) View(width, height int) string {
	if s.summary == nil {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.ErrorText.Render(s.errText))
	}

	lines := strings.Split(s.render(min(width-4, 80)), "\n")
	s.offset = min(s.offset, max(len(lines)-height, 0))
	end := min(s.offset+height, len(lines))
	visible := strings.Join(lines[s.offset:end], "\n")
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, visible)
}

func (s *SummaryScreen) render(width int) string {
	sum := s.summary
	var b strings.Builder

	b.WriteString(theme.Title.Width(width).Render("Assessment complete"))
	b.WriteString("\n\n")
	if sum.HollandCode != "" {
		b.WriteString(theme.Heading.Render("Holland code  "))
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(sum.HollandCode))
		b.WriteString("\n")
	}
	if sum.PrimaryStyle != "" {
		b.WriteString(theme.Heading.Render("Learning      "))
		b.WriteString(theme.Body.Render(fmt.Sprintf("%s (primary), %s (secondary)", sum.PrimaryStyle, sum.SecondaryStyle)))
		b.WriteString("\n")
	}

	labelWidth := 0
	for _, sec := range sum.Sections {
		for _, t := range sec.Ranked {
			labelWidth = max(labelWidth, lipgloss.Width(t.Trait))
		}
	}

	for _, sec := range sum.Sections {
		b.WriteString("\n")
		b.WriteString(theme.Heading.Render(sec.Section))
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", width)))
		b.WriteString("\n")
		for _, t := range sec.Ranked {
			bar := components.ProgressBar{
				Label:      t.Trait,
				LabelWidth: labelWidth,
				Fraction:   components.Fraction(t.Score, sum.MaxScore),
				Suffix:     fmt.Sprintf("%3d/%d", t.Score, sum.MaxScore),
				Width:      width - 4,
			}
			marker := "  "
			if t.Rank <= len(sec.Top) {
				marker = lipgloss.NewStyle().Foreground(theme.Accent).Render("★ ")
			}
			b.WriteString(marker + bar.View() + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(s.renderGuidance(width))
	if s.errText != "" {
		b.WriteString("\n" + theme.ErrorText.Render(s.errText))
	}
	return b.String()
}

func (s *SummaryScreen) renderGuidance(width int) string {
	if s.loading {
		return theme.Hint.Render("Preparing career guidance...")
	}
	g := s.guidance
	if g == nil {
		return ""
	}

	wrap := lipgloss.NewStyle().Width(width).Foreground(theme.Text)
	var b strings.Builder
	b.WriteString(theme.Heading.Render("Career guidance"))
	b.WriteString("\n")
	for _, n := range g.Types {
		b.WriteString(wrap.Render(fmt.Sprintf("• %s: %s", n.Trait, n.Description)))
		b.WriteString("\n")
	}
	if len(g.Careers) > 0 {
		b.WriteString(wrap.Render("Careers to explore: " + strings.Join(g.Careers, ", ")))
		b.WriteString("\n")
	}
	if g.RecommendedStream != "" {
		b.WriteString(wrap.Render("Recommended stream: " + g.RecommendedStream))
		b.WriteString("\n")
	}
	if g.LearningTips != "" {
		b.WriteString(wrap.Render("How you learn best: " + g.LearningTips))
		b.WriteString("\n")
	}
	for _, tip := range g.ActionTips {
		b.WriteString(wrap.Render("→ " + tip))
		b.WriteString("\n")
	}
	return b.String()
}
