// Package assess walks the user through the questions one at a time.
package assess

import (
	"errors"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/novapath/trident/internal/assessment"
	"github.com/novapath/trident/internal/router"
	"github.com/novapath/trident/internal/screen"
	"github.com/novapath/trident/internal/screens"
	"github.com/novapath/trident/internal/session"
	"github.com/novapath/trident/internal/ui/components"
	"github.com/novapath/trident/internal/ui/layout"
	"github.com/novapath/trident/internal/ui/theme"
)

// AssessScreen shows the current question with a 1-5 scale.
type AssessScreen struct {
	env   screens.Env
	sess  *session.Session
	scale components.Scale

	confirmReset bool
	errText      string
}

var _ screen.Screen = (*AssessScreen)(nil)
var _ screen.KeyHintProvider = (*AssessScreen)(nil)
var _ screen.ProgressProvider = (*AssessScreen)(nil)

// New creates the question screen for a running session.
func New(env screens.Env, sess *session.Session) *AssessScreen {
	return &AssessScreen{
		env:   env,
		sess:  sess,
		scale: components.NewScale(assessment.MinAnswer, assessment.MaxAnswer, assessment.DefaultAnswer),
	}
}

func (s *AssessScreen) Init() tea.Cmd {
	return nil
}

func (s *AssessScreen) Title() string {
	pos, err := s.sess.Current()
	if err != nil {
		return "Assessment"
	}
	return pos.Section
}

func (s *AssessScreen) Progress() string {
	return components.Counter(s.sess.Answered(), s.sess.Total())
}

func (s *AssessScreen) KeyHints() []layout.KeyHint {
	if s.confirmReset {
		return []layout.KeyHint{
			{Key: "y", Description: "Restart"},
			{Key: "n", Description: "Keep going"},
		}
	}
	return []layout.KeyHint{
		{Key: "←→/1-5", Description: "Choose"},
		{Key: "Enter", Description: "Submit"},
		{Key: "p", Description: "Pause"},
		{Key: "r", Description: "Restart"},
	}
}

func (s *AssessScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}

	if s.confirmReset {
		switch kmsg.String() {
		case "y", "Y":
			s.confirmReset = false
			return s, s.reset()
		case "n", "N", "esc":
			s.confirmReset = false
		}
		return s, nil
	}

	switch kmsg.String() {
	case "enter":
		return s, s.submit()
	case "r":
		s.confirmReset = true
		return s, nil
	case "p", "esc":
		return s, s.pause()
	}
	s.scale = s.scale.Update(kmsg)
	return s, nil
}

func (s *AssessScreen) submit() tea.Cmd {
	err := s.env.Sessions.Answer(s.env.Context(), s.sess, s.scale.Value)
	switch {
	case err == nil:
	case errors.Is(err, assessment.ErrComplete):
	default:
		s.errText = "Answer not saved: " + err.Error()
		return nil
	}
	s.errText = ""
	s.scale.Reset(assessment.DefaultAnswer)
	if s.sess.Complete() {
		return s.replace(s.env.Open(s.sess))
	}
	return nil
}

func (s *AssessScreen) reset() tea.Cmd {
	if err := s.env.Sessions.Reset(s.env.Context(), s.sess); err != nil {
		s.errText = "Restart failed: " + err.Error()
		return nil
	}
	s.errText = ""
	s.scale.Reset(assessment.DefaultAnswer)
	return nil
}

func (s *AssessScreen) pause() tea.Cmd {
	if err := s.env.Sessions.Pause(s.env.Context(), s.sess); err != nil {
		s.errText = "Pause failed: " + err.Error()
		return nil
	}
	return s.replace(s.env.Identify())
}

func (s *AssessScreen) replace(next screen.Screen) tea.Cmd {
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

func (s *AssessScreen) View(width, height int) string {
	pos, err := s.sess.Current()
	if err != nil {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.ErrorText.Render(err.Error()))
	}

	barWidth := min(width-8, 60)
	if layout.IsCompactWidth(width) {
		barWidth = min(width-8, 40)
	}
	done, total := sectionProgress(s.sess, pos)

	lines := []string{
		theme.Heading.Render(fmt.Sprintf("%s · %s", pos.Section, pos.Trait)),
		theme.Hint.Render(fmt.Sprintf("Question %d of %d", pos.Number, pos.Total)),
		"",
		theme.Card.Width(barWidth).Render(theme.Body.Render(pos.Question)),
		"",
		s.scale.View(),
		"",
		components.ProgressBar{Label: "Overall", LabelWidth: 8, Fraction: components.Fraction(s.sess.Answered(), s.sess.Total()), Suffix: s.Progress(), Width: barWidth}.View(),
		components.ProgressBar{Label: "Section", LabelWidth: 8, Fraction: components.Fraction(done, total), Suffix: components.Counter(done, total), Width: barWidth}.View(),
	}

	switch {
	case s.confirmReset:
		lines = append(lines, "", theme.ErrorText.Render("Discard every answer and start over? (y/n)"))
	case s.errText != "":
		lines = append(lines, "", theme.ErrorText.Render(s.errText))
	}

	content := lipgloss.JoinVertical(lipgloss.Center, lines...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

// sectionProgress returns how many questions of pos's section are answered
// and how many it has.
func sectionProgress(sess *session.Session, pos assessment.Position) (done, total int) {
	cat := sess.Layout()
	perTrait := cat.QuestionsPerTrait
	done = pos.TraitIndex*perTrait + pos.QuestionIndex
	total = cat.TraitCount(pos.SectionIndex) * perTrait
	return done, total
}
