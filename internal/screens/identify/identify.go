// Package identify asks for the user identifier and opens that user's
// session.
package identify

import (
	"errors"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/novapath/trident/internal/identity"
	"github.com/novapath/trident/internal/router"
	"github.com/novapath/trident/internal/screen"
	"github.com/novapath/trident/internal/screens"
	"github.com/novapath/trident/internal/screens/assess"
	"github.com/novapath/trident/internal/screens/summary"
	"github.com/novapath/trident/internal/session"
	"github.com/novapath/trident/internal/ui/components"
	"github.com/novapath/trident/internal/ui/layout"
	"github.com/novapath/trident/internal/ui/theme"
)

const maxIdentifier = 64

type startedMsg struct {
	sess *session.Session
	err  error
}

// IdentifyScreen reads an identifier and starts or resumes its session.
type IdentifyScreen struct {
	env      screens.Env
	input    components.TextInput
	errText  string
	starting bool
}

var _ screen.Screen = (*IdentifyScreen)(nil)
var _ screen.KeyHintProvider = (*IdentifyScreen)(nil)

// New creates the identification screen and completes env's navigation so
// later screens can come back here.
func New(env screens.Env) *IdentifyScreen {
	env.Identify = func() screen.Screen { return New(env) }
	env.Open = func(sess *session.Session) screen.Screen { return Open(env, sess) }
	return &IdentifyScreen{
		env:   env,
		input: components.NewTextInput("name or student ID", maxIdentifier),
	}
}

// Open returns the summary for a complete session and the question screen
// otherwise.
func Open(env screens.Env, sess *session.Session) screen.Screen {
	if sess.Complete() {
		return summary.New(env, sess)
	}
	return assess.New(env, sess)
}

func (s *IdentifyScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *IdentifyScreen) Title() string {
	return "Who is taking the assessment?"
}

func (s *IdentifyScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Start or resume"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *IdentifyScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case startedMsg:
		s.starting = false
		if msg.err != nil {
			s.errText = describe(msg.err)
			return s, nil
		}
		next := Open(s.env, msg.sess)
		return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }

	case tea.KeyPressMsg:
		if s.starting {
			return s, nil
		}
		if msg.String() == "enter" {
			return s, s.start()
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *IdentifyScreen) start() tea.Cmd {
	id := s.input.Value()
	if id == "" {
		s.errText = describe(identity.ErrEmptyIdentifier)
		return nil
	}
	s.errText = ""
	s.starting = true
	env := s.env
	return func() tea.Msg {
		sess, err := env.Sessions.Start(env.Context(), id)
		return startedMsg{sess: sess, err: err}
	}
}

func describe(err error) string {
	switch {
	case errors.Is(err, identity.ErrEmptyIdentifier):
		return "Please enter your name or ID."
	case errors.Is(err, session.ErrSeedMismatch):
		return "Saved progress for this ID cannot be resumed. Ask an administrator to reset it."
	default:
		return "Could not open the assessment: " + err.Error()
	}
}

func (s *IdentifyScreen) View(width, height int) string {
	lines := []string{
		theme.Heading.Render("Enter your name or student ID"),
		theme.Hint.Render("The same ID resumes where you left off."),
		"",
		theme.Card.Width(min(width-4, 50)).Render(s.input.View()),
	}
	switch {
	case s.starting:
		lines = append(lines, "", theme.Hint.Render("Opening..."))
	case s.errText != "":
		lines = append(lines, "", theme.ErrorText.Render(s.errText))
	}
	content := lipgloss.JoinVertical(lipgloss.Center, lines...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
