// Package session hosts assessments: it restores a user's progress from the
// store, applies answers through the assessment package, persists the
// result and records lifecycle events.
package session

import (
	"github.com/novapath/trident/internal/assessment"
	"github.com/novapath/trident/internal/bank"
	"github.com/novapath/trident/internal/ordering"
)

// Session is one user's run through the assessment. It is not safe for
// concurrent use; the Service serializes by-key access.
type Session struct {
	// Key is the hashed identifier the progress is stored under.
	Key  string
	Seed int64
	// RunID identifies the current run on events. Reset starts a new run.
	RunID string
	State assessment.ProgressState

	layout   bank.Catalog
	ordering *ordering.Ordering
}

// Current returns the question under the cursor, or assessment.ErrComplete.
func (s *Session) Current() (assessment.Position, error) {
	return assessment.CurrentQuestion(s.State, s.layout, s.ordering)
}

// Complete reports whether every question has been answered.
func (s *Session) Complete() bool {
	return s.State.Complete(s.layout)
}

// Answered returns the number of answers recorded in this run.
func (s *Session) Answered() int {
	return assessment.Answered(s.State, s.layout)
}

// Remaining returns the number of questions left.
func (s *Session) Remaining() int {
	return assessment.Remaining(s.State, s.layout)
}

// Total returns the number of questions in a full run.
func (s *Session) Total() int {
	return s.layout.TotalQuestions()
}

// Layout returns the catalog the session walks.
func (s *Session) Layout() bank.Catalog {
	return s.layout
}
