// Package assessment implements the progress cursor and score accumulator:
// a single linear walk over sections, traits and questions with per-trait
// score totals.
//
// Progress is an explicit value. Every operation takes a ProgressState and
// returns a new one; the caller owns persistence.
package assessment

import "github.com/novapath/trident/internal/bank"

// ProgressState is the cursor plus the scores recorded so far. While the
// assessment is running the indices address the next question; once
// SectionIndex equals the number of sections the assessment is complete
// and the trait and question indices are zero.
type ProgressState struct {
	SectionIndex  int        `json:"section_index"`
	TraitIndex    int        `json:"trait_index"`
	QuestionIndex int        `json:"question_index"`
	Scores        ScoreTable `json:"scores"`
}

// Position describes the question under the cursor.
type Position struct {
	SectionIndex  int
	TraitIndex    int
	QuestionIndex int
	Section       string
	Trait         string
	Question      string
	// Number is the 1-based overall question number out of Total.
	Number int
	Total  int
}

// Questioner looks up a question by section, trait and question index.
type Questioner interface {
	Question(section, trait, index int) (string, bool)
}

// NewProgress returns the initial state: the first question of the first
// trait of the first section, every score at zero.
func NewProgress(layout bank.Catalog) ProgressState {
	return ProgressState{Scores: NewScoreTable(layout)}
}

// Reset returns the initial state. It is valid from any state, including a
// complete one, and resetting twice is the same as resetting once.
func Reset(layout bank.Catalog) ProgressState {
	return NewProgress(layout)
}

// Complete reports whether st has walked past the last section.
func (st ProgressState) Complete(layout bank.Catalog) bool {
	return st.SectionIndex >= layout.SectionCount()
}

// CurrentQuestion returns the question under the cursor, ErrComplete when
// the walk is finished, or an *OutOfRangeError for a cursor that does not
// address the layout or the ordering.
func CurrentQuestion(st ProgressState, layout bank.Catalog, q Questioner) (Position, error) {
	if st.SectionIndex == layout.SectionCount() {
		return Position{}, ErrComplete
	}
	if err := checkCursor(st, layout); err != nil {
		return Position{}, err
	}
	text, ok := q.Question(st.SectionIndex, st.TraitIndex, st.QuestionIndex)
	if !ok {
		return Position{}, outOfRange("no question at (%d,%d,%d)", st.SectionIndex, st.TraitIndex, st.QuestionIndex)
	}
	section := layout.Sections[st.SectionIndex]
	return Position{
		SectionIndex:  st.SectionIndex,
		TraitIndex:    st.TraitIndex,
		QuestionIndex: st.QuestionIndex,
		Section:       section.Name,
		Trait:         section.Traits[st.TraitIndex],
		Question:      text,
		Number:        Answered(st, layout) + 1,
		Total:         layout.TotalQuestions(),
	}, nil
}

// Advance records value against the current trait and moves the cursor:
// question, then trait, then section, then complete. The value is checked
// first and the cursor second; on any error st is returned unchanged and
// its score table is never touched.
func Advance(st ProgressState, layout bank.Catalog, value int) (ProgressState, error) {
	if !ValidAnswer(value) {
		return st, &InvalidAnswerError{Value: value}
	}
	if st.SectionIndex == layout.SectionCount() {
		return st, ErrComplete
	}
	if err := checkCursor(st, layout); err != nil {
		return st, err
	}

	section := layout.Sections[st.SectionIndex]
	scores := st.Scores.Snapshot()
	if err := scores.Record(section.Name, section.Traits[st.TraitIndex], value); err != nil {
		return st, err
	}

	next := ProgressState{
		SectionIndex:  st.SectionIndex,
		TraitIndex:    st.TraitIndex,
		QuestionIndex: st.QuestionIndex + 1,
		Scores:        scores,
	}
	if next.QuestionIndex == layout.QuestionsPerTrait {
		next.QuestionIndex = 0
		next.TraitIndex++
	}
	if next.TraitIndex == len(section.Traits) {
		next.TraitIndex = 0
		next.SectionIndex++
	}
	return next, nil
}

// Answered returns how many answers st has recorded.
func Answered(st ProgressState, layout bank.Catalog) int {
	if st.Complete(layout) {
		return layout.TotalQuestions()
	}
	n := 0
	for i := 0; i < st.SectionIndex && i < len(layout.Sections); i++ {
		n += len(layout.Sections[i].Traits) * layout.QuestionsPerTrait
	}
	return n + st.TraitIndex*layout.QuestionsPerTrait + st.QuestionIndex
}

// Remaining returns how many answers are still needed.
func Remaining(st ProgressState, layout bank.Catalog) int {
	return layout.TotalQuestions() - Answered(st, layout)
}

func checkCursor(st ProgressState, layout bank.Catalog) error {
	if st.SectionIndex < 0 || st.SectionIndex > layout.SectionCount() {
		return outOfRange("section index %d not in [0,%d]", st.SectionIndex, layout.SectionCount())
	}
	if st.SectionIndex == layout.SectionCount() {
		if st.TraitIndex != 0 || st.QuestionIndex != 0 {
			return outOfRange("complete state with trait index %d and question index %d", st.TraitIndex, st.QuestionIndex)
		}
		return nil
	}
	if n := layout.TraitCount(st.SectionIndex); st.TraitIndex < 0 || st.TraitIndex >= n {
		return outOfRange("trait index %d not in [0,%d) for section %q",
			st.TraitIndex, n, layout.Sections[st.SectionIndex].Name)
	}
	if st.QuestionIndex < 0 || st.QuestionIndex >= layout.QuestionsPerTrait {
		return outOfRange("question index %d not in [0,%d)", st.QuestionIndex, layout.QuestionsPerTrait)
	}
	return nil
}

// Validate checks a restored state against layout: the cursor addresses
// the layout, the score table holds exactly the declared traits, and each
// score is reachable from the answers the cursor says were given.
func Validate(st ProgressState, layout bank.Catalog) error {
	if err := checkCursor(st, layout); err != nil {
		return err
	}
	if len(st.Scores) != len(layout.Sections) {
		return outOfRange("score table has %d sections, want %d", len(st.Scores), len(layout.Sections))
	}
	for si, s := range layout.Sections {
		traits, ok := st.Scores[s.Name]
		if !ok {
			return outOfRange("score table missing section %q", s.Name)
		}
		if len(traits) != len(s.Traits) {
			return outOfRange("section %q has %d scored traits, want %d", s.Name, len(traits), len(s.Traits))
		}
		for ti, trait := range s.Traits {
			v, ok := traits[trait]
			if !ok {
				return outOfRange("score table missing trait %q in section %q", trait, s.Name)
			}
			n := answeredInTrait(st, layout, si, ti)
			if v < n*MinAnswer || v > n*MaxAnswer {
				return outOfRange("score %d for %s/%s not reachable with %d answers", v, s.Name, trait, n)
			}
		}
	}
	return nil
}

func answeredInTrait(st ProgressState, layout bank.Catalog, section, trait int) int {
	switch {
	case section < st.SectionIndex:
		return layout.QuestionsPerTrait
	case section > st.SectionIndex:
		return 0
	case trait < st.TraitIndex:
		return layout.QuestionsPerTrait
	case trait == st.TraitIndex:
		return st.QuestionIndex
	default:
		return 0
	}
}
