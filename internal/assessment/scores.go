package assessment

import "github.com/novapath/trident/internal/bank"

// Answer scale bounds. DefaultAnswer is the preselected value.
const (
	MinAnswer     = 1
	MaxAnswer     = 5
	DefaultAnswer = 3
)

// ScoreTable holds the accumulated score per section and trait.
type ScoreTable map[string]map[string]int

// NewScoreTable returns a table with every declared trait at zero.
func NewScoreTable(layout bank.Catalog) ScoreTable {
	t := make(ScoreTable, len(layout.Sections))
	for _, s := range layout.Sections {
		traits := make(map[string]int, len(s.Traits))
		for _, trait := range s.Traits {
			traits[trait] = 0
		}
		t[s.Name] = traits
	}
	return t
}

// MaxScore is the highest score a trait can reach.
func MaxScore(questionsPerTrait int) int {
	return MaxAnswer * questionsPerTrait
}

// ValidAnswer reports whether v is on the answer scale.
func ValidAnswer(v int) bool {
	return v >= MinAnswer && v <= MaxAnswer
}

// Record adds value to the trait's score. Values off the scale are rejected,
// never clamped.
func (t ScoreTable) Record(section, trait string, value int) error {
	if !ValidAnswer(value) {
		return &InvalidAnswerError{Value: value}
	}
	traits, ok := t[section]
	if !ok {
		return outOfRange("unknown section %q", section)
	}
	if _, ok := traits[trait]; !ok {
		return outOfRange("unknown trait %q in section %q", trait, section)
	}
	traits[trait] += value
	return nil
}

// Get returns the score for a trait, or 0 when it is absent.
func (t ScoreTable) Get(section, trait string) int {
	return t[section][trait]
}

// Snapshot returns a deep copy.
func (t ScoreTable) Snapshot() ScoreTable {
	if t == nil {
		return nil
	}
	out := make(ScoreTable, len(t))
	for s, traits := range t {
		cp := make(map[string]int, len(traits))
		for trait, v := range traits {
			cp[trait] = v
		}
		out[s] = cp
	}
	return out
}

// Total returns the sum of every trait score.
func (t ScoreTable) Total() int {
	total := 0
	for _, traits := range t {
		for _, v := range traits {
			total += v
		}
	}
	return total
}
