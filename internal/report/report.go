// Package report turns a finished score table into rankings: traits per
// section ordered by score, the Holland code and the learning styles.
package report

import (
	"fmt"
	"slices"
	"strings"

	"github.com/novapath/trident/internal/assessment"
	"github.com/novapath/trident/internal/bank"
)

// Section names with derived fields.
const (
	HollandSection  = "RIASEC"
	LearningSection = "Learning"
)

// DefaultTopN is the number of leading traits kept per section.
const DefaultTopN = 3

// TraitScore is one trait's result.
type TraitScore struct {
	Trait   string  `json:"trait"`
	Score   int     `json:"score"`
	Percent float64 `json:"percent"`
	Rank    int     `json:"rank"`
}

// SectionSummary ranks the traits of one section. Ranked holds every trait
// by descending score, ties in declaration order; Top is its first N.
type SectionSummary struct {
	Section string       `json:"section"`
	Ranked  []TraitScore `json:"ranked"`
	Top     []TraitScore `json:"top"`
}

// Summary is the score mapping plus derived rankings for a finished
// assessment.
type Summary struct {
	Sections []SectionSummary `json:"sections"`
	// MaxScore is the per-trait ceiling used to scale bars and percents.
	MaxScore int `json:"max_score"`
	// HollandCode is the initials of the three highest RIASEC traits.
	HollandCode    string `json:"holland_code,omitempty"`
	PrimaryStyle   string `json:"primary_style,omitempty"`
	SecondaryStyle string `json:"secondary_style,omitempty"`
}

// Build ranks scores against layout. topN <= 0 keeps every trait in Top.
// Every declared trait must be present in scores.
func Build(layout bank.Catalog, scores assessment.ScoreTable, topN int) (*Summary, error) {
	ceiling := assessment.MaxScore(layout.QuestionsPerTrait)
	sum := &Summary{
		Sections: make([]SectionSummary, 0, len(layout.Sections)),
		MaxScore: ceiling,
	}

	for _, s := range layout.Sections {
		traits, ok := scores[s.Name]
		if !ok {
			return nil, fmt.Errorf("build report: no scores for section %q", s.Name)
		}
		ranked := make([]TraitScore, 0, len(s.Traits))
		for _, trait := range s.Traits {
			v, ok := traits[trait]
			if !ok {
				return nil, fmt.Errorf("build report: no score for %s/%s", s.Name, trait)
			}
			ranked = append(ranked, TraitScore{Trait: trait, Score: v, Percent: percent(v, ceiling)})
		}
		slices.SortStableFunc(ranked, func(a, b TraitScore) int { return b.Score - a.Score })
		for i := range ranked {
			ranked[i].Rank = i + 1
		}

		n := len(ranked)
		if topN > 0 && topN < n {
			n = topN
		}
		sum.Sections = append(sum.Sections, SectionSummary{
			Section: s.Name,
			Ranked:  ranked,
			Top:     slices.Clone(ranked[:n]),
		})
	}

	if s := sum.Section(HollandSection); s != nil {
		sum.HollandCode = hollandCode(s.Ranked)
	}
	if s := sum.Section(LearningSection); s != nil {
		if len(s.Ranked) > 0 {
			sum.PrimaryStyle = s.Ranked[0].Trait
		}
		if len(s.Ranked) > 1 {
			sum.SecondaryStyle = s.Ranked[1].Trait
		}
	}
	return sum, nil
}

// Section returns the named section summary, or nil.
func (s *Summary) Section(name string) *SectionSummary {
	for i := range s.Sections {
		if s.Sections[i].Section == name {
			return &s.Sections[i]
		}
	}
	return nil
}

func hollandCode(ranked []TraitScore) string {
	var b strings.Builder
	for i := 0; i < len(ranked) && i < 3; i++ {
		if r := []rune(ranked[i].Trait); len(r) > 0 {
			b.WriteRune(r[0])
		}
	}
	return b.String()
}

func percent(v, ceiling int) float64 {
	if ceiling <= 0 {
		return 0
	}
	return float64(v) * 100 / float64(ceiling)
}
