// Package ordering derives the per-user question ordering: every trait's
// questions shuffled by one generator seeded from the user's identifier.
package ordering

import (
	"slices"

	"github.com/novapath/trident/internal/bank"
)

// Ordering is a per-user permutation of a bank. It is immutable after
// Derive returns and safe to share between goroutines.
type Ordering struct {
	seed      int64
	questions [][][]string // [section][trait][question]
}

// Derive shuffles a copy of every trait's questions with a single generator
// seeded with seed. Sections are visited in declared order, then traits in
// declared order; that order fixes which draws each trait consumes.
func Derive(b *bank.Bank, seed int64) *Ordering {
	cat := b.Catalog()
	rng := NewMT19937(seed)
	o := &Ordering{
		seed:      seed,
		questions: make([][][]string, len(cat.Sections)),
	}
	for si, s := range cat.Sections {
		o.questions[si] = make([][]string, len(s.Traits))
		for ti := range s.Traits {
			qs := b.Questions(si, ti)
			rng.Shuffle(len(qs), func(i, j int) { qs[i], qs[j] = qs[j], qs[i] })
			o.questions[si][ti] = qs
		}
	}
	return o
}

// Seed returns the seed the ordering was derived from.
func (o *Ordering) Seed() int64 {
	return o.seed
}

// Question returns the question at the given indices. ok is false when any
// index does not address a question.
func (o *Ordering) Question(section, trait, index int) (q string, ok bool) {
	if section < 0 || section >= len(o.questions) {
		return "", false
	}
	traits := o.questions[section]
	if trait < 0 || trait >= len(traits) {
		return "", false
	}
	qs := traits[trait]
	if index < 0 || index >= len(qs) {
		return "", false
	}
	return qs[index], true
}

// Questions returns a copy of one trait's ordered questions.
func (o *Ordering) Questions(section, trait int) []string {
	if section < 0 || section >= len(o.questions) {
		return nil
	}
	if trait < 0 || trait >= len(o.questions[section]) {
		return nil
	}
	return slices.Clone(o.questions[section][trait])
}
