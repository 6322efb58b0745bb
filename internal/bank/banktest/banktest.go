// Package banktest builds synthetic question banks for tests.
package banktest

import (
	"fmt"
	"testing"

	"github.com/novapath/trident/internal/bank"
)

// Sections returns a section → trait → questions mapping that satisfies cat.
// Question text is "<trait> q<n>" with n starting at 1.
func Sections(cat bank.Catalog) map[string]map[string][]string {
	out := make(map[string]map[string][]string, len(cat.Sections))
	for _, s := range cat.Sections {
		traits := make(map[string][]string, len(s.Traits))
		for _, trait := range s.Traits {
			qs := make([]string, cat.QuestionsPerTrait)
			for i := range qs {
				qs[i] = fmt.Sprintf("%s q%d", trait, i+1)
			}
			traits[trait] = qs
		}
		out[s.Name] = traits
	}
	return out
}

// New returns a synthetic bank for cat, failing the test on error.
func New(t testing.TB, cat bank.Catalog) *bank.Bank {
	t.Helper()
	b, err := bank.New(cat, Sections(cat))
	if err != nil {
		t.Fatalf("banktest: %v", err)
	}
	return b
}

// Small is a two-section catalog with two questions per trait.
func Small() bank.Catalog {
	return bank.Catalog{
		Sections: []bank.SectionSpec{
			{Name: "X", Traits: []string{"A", "B"}},
			{Name: "Y", Traits: []string{"C"}},
		},
		QuestionsPerTrait: 2,
	}
}
