// Package bank loads and validates the question bank: the fixed catalog of
// questions for every section and trait of the assessment.
package bank

import (
	"slices"
	"sort"
	"strings"
)

// Bank is an immutable question bank laid out in catalog order.
type Bank struct {
	catalog   Catalog
	version   string
	questions [][][]string // [section][trait][question]
}

// New builds a Bank from a section → trait → questions mapping, checking it
// against cat. Every declared section and trait must be present with exactly
// cat.QuestionsPerTrait non-empty questions; undeclared sections or traits
// are rejected so the shuffle draw order is fully defined by the catalog.
func New(cat Catalog, sections map[string]map[string][]string) (*Bank, error) {
	if err := cat.Validate(); err != nil {
		return nil, err
	}

	b := &Bank{
		catalog:   cloneCatalog(cat),
		questions: make([][][]string, len(cat.Sections)),
	}

	declared := make(map[string]map[string]bool, len(cat.Sections))
	for si, spec := range cat.Sections {
		traits, ok := sections[spec.Name]
		if !ok {
			return nil, configErrorf("missing section %q", spec.Name)
		}
		declared[spec.Name] = make(map[string]bool, len(spec.Traits))
		b.questions[si] = make([][]string, len(spec.Traits))
		for ti, trait := range spec.Traits {
			declared[spec.Name][trait] = true
			qs, ok := traits[trait]
			if !ok {
				return nil, configErrorf("section %q: missing trait %q", spec.Name, trait)
			}
			if len(qs) != cat.QuestionsPerTrait {
				return nil, configErrorf("section %q trait %q: %d questions, want %d",
					spec.Name, trait, len(qs), cat.QuestionsPerTrait)
			}
			for qi, q := range qs {
				if strings.TrimSpace(q) == "" {
					return nil, configErrorf("section %q trait %q: question %d is empty", spec.Name, trait, qi+1)
				}
			}
			b.questions[si][ti] = slices.Clone(qs)
		}
	}

	if extra := undeclared(sections, declared); len(extra) > 0 {
		return nil, configErrorf("undeclared entries: %s", strings.Join(extra, ", "))
	}

	return b, nil
}

// Catalog returns a copy of the bank's catalog.
func (b *Bank) Catalog() Catalog {
	return cloneCatalog(b.catalog)
}

// Version returns the document version, or "" if the document had none.
func (b *Bank) Version() string {
	return b.version
}

// QuestionsPerTrait returns the configured question count per trait.
func (b *Bank) QuestionsPerTrait() int {
	return b.catalog.QuestionsPerTrait
}

// Questions returns a copy of the questions for the given section and trait
// indices in bank order, or nil if either index is out of range.
func (b *Bank) Questions(section, trait int) []string {
	if section < 0 || section >= len(b.questions) {
		return nil
	}
	if trait < 0 || trait >= len(b.questions[section]) {
		return nil
	}
	return slices.Clone(b.questions[section][trait])
}

func undeclared(sections map[string]map[string][]string, declared map[string]map[string]bool) []string {
	var extra []string
	for name, traits := range sections {
		known, ok := declared[name]
		if !ok {
			extra = append(extra, name)
			continue
		}
		for trait := range traits {
			if !known[trait] {
				extra = append(extra, name+"/"+trait)
			}
		}
	}
	sort.Strings(extra)
	return extra
}

func cloneCatalog(c Catalog) Catalog {
	out := Catalog{
		Sections:          make([]SectionSpec, len(c.Sections)),
		QuestionsPerTrait: c.QuestionsPerTrait,
	}
	for i, s := range c.Sections {
		out.Sections[i] = SectionSpec{Name: s.Name, Traits: slices.Clone(s.Traits)}
	}
	return out
}
