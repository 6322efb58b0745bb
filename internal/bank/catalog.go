package bank

// DefaultQuestionsPerTrait is the number of questions each trait carries in
// the TRIDENT question bank.
const DefaultQuestionsPerTrait = 12

// SectionSpec declares one section and its traits in traversal order.
type SectionSpec struct {
	Name   string   `json:"name" yaml:"name" mapstructure:"name"`
	Traits []string `json:"traits" yaml:"traits" mapstructure:"traits"`
}

// Catalog is the declared, ordered structure of an assessment. The order of
// Sections and of each section's Traits is the traversal order and the
// order in which question shuffles consume random draws.
type Catalog struct {
	Sections          []SectionSpec
	QuestionsPerTrait int
}

// DefaultCatalog returns the TRIDENT catalog: RIASEC, Personality,
// Aptitude, EQ and Learning with 12 questions per trait.
func DefaultCatalog() Catalog {
	return Catalog{
		Sections: []SectionSpec{
			{Name: "RIASEC", Traits: []string{
				"Realistic", "Investigative", "Artistic", "Social", "Enterprising", "Conventional",
			}},
			{Name: "Personality", Traits: []string{
				"Openness", "Conscientiousness", "Extraversion", "Agreeableness", "Neuroticism",
				"Detail-Oriented", "Flexible", "Empathetic", "Objective", "Resilient",
			}},
			{Name: "Aptitude", Traits: []string{
				"Verbal", "Numerical", "Abstract", "Spatial", "Logical", "Mechanical",
			}},
			{Name: "EQ", Traits: []string{
				"Self-Awareness", "Self-Regulation", "Motivation", "Empathy", "Social Skills",
			}},
			{Name: "Learning", Traits: []string{
				"Linguistic", "Logical", "Visual", "Kinesthetic", "Interpersonal",
				"Intrapersonal", "Musical", "Naturalistic",
			}},
		},
		QuestionsPerTrait: DefaultQuestionsPerTrait,
	}
}

// SectionCount returns the number of declared sections.
func (c Catalog) SectionCount() int {
	return len(c.Sections)
}

// TraitCount returns the number of traits in section i, or 0 if i is out of range.
func (c Catalog) TraitCount(i int) int {
	if i < 0 || i >= len(c.Sections) {
		return 0
	}
	return len(c.Sections[i].Traits)
}

// TotalQuestions returns the number of answers needed to complete the catalog.
func (c Catalog) TotalQuestions() int {
	total := 0
	for _, s := range c.Sections {
		total += len(s.Traits) * c.QuestionsPerTrait
	}
	return total
}

// SectionIndex returns the position of the named section, or -1.
func (c Catalog) SectionIndex(name string) int {
	for i, s := range c.Sections {
		if s.Name == name {
			return i
		}
	}
	return -1
}

// Validate checks the catalog itself: at least one section, no empty or
// duplicate names, at least one trait per section, and a positive
// question count.
func (c Catalog) Validate() error {
	if len(c.Sections) == 0 {
		return configErrorf("catalog declares no sections")
	}
	if c.QuestionsPerTrait <= 0 {
		return configErrorf("questions per trait must be positive, got %d", c.QuestionsPerTrait)
	}
	seen := make(map[string]bool, len(c.Sections))
	for _, s := range c.Sections {
		if s.Name == "" {
			return configErrorf("catalog has a section with an empty name")
		}
		if seen[s.Name] {
			return configErrorf("section %q declared twice", s.Name)
		}
		seen[s.Name] = true
		if len(s.Traits) == 0 {
			return configErrorf("section %q declares no traits", s.Name)
		}
		traits := make(map[string]bool, len(s.Traits))
		for _, t := range s.Traits {
			if t == "" {
				return configErrorf("section %q has a trait with an empty name", s.Name)
			}
			if traits[t] {
				return configErrorf("trait %q declared twice in section %q", t, s.Name)
			}
			traits[t] = true
		}
	}
	return nil
}
