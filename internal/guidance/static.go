package guidance

import (
	"strings"

	"github.com/novapath/trident/internal/report"
)

type hollandType struct {
	description string
	careers     []string
	stream      string
	action      string
}

var hollandTypes = map[string]hollandType{
	"Realistic": {
		description: "Practical and hands-on; enjoys tools, machines and working outdoors.",
		careers:     []string{"Mechanical Engineer", "Civil Engineer", "Electrician", "Pilot"},
		stream:      "Science + Technology",
		action:      "Take up a build or repair project and see it through.",
	},
	"Investigative": {
		description: "Analytical and logical; likes solving problems and understanding how things work.",
		careers:     []string{"Software Engineer", "Data Scientist", "Research Scientist", "Doctor"},
		stream:      "Science + Mathematics",
		action:      "Join a science fair or a coding challenge.",
	},
	"Artistic": {
		description: "Creative and expressive; values originality and unstructured work.",
		careers:     []string{"Product Designer", "Architect", "Writer", "Film Maker"},
		stream:      "Humanities + Design",
		action:      "Keep a portfolio and enter a design challenge.",
	},
	"Social": {
		description: "Empathetic and supportive; enjoys teaching, helping and caring for people.",
		careers:     []string{"Teacher", "Psychologist", "Nurse", "Social Worker"},
		stream:      "Humanities + Social Sciences",
		action:      "Volunteer to tutor or mentor younger students.",
	},
	"Enterprising": {
		description: "Driven and confident; likes leading, persuading and taking initiative.",
		careers:     []string{"Entrepreneur", "Marketing Manager", "Lawyer", "Sales Lead"},
		stream:      "Commerce + Economics",
		action:      "Practice public speaking and lead a club activity.",
	},
	"Conventional": {
		description: "Organised and precise; prefers clear structure, data and routines.",
		careers:     []string{"Accountant", "Financial Analyst", "Auditor", "Operations Manager"},
		stream:      "Commerce + Mathematics",
		action:      "Manage the budget or records for a school event.",
	},
}

var learningTips = map[string]string{
	"Linguistic":    "Summarise topics in your own words and read them aloud.",
	"Logical":       "Break material into steps and look for patterns.",
	"Visual":        "Use diagrams, mind maps and colour-coded notes.",
	"Kinesthetic":   "Learn by doing: models, experiments and movement breaks.",
	"Interpersonal": "Study in groups and teach ideas to others.",
	"Intrapersonal": "Set personal goals and reflect in a learning journal.",
	"Musical":       "Use rhythm and mnemonics to remember sequences.",
	"Naturalistic":  "Connect topics to real-world examples and classify what you learn.",
}

const (
	staticCareerCount = 5
	defaultStream     = "Science + Technology"
)

// Static builds guidance from the built-in type descriptions.
func Static(sum *report.Summary) *Guidance {
	g := &Guidance{HollandCode: sum.HollandCode, Source: SourceStatic}

	var top []report.TraitScore
	if s := sum.Section(report.HollandSection); s != nil {
		top = s.Ranked[:min(3, len(s.Ranked))]
	}
	for _, ts := range top {
		ht, ok := hollandTypes[ts.Trait]
		if !ok {
			continue
		}
		g.Types = append(g.Types, TypeNote{Trait: ts.Trait, Description: ht.description})
		g.ActionTips = append(g.ActionTips, ht.action)
		if g.RecommendedStream == "" {
			g.RecommendedStream = ht.stream
		}
	}
	g.Careers = interleaveCareers(top, staticCareerCount)
	if g.RecommendedStream == "" {
		g.RecommendedStream = defaultStream
	}

	var tips []string
	for _, style := range []string{sum.PrimaryStyle, sum.SecondaryStyle} {
		if tip, ok := learningTips[style]; ok {
			tips = append(tips, tip)
		}
	}
	g.LearningTips = strings.Join(tips, " ")
	return g
}

// interleaveCareers takes careers round-robin from the top traits so the
// leading trait contributes first at every depth.
func interleaveCareers(top []report.TraitScore, n int) []string {
	var out []string
	for depth := 0; len(out) < n; depth++ {
		added := false
		for _, ts := range top {
			careers := hollandTypes[ts.Trait].careers
			if depth < len(careers) && len(out) < n {
				out = append(out, careers[depth])
				added = true
			}
		}
		if !added {
			break
		}
	}
	return out
}
