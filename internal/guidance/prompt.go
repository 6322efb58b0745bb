package guidance

import (
	"fmt"
	"strings"

	"github.com/novapath/trident/internal/report"
)

const systemPrompt = `You are a school career counsellor writing guidance for a student in grades 9-12.

Rules:
- Base every suggestion on the assessment profile you are given.
- Describe each Holland code letter in one encouraging sentence addressed to the student.
- Suggest exactly 5 careers and exactly 3 action tips.
- Keep language plain and positive. Never mention scores as pass or fail.`

// buildUserMessage renders the profile the model sees.
func buildUserMessage(sum *report.Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Holland code: %s\n", sum.HollandCode)
	fmt.Fprintf(&b, "Primary learning style: %s\n", sum.PrimaryStyle)
	fmt.Fprintf(&b, "Secondary learning style: %s\n", sum.SecondaryStyle)
	fmt.Fprintf(&b, "Maximum score per trait: %d\n", sum.MaxScore)
	for _, s := range sum.Sections {
		fmt.Fprintf(&b, "\n%s:\n", s.Section)
		for _, ts := range s.Top {
			fmt.Fprintf(&b, "- %s: %d\n", ts.Trait, ts.Score)
		}
	}
	return b.String()
}
