// Package guidance turns a finished assessment summary into career and
// study suggestions, from a language model when one is configured and from
// built-in descriptions otherwise.
package guidance

// Sources reported in Guidance.Source.
const (
	SourceLLM    = "llm"
	SourceStatic = "static"
)

// TypeNote describes one trait of the Holland code.
type TypeNote struct {
	Trait       string `json:"trait"`
	Description string `json:"description"`
}

// Guidance is the advisory part of a report.
type Guidance struct {
	HollandCode       string     `json:"holland_code"`
	Types             []TypeNote `json:"types"`
	Careers           []string   `json:"careers"`
	LearningTips      string     `json:"learning_tips"`
	RecommendedStream string     `json:"recommended_stream"`
	ActionTips        []string   `json:"action_tips"`
	Source            string     `json:"source"`
}
