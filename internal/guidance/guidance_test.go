package guidance

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/novapath/trident/internal/assessment"
	"github.com/novapath/trident/internal/bank"
	"github.com/novapath/trident/internal/llm"
	"github.com/novapath/trident/internal/report"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func isaSummary(t *testing.T) *report.Summary {
	t.Helper()
	cat := bank.DefaultCatalog()
	scores := assessment.NewScoreTable(cat)
	scores["RIASEC"]["Investigative"] = 50
	scores["RIASEC"]["Social"] = 45
	scores["RIASEC"]["Artistic"] = 40
	scores["RIASEC"]["Realistic"] = 20
	scores["Learning"]["Visual"] = 55
	scores["Learning"]["Interpersonal"] = 50
	sum, err := report.Build(cat, scores, report.DefaultTopN)
	require.NoError(t, err)
	require.Equal(t, "ISA", sum.HollandCode)
	return sum
}

type countingObserver map[string]int

func (o countingObserver) GuidanceServed(source string) { o[source]++ }

func TestStatic(t *testing.T) {
	g := Static(isaSummary(t))

	assert.Equal(t, SourceStatic, g.Source)
	assert.Equal(t, "ISA", g.HollandCode)
	require.Len(t, g.Types, 3)
	assert.Equal(t, "Investigative", g.Types[0].Trait)
	assert.Equal(t, []string{
		"Software Engineer", "Teacher", "Product Designer", "Data Scientist", "Psychologist",
	}, g.Careers)
	assert.Equal(t, "Science + Mathematics", g.RecommendedStream)
	assert.Len(t, g.ActionTips, 3)
	assert.Contains(t, g.LearningTips, "diagrams")
	assert.Contains(t, g.LearningTips, "groups")
}

func TestStatic_NoRIASEC(t *testing.T) {
	g := Static(&report.Summary{})
	assert.Empty(t, g.Careers)
	assert.Equal(t, defaultStream, g.RecommendedStream)
}

func TestGenerate_NoProvider(t *testing.T) {
	obs := countingObserver{}
	g, err := NewService(nil, DefaultConfig(), nil, obs).Generate(context.Background(), isaSummary(t))
	require.NoError(t, err)
	assert.Equal(t, SourceStatic, g.Source)
	assert.Equal(t, 1, obs[SourceStatic])
}

func TestGenerate_FromModel(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockJSON(map[string]any{
		"types":              []map[string]string{{"trait": "Investigative", "description": "You love puzzles."}},
		"careers":            []string{"Data Scientist", "Biotech Researcher"},
		"learning_tips":      "Draw it out.",
		"recommended_stream": "Science + Technology",
		"action_tips":        []string{"Build a weather station"},
	}))
	obs := countingObserver{}
	svc := NewService(mock, DefaultConfig(), nil, obs)

	g, err := svc.Generate(context.Background(), isaSummary(t))
	require.NoError(t, err)
	assert.Equal(t, SourceLLM, g.Source)
	assert.Equal(t, "ISA", g.HollandCode)
	assert.Equal(t, []string{"Data Scientist", "Biotech Researcher"}, g.Careers)
	assert.Equal(t, 1, obs[SourceLLM])

	calls := mock.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, guidanceSchema, calls[0].Schema)
	assert.Equal(t, 1024, calls[0].MaxTokens)
	assert.Contains(t, calls[0].Messages[0].Content, "Holland code: ISA")
	assert.Contains(t, calls[0].Messages[0].Content, "- Investigative: 50")
}

func TestGenerate_FallsBackOnFailure(t *testing.T) {
	tests := []struct {
		name string
		resp llm.MockResponse
	}{
		{"provider error", llm.MockResponse{Err: errors.New("boom")}},
		{"schema mismatch", llm.MockJSON(map[string]any{"careers": []string{}})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(llm.NewMockProvider(tt.resp), DefaultConfig(), nil, nil)
			g, err := svc.Generate(context.Background(), isaSummary(t))
			require.NoError(t, err)
			assert.Equal(t, SourceStatic, g.Source)
			assert.NotEmpty(t, g.Careers)
		})
	}
}

func TestGenerate_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	svc := NewService(llm.NewMockProvider(llm.MockResponse{Err: context.Canceled}), DefaultConfig(), nil, nil)
	_, err := svc.Generate(ctx, isaSummary(t))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGenerate_NilSummary(t *testing.T) {
	_, err := NewService(nil, DefaultConfig(), nil, nil).Generate(context.Background(), nil)
	assert.Error(t, err)
}
