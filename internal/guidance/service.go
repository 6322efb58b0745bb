package guidance

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/novapath/trident/internal/llm"
	"github.com/novapath/trident/internal/report"
)

// Config tunes model requests.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns the request settings used by the commands.
func DefaultConfig() Config {
	return Config{MaxTokens: 1024, Temperature: 0.4}
}

// Observer is notified of the source of every guidance served.
type Observer interface {
	GuidanceServed(source string)
}

// Service produces guidance for finished assessments.
type Service struct {
	provider llm.Provider
	config   Config
	logger   *zap.Logger
	observer Observer
}

// NewService creates a Service. A nil provider always serves static
// guidance. observer may be nil.
func NewService(provider llm.Provider, cfg Config, logger *zap.Logger, observer Observer) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{provider: provider, config: cfg, logger: logger, observer: observer}
}

type guidanceOutput struct {
	Types             []TypeNote `json:"types"`
	Careers           []string   `json:"careers"`
	LearningTips      string     `json:"learning_tips"`
	RecommendedStream string     `json:"recommended_stream"`
	ActionTips        []string   `json:"action_tips"`
}

// Generate returns guidance for sum. Provider failures fall back to static
// guidance; only a cancelled context is returned as an error.
func (s *Service) Generate(ctx context.Context, sum *report.Summary) (*Guidance, error) {
	if sum == nil {
		return nil, errors.New("generate guidance: nil summary")
	}
	if s.provider == nil {
		return s.served(Static(sum)), nil
	}

	g, err := s.fromModel(ctx, sum)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		s.logger.Warn("llm guidance failed, using static guidance",
			zap.String("model", s.provider.ModelID()),
			zap.Error(err),
		)
		return s.served(Static(sum)), nil
	}
	return s.served(g), nil
}

func (s *Service) fromModel(ctx context.Context, sum *report.Summary) (*Guidance, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeGuidance)
	req := llm.UserPrompt(systemPrompt, buildUserMessage(sum))
	req.Schema = guidanceSchema
	req.MaxTokens = s.config.MaxTokens
	req.Temperature = s.config.Temperature

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("llm generation failed: %w", err)
	}
	var out guidanceOutput
	if err := resp.Decode(&out); err != nil {
		return nil, err
	}
	return &Guidance{
		HollandCode:       sum.HollandCode,
		Types:             out.Types,
		Careers:           out.Careers,
		LearningTips:      out.LearningTips,
		RecommendedStream: out.RecommendedStream,
		ActionTips:        out.ActionTips,
		Source:            SourceLLM,
	}, nil
}

func (s *Service) served(g *Guidance) *Guidance {
	if s.observer != nil {
		s.observer.GuidanceServed(g.Source)
	}
	return g
}
