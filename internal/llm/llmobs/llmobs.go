package llmobs

import (
	"context"

	"sentiment-trading-bot/internal/interfaces"
	"sentiment-trading-bot/internal/logger"
	"sentiment-trading-bot/internal/trace"
	"sentiment-trading-bot/internal/types"
)

// observableProvider wraps a Provider with observability (logging & tracing)
type observableProvider struct {
	provider interfaces.Provider
}

// Compile-time interface check
var _ interfaces.Provider = (*observableProvider)(nil)

// Wrap wraps a provider with observability middleware
func Wrap(provider interfaces.Provider) interfaces.Provider {
	return &observableProvider{provider: provider}
}

func (op *observableProvider) Name() string {
	return op.provider.Name()
}

// ScoreMessage scores a message with observability
func (op *observableProvider) ScoreMessage(ctx context.Context, text string) (float64, error) {
	ctx, span := trace.StartSpan(ctx, "llm.ScoreMessage")
	defer span.End()

	logger.Debug(ctx, "Requesting message sentiment",
		"provider", op.provider.Name(),
		"text_length", len(text),
	)

	score, err := op.provider.ScoreMessage(ctx, text)
	if err != nil {
		logger.ErrorWithErr(ctx, "Message sentiment request failed", err,
			"provider", op.provider.Name(),
		)
		return 0, err
	}

	logger.Info(ctx, "Message sentiment received",
		"provider", op.provider.Name(),
		"score", score,
	)
	return score, nil
}

// AnalyzePost analyzes a post with observability
func (op *observableProvider) AnalyzePost(ctx context.Context, text string) (types.PostSentiment, error) {
	ctx, span := trace.StartSpan(ctx, "llm.AnalyzePost")
	defer span.End()

	logger.Debug(ctx, "Requesting post sentiment",
		"provider", op.provider.Name(),
		"text_length", len(text),
	)

	s, err := op.provider.AnalyzePost(ctx, text)
	if err != nil {
		logger.ErrorWithErr(ctx, "Post sentiment request failed", err,
			"provider", op.provider.Name(),
		)
		return types.PostSentiment{}, err
	}

	logger.Info(ctx, "Post sentiment received",
		"provider", op.provider.Name(),
		"label", s.Label,
		"score", s.Score,
		"confidence", s.Confidence,
	)
	return s, nil
}
