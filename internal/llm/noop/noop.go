package noop

import (
	"context"

	"sentiment-trading-bot/internal/logger"
	"sentiment-trading-bot/internal/sentiment"
	"sentiment-trading-bot/internal/types"
)

// Provider is the DRY_RUN oracle: it never touches the network and always
// reports neutral sentiment, so no trade plan is ever generated.
type Provider struct{}

func New() *Provider {
	return &Provider{}
}

func (p *Provider) Name() string { return "noop" }

// ScoreMessage always reports a neutral message score.
func (p *Provider) ScoreMessage(ctx context.Context, text string) (float64, error) {
	logger.Debug(ctx, "Noop provider called - always returns neutral", "path", "message")
	return 0, nil
}

// AnalyzePost always reports the neutral post default.
func (p *Provider) AnalyzePost(ctx context.Context, text string) (types.PostSentiment, error) {
	logger.Debug(ctx, "Noop provider called - always returns neutral", "path", "post")
	return sentiment.NeutralPostSentiment(), nil
}
