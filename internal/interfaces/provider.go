package interfaces

import (
	"context"

	"sentiment-trading-bot/internal/types"
)

// Provider is one sentiment oracle adapter. Providers are tried in order
// by the classifier until one returns a usable result.
type Provider interface {
	// Name identifies the provider in trade plans and logs.
	Name() string

	// ScoreMessage returns a raw sentiment intensity on the -1..1 message
	// scale for the given text.
	ScoreMessage(ctx context.Context, text string) (float64, error)

	// AnalyzePost returns the structured 1-10 scale sentiment for a single
	// social post.
	AnalyzePost(ctx context.Context, text string) (types.PostSentiment, error)
}
