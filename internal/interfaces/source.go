package interfaces

import (
	"context"

	"sentiment-trading-bot/internal/types"
)

// Source delivers an ordered sequence of posts for a query. An empty
// result is valid and must not be treated as an error.
type Source interface {
	Fetch(ctx context.Context, query string, limit int) ([]types.Post, error)
}
