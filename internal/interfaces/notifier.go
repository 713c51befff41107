package interfaces

import (
	"context"

	"sentiment-trading-bot/internal/types"
)

// Notifier receives human-readable pipeline output. Publish is
// fire-and-forget: implementations swallow their own failures.
type Notifier interface {
	Publish(ctx context.Context, msg types.Message)
}
