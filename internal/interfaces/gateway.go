package interfaces

import (
	"context"

	"sentiment-trading-bot/internal/types"
)

// Gateway is the on-chain execution boundary. The pipeline only produces
// trade plans; anything past this interface is a fallible black box and
// callers must never assume success.
type Gateway interface {
	ExecuteTrade(ctx context.Context, plan *types.TradePlan) (types.TradeResult, error)
	Balance(ctx context.Context, asset string) (types.Balance, error)
	Transfer(ctx context.Context, asset, amount, destination string) (types.TransferResult, error)
}
