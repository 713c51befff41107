// Package gateway provides execution gateways for trade plans. The mock
// gateway simulates on-chain settlement for dry runs; a real gateway would
// wrap a wallet SDK behind the same interface.
package gateway

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"sentiment-trading-bot/internal/interfaces"
	"sentiment-trading-bot/internal/logger"
	"sentiment-trading-bot/internal/types"
)

// Mock simulates trade settlement without touching a chain. Buys fill at
// a 10% premium and sells at a 10% discount so trade plumbing can be
// exercised end to end with plausible numbers.
type Mock struct {
	buyMultiplier  decimal.Decimal
	sellMultiplier decimal.Decimal
}

var _ interfaces.Gateway = (*Mock)(nil)

// NewMock creates a mock execution gateway.
func NewMock() *Mock {
	return &Mock{
		buyMultiplier:  decimal.NewFromFloat(1.1),
		sellMultiplier: decimal.NewFromFloat(0.9),
	}
}

// ExecuteTrade simulates settling a trade plan. The amount received is
// derived from the plan amount and the action's fill multiplier.
func (m *Mock) ExecuteTrade(ctx context.Context, plan *types.TradePlan) (types.TradeResult, error) {
	logger.Info(ctx, "Executing trade", "action", plan.Action, "pair", plan.Pair, "amount", plan.Amount)

	amount, err := parseAmount(plan.Amount)
	if err != nil {
		return types.TradeResult{Success: false, Error: err.Error()}, nil
	}

	multiplier := m.sellMultiplier
	if plan.Action == "buy" {
		multiplier = m.buyMultiplier
	}

	received := amount.Mul(multiplier).StringFixed(6)
	txHash := newTxHash()

	logger.Info(ctx, "Trade executed successfully", "tx_hash", txHash, "amount_received", received)
	return types.TradeResult{
		Success:         true,
		TransactionHash: txHash,
		AmountReceived:  received,
	}, nil
}

// Balance reports a simulated wallet balance for the asset.
func (m *Mock) Balance(ctx context.Context, asset string) (types.Balance, error) {
	logger.Debug(ctx, "Checking balance", "asset", asset)

	// Deterministic per-asset amount keeps dry-run output stable.
	amount := decimal.NewFromInt(int64(len(asset) * 100)).Div(decimal.NewFromInt(81)).StringFixed(6)
	return types.Balance{
		Asset:     asset,
		Amount:    amount,
		Formatted: fmt.Sprintf("%s %s", amount, asset),
	}, nil
}

// Transfer simulates moving an asset to a destination address.
func (m *Mock) Transfer(ctx context.Context, asset, amount, destination string) (types.TransferResult, error) {
	logger.Info(ctx, "Transferring asset", "asset", asset, "amount", amount, "destination", destination)

	if _, err := parseAmount(amount); err != nil {
		return types.TransferResult{Success: false, Error: err.Error()}, nil
	}
	if !strings.HasPrefix(destination, "0x") && !strings.HasSuffix(destination, ".eth") {
		return types.TransferResult{Success: false, Error: fmt.Sprintf("invalid destination %q", destination)}, nil
	}

	txHash := newTxHash()
	logger.Info(ctx, "Transfer executed successfully", "tx_hash", txHash)
	return types.TransferResult{Success: true, TransactionHash: txHash}, nil
}

// parseAmount accepts both bare numbers ("0.1") and amounts with an asset
// suffix ("0.1 ETH").
func parseAmount(raw string) (decimal.Decimal, error) {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return decimal.Zero, fmt.Errorf("empty trade amount")
	}
	d, err := decimal.NewFromString(fields[0])
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid trade amount %q: %w", raw, err)
	}
	if d.IsNegative() || d.IsZero() {
		return decimal.Zero, fmt.Errorf("trade amount must be positive, got %q", raw)
	}
	return d, nil
}

func newTxHash() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "0x0"
	}
	return "0x" + hex.EncodeToString(buf)
}
