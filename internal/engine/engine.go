// Package engine turns sentiment scores into trade decisions and
// orchestrates batch and feed analysis runs.
package engine

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"sentiment-trading-bot/internal/logger"
	"sentiment-trading-bot/internal/price"
	"sentiment-trading-bot/internal/report"
	"sentiment-trading-bot/internal/sentiment"
	"sentiment-trading-bot/internal/store"
	"sentiment-trading-bot/internal/types"
)

// Engine applies the trade policy to classified sentiment.
type Engine struct {
	classifier *sentiment.Classifier
	cfg        *store.Config
	prices     *price.Lookup
	audit      *report.Log
}

// Option configures optional engine collaborators.
type Option func(*Engine)

// WithPriceLookup enables spot-price enrichment of generated plans.
func WithPriceLookup(l *price.Lookup) Option {
	return func(e *Engine) {
		e.prices = l
	}
}

// WithAuditLog persists generated plans and batch reports.
func WithAuditLog(l *report.Log) Option {
	return func(e *Engine) {
		e.audit = l
	}
}

// New creates a decision engine over the given classifier and config.
func New(classifier *sentiment.Classifier, cfg *store.Config, opts ...Option) *Engine {
	e := &Engine{classifier: classifier, cfg: cfg}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Decide scores a message and returns a trade plan when the signal clears
// the policy threshold. A weak signal returns (nil, nil): absence of a
// plan is a normal outcome, not an error.
func (e *Engine) Decide(ctx context.Context, text, source string) (*types.TradePlan, error) {
	timer := logger.StartOperation(ctx, "engine.decide")
	ctx = timer.GetContext()

	score, provider, err := e.classifier.MessageScore(ctx, text)
	if err != nil {
		timer.EndWithError(err)
		return nil, fmt.Errorf("sentiment classification failed: %w", err)
	}

	if math.Abs(score) < e.cfg.Trade.SignalThreshold {
		logger.Info(ctx, "Sentiment below signal threshold, no trade plan",
			"score", score, "threshold", e.cfg.Trade.SignalThreshold)
		timer.End()
		return nil, nil
	}

	action := "sell"
	priceThreshold := e.cfg.Trade.SellThresholdUSD
	if score > 0 {
		action = "buy"
		priceThreshold = e.cfg.Trade.BuyThresholdUSD
	}

	plan := &types.TradePlan{
		ID:             uuid.NewString(),
		Action:         action,
		Pair:           e.cfg.Trade.Pair,
		Amount:         e.cfg.Trade.Amount,
		PriceThreshold: fmt.Sprintf("%g USD", priceThreshold),
		SentimentScore: score,
		Source:         source,
		Timestamp:      time.Now().UTC().Format(time.RFC3339),
		Provider:       provider,
	}

	if e.prices != nil {
		plan.PriceUSD = e.prices.SpotUSD(ctx, plan.Pair)
	}
	if e.audit != nil {
		if err := e.audit.AppendPlan(plan); err != nil {
			logger.Warn(ctx, "Failed to persist trade plan", "plan_id", plan.ID, "error", err.Error())
		}
	}

	logger.Decision(ctx, action, plan.Pair, score, provider, "plan_id", plan.ID, "source", source)
	timer.End()
	return plan, nil
}
