package engine

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"sentiment-trading-bot/internal/interfaces"
	"sentiment-trading-bot/internal/report"
	"sentiment-trading-bot/internal/sentiment"
	"sentiment-trading-bot/internal/store"
	"sentiment-trading-bot/internal/types"
)

type stubProvider struct {
	name    string
	score   func(text string) (float64, error)
	analyze func(text string) (types.PostSentiment, error)
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) ScoreMessage(_ context.Context, text string) (float64, error) {
	return s.score(text)
}

func (s *stubProvider) AnalyzePost(_ context.Context, text string) (types.PostSentiment, error) {
	if s.analyze == nil {
		return types.PostSentiment{Label: types.Neutral, Score: 5, Confidence: 0.5}, nil
	}
	return s.analyze(text)
}

func fixedScore(score float64) *stubProvider {
	return &stubProvider{
		name:  "stub",
		score: func(string) (float64, error) { return score, nil },
	}
}

func testConfig() *store.Config {
	cfg := &store.Config{Mode: "DRY_RUN"}
	cfg.Trade.Pair = "ETH/USDC"
	cfg.Trade.Amount = "0.1 ETH"
	cfg.Trade.SignalThreshold = 0.5
	cfg.Trade.BuyThresholdUSD = 3000
	cfg.Trade.SellThresholdUSD = 3500
	cfg.Alpha.MinScore = 5
	cfg.Alpha.TopSignals = 10
	return cfg
}

func newTestEngine(p interfaces.Provider, opts ...Option) *Engine {
	c := sentiment.NewClassifier([]interfaces.Provider{p}, sentiment.WithRateLimit(1000))
	return New(c, testConfig(), opts...)
}

func TestDecideBuySignal(t *testing.T) {
	e := newTestEngine(fixedScore(0.75))

	plan, err := e.Decide(context.Background(), "ETH is going to moon!", "discord")
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}
	if plan == nil {
		t.Fatal("expected a trade plan for score 0.75")
	}
	if plan.Action != "buy" {
		t.Errorf("Action = %s, want buy", plan.Action)
	}
	if plan.Pair != "ETH/USDC" || plan.Amount != "0.1 ETH" {
		t.Errorf("plan = %s %s, want ETH/USDC 0.1 ETH", plan.Pair, plan.Amount)
	}
	if plan.PriceThreshold != "3000 USD" {
		t.Errorf("PriceThreshold = %s, want 3000 USD", plan.PriceThreshold)
	}
	if plan.SentimentScore != 0.75 {
		t.Errorf("SentimentScore = %v, want 0.75", plan.SentimentScore)
	}
	if plan.Source != "discord" {
		t.Errorf("Source = %s, want discord", plan.Source)
	}
	if plan.Provider != "stub" {
		t.Errorf("Provider = %s, want stub", plan.Provider)
	}
	if plan.ID == "" {
		t.Error("plan ID not assigned")
	}
	if _, err := time.Parse(time.RFC3339, plan.Timestamp); err != nil {
		t.Errorf("Timestamp %q not RFC3339: %v", plan.Timestamp, err)
	}
}

func TestDecideSellSignal(t *testing.T) {
	e := newTestEngine(fixedScore(-0.8))

	plan, err := e.Decide(context.Background(), "BTC looking bearish", "cli")
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}
	if plan == nil {
		t.Fatal("expected a trade plan for score -0.8")
	}
	if plan.Action != "sell" {
		t.Errorf("Action = %s, want sell", plan.Action)
	}
	if plan.PriceThreshold != "3500 USD" {
		t.Errorf("PriceThreshold = %s, want 3500 USD", plan.PriceThreshold)
	}
}

func TestDecideWeakSignal(t *testing.T) {
	for _, score := range []float64{0, 0.3, -0.49} {
		e := newTestEngine(fixedScore(score))
		plan, err := e.Decide(context.Background(), "meh", "cli")
		if err != nil {
			t.Fatalf("Decide(%v): %v", score, err)
		}
		if plan != nil {
			t.Errorf("score %v produced a plan, want none", score)
		}
	}
}

func TestDecideThresholdBoundary(t *testing.T) {
	e := newTestEngine(fixedScore(0.5))
	plan, err := e.Decide(context.Background(), "solid", "cli")
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}
	if plan == nil {
		t.Fatal("score exactly at threshold should produce a plan")
	}
}

func TestDecideProviderFailure(t *testing.T) {
	failing := &stubProvider{
		name:  "down",
		score: func(string) (float64, error) { return 0, errors.New("connection refused") },
	}
	e := newTestEngine(failing)

	plan, err := e.Decide(context.Background(), "anything", "cli")
	if err == nil {
		t.Fatal("expected error when all providers fail")
	}
	if !errors.Is(err, sentiment.ErrUnavailable) {
		t.Errorf("error = %v, want ErrUnavailable in chain", err)
	}
	if plan != nil {
		t.Errorf("plan = %+v, want nil on error", plan)
	}
}

func TestDecidePersistsPlan(t *testing.T) {
	dir := t.TempDir()
	e := newTestEngine(fixedScore(0.9), WithAuditLog(report.New(dir)))

	plan, err := e.Decide(context.Background(), "very bullish", "cli")
	if err != nil || plan == nil {
		t.Fatalf("Decide: plan=%v err=%v", plan, err)
	}

	planFile := filepath.Join(dir, "plans", time.Now().UTC().Format("2006-01-02")+".txt")
	data, err := os.ReadFile(planFile)
	if err != nil {
		t.Fatalf("plan file missing: %v", err)
	}
	if !strings.Contains(string(data), plan.ID) {
		t.Error("persisted plan does not contain the plan ID")
	}
}
