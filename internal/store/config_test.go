package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, "mode: DRY_RUN\n")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Feed.Query != "ethereum" || cfg.Feed.MaxPosts != 15 {
		t.Errorf("feed defaults = %+v", cfg.Feed)
	}
	if cfg.LLM.GeminiModel != "gemini-1.5-flash" || cfg.LLM.OpenAIModel != "gpt-4o-mini" {
		t.Errorf("model defaults = %s / %s", cfg.LLM.GeminiModel, cfg.LLM.OpenAIModel)
	}
	if cfg.LLM.TimeoutSeconds != 30 || cfg.LLM.RatePerSecond != 1 {
		t.Errorf("llm defaults = %+v", cfg.LLM)
	}
	if cfg.Trade.Pair != "ETH/USDC" || cfg.Trade.Amount != "0.1 ETH" {
		t.Errorf("trade defaults = %+v", cfg.Trade)
	}
	if cfg.Trade.SignalThreshold != 0.5 {
		t.Errorf("SignalThreshold = %v, want 0.5", cfg.Trade.SignalThreshold)
	}
	if cfg.Trade.BuyThresholdUSD != 3000 || cfg.Trade.SellThresholdUSD != 3500 {
		t.Errorf("price thresholds = %v / %v", cfg.Trade.BuyThresholdUSD, cfg.Trade.SellThresholdUSD)
	}
	if cfg.Alpha.MinScore != 5 || cfg.Alpha.TopSignals != 10 {
		t.Errorf("alpha defaults = %+v", cfg.Alpha)
	}
	if cfg.Price.FallbackUSD != 3000 {
		t.Errorf("price fallback = %v", cfg.Price.FallbackUSD)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	path := writeConfig(t, `
mode: LIVE
feed:
  query: solana
  max_posts: 5
llm:
  providers: [GEMINI, OPENAI]
  rate_per_second: 2
trade:
  pair: SOL/USDC
  amount: "1 SOL"
  signal_threshold: 0.7
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Mode != "LIVE" {
		t.Errorf("Mode = %s", cfg.Mode)
	}
	if cfg.Feed.Query != "solana" || cfg.Feed.MaxPosts != 5 {
		t.Errorf("feed = %+v", cfg.Feed)
	}
	if len(cfg.LLM.Providers) != 2 || cfg.LLM.Providers[0] != "GEMINI" {
		t.Errorf("providers = %v", cfg.LLM.Providers)
	}
	if cfg.Trade.Pair != "SOL/USDC" || cfg.Trade.SignalThreshold != 0.7 {
		t.Errorf("trade = %+v", cfg.Trade)
	}
}

func TestLoadConfigValidation(t *testing.T) {
	cases := map[string]struct {
		yaml    string
		wantErr string
	}{
		"bad mode":       {"mode: YOLO\n", "invalid mode"},
		"bad provider":   {"mode: DRY_RUN\nllm:\n  providers: [GROK]\n", "unknown llm provider"},
		"bad threshold":  {"mode: DRY_RUN\ntrade:\n  signal_threshold: 1.5\n", "signal_threshold"},
		"bad pair":       {"mode: DRY_RUN\ntrade:\n  pair: ETHUSDC\n", "trade.pair"},
		"live no oracle": {"mode: LIVE\n", "providers cannot be empty"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tc.yaml))
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("error = %v, want mention of %q", err, tc.wantErr)
			}
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
