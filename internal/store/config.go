package store

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Mode string `yaml:"mode"` // DRY_RUN or LIVE

	Feed struct {
		Query    string `yaml:"query"`
		MaxPosts int    `yaml:"max_posts"`
		Mirror   string `yaml:"mirror"` // base URL of the search mirror to scrape
	} `yaml:"feed"`

	LLM struct {
		Providers      []string `yaml:"providers"` // ordered failover chain, e.g. [GEMINI, OPENAI]
		GeminiModel    string   `yaml:"gemini_model"`
		OpenAIModel    string   `yaml:"openai_model"`
		MaxTokens      int      `yaml:"max_tokens"`
		Temperature    float32  `yaml:"temperature"`
		TimeoutSeconds int      `yaml:"timeout_seconds"`
		RatePerSecond  float64  `yaml:"rate_per_second"` // oracle call budget for the per-post path
	} `yaml:"llm"`

	Trade struct {
		Pair             string  `yaml:"pair"`   // e.g. ETH/USDC
		Amount           string  `yaml:"amount"` // e.g. "0.1 ETH"
		SignalThreshold  float64 `yaml:"signal_threshold"`
		BuyThresholdUSD  float64 `yaml:"buy_threshold_usd"`
		SellThresholdUSD float64 `yaml:"sell_threshold_usd"`
	} `yaml:"trade"`

	Alpha struct {
		MinScore   float64 `yaml:"min_score"`
		TopSignals int     `yaml:"top_signals"`
	} `yaml:"alpha"`

	Price struct {
		FallbackUSD    float64 `yaml:"fallback_usd"`
		TimeoutSeconds int     `yaml:"timeout_seconds"`
	} `yaml:"price"`
}

func (c *Config) Validate() error {
	if c.Mode != "DRY_RUN" && c.Mode != "LIVE" {
		return fmt.Errorf("invalid mode '%s': must be 'DRY_RUN' or 'LIVE'", c.Mode)
	}
	if len(c.LLM.Providers) == 0 && c.Mode == "LIVE" {
		return errors.New("llm.providers cannot be empty in LIVE mode")
	}
	for _, p := range c.LLM.Providers {
		switch strings.ToUpper(p) {
		case "GEMINI", "OPENAI", "NOOP":
		default:
			return fmt.Errorf("unknown llm provider '%s': must be GEMINI, OPENAI, or NOOP", p)
		}
	}
	if c.Trade.SignalThreshold <= 0 || c.Trade.SignalThreshold > 1 {
		return fmt.Errorf("trade.signal_threshold must be in (0,1], got %.2f", c.Trade.SignalThreshold)
	}
	if !strings.Contains(c.Trade.Pair, "/") {
		return fmt.Errorf("trade.pair must be of the form BASE/QUOTE, got '%s'", c.Trade.Pair)
	}
	if c.Alpha.MinScore < 0 {
		return fmt.Errorf("alpha.min_score cannot be negative, got %.2f", c.Alpha.MinScore)
	}
	if c.Feed.MaxPosts < 0 {
		return fmt.Errorf("feed.max_posts cannot be negative, got %d", c.Feed.MaxPosts)
	}
	return nil
}

// applyDefaults fills in values the YAML may omit.
func (c *Config) applyDefaults() {
	if c.Feed.Query == "" {
		c.Feed.Query = "ethereum"
	}
	if c.Feed.MaxPosts == 0 {
		c.Feed.MaxPosts = 15
	}
	if c.LLM.GeminiModel == "" {
		c.LLM.GeminiModel = "gemini-1.5-flash"
	}
	if c.LLM.OpenAIModel == "" {
		c.LLM.OpenAIModel = "gpt-4o-mini"
	}
	if c.LLM.MaxTokens == 0 {
		c.LLM.MaxTokens = 500
	}
	if c.LLM.TimeoutSeconds == 0 {
		c.LLM.TimeoutSeconds = 30
	}
	if c.LLM.RatePerSecond == 0 {
		c.LLM.RatePerSecond = 1
	}
	if c.Trade.Pair == "" {
		c.Trade.Pair = "ETH/USDC"
	}
	if c.Trade.Amount == "" {
		c.Trade.Amount = "0.1 ETH"
	}
	if c.Trade.SignalThreshold == 0 {
		c.Trade.SignalThreshold = 0.5
	}
	if c.Trade.BuyThresholdUSD == 0 {
		c.Trade.BuyThresholdUSD = 3000
	}
	if c.Trade.SellThresholdUSD == 0 {
		c.Trade.SellThresholdUSD = 3500
	}
	if c.Alpha.MinScore == 0 {
		c.Alpha.MinScore = 5
	}
	if c.Alpha.TopSignals == 0 {
		c.Alpha.TopSignals = 10
	}
	if c.Price.FallbackUSD == 0 {
		c.Price.FallbackUSD = 3000
	}
	if c.Price.TimeoutSeconds == 0 {
		c.Price.TimeoutSeconds = 10
	}
}

func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}
