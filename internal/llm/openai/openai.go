package openai

import (
	"context"
	"errors"
	"os"
	"strings"
	"time"

	"sentiment-trading-bot/internal/api"
	"sentiment-trading-bot/internal/sentiment"
	"sentiment-trading-bot/internal/store"
	"sentiment-trading-bot/internal/trace"
	"sentiment-trading-bot/internal/types"
)

const systemPrompt = "You are a crypto trading sentiment analyzer. Follow the response format instructions exactly."

// Provider calls the OpenAI chat completions API. It is the fallback
// sentiment oracle.
type Provider struct {
	cfg    *store.Config
	client *api.Client
}

// New creates an OpenAI-backed sentiment provider. Set OPENAI_API_ENDPOINT
// to point at a proxy or test server.
func New(cfg *store.Config) *Provider {
	endpoint := "https://api.openai.com/v1"
	if ep := os.Getenv("OPENAI_API_ENDPOINT"); ep != "" {
		endpoint = ep
	}
	return &Provider{
		cfg: cfg,
		client: api.NewClient(
			api.WithBaseURL(endpoint),
			api.WithTimeout(time.Duration(cfg.LLM.TimeoutSeconds)*time.Second),
			api.WithLogging(true),
		),
	}
}

func (p *Provider) Name() string { return "openai" }

// ScoreMessage classifies text on the -1..1 message scale.
func (p *Provider) ScoreMessage(ctx context.Context, text string) (float64, error) {
	ctx, span := trace.StartSpan(ctx, "openai-score-message")
	defer span.End()

	raw, err := p.complete(ctx, sentiment.MessagePrompt(text, p.cfg.Trade.Pair))
	if err != nil {
		return 0, err
	}
	return sentiment.ParseMessageScore(raw)
}

// AnalyzePost classifies one post on the structured 1-10 scale.
func (p *Provider) AnalyzePost(ctx context.Context, text string) (types.PostSentiment, error) {
	ctx, span := trace.StartSpan(ctx, "openai-analyze-post")
	defer span.End()

	raw, err := p.complete(ctx, sentiment.PostPrompt(text))
	if err != nil {
		return types.PostSentiment{}, err
	}
	return sentiment.ParsePostSentiment(raw)
}

func (p *Provider) complete(ctx context.Context, prompt string) (string, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return "", errors.New("OPENAI_API_KEY missing")
	}

	body := map[string]any{
		"model": p.cfg.LLM.OpenAIModel,
		"messages": []map[string]string{
			{"role": "system", "content": systemPrompt},
			{"role": "user", "content": prompt},
		},
		"temperature": p.cfg.LLM.Temperature,
		"max_tokens":  p.cfg.LLM.MaxTokens,
	}

	resp, err := p.client.POST(ctx, "/chat/completions", body, map[string]string{
		"Authorization": "Bearer " + apiKey,
	})
	if err != nil {
		return "", err
	}

	var r struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := resp.ParseJSON(&r); err != nil {
		return "", err
	}
	if len(r.Choices) == 0 {
		return "", errors.New("openai: no choices in response")
	}

	return strings.TrimSpace(r.Choices[0].Message.Content), nil
}
