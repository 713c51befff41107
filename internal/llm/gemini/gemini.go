package gemini

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"sentiment-trading-bot/internal/api"
	"sentiment-trading-bot/internal/sentiment"
	"sentiment-trading-bot/internal/store"
	"sentiment-trading-bot/internal/trace"
	"sentiment-trading-bot/internal/types"
)

// Provider calls the Google Generative Language API. It is the primary
// sentiment oracle.
type Provider struct {
	cfg    *store.Config
	client *api.Client
}

// New creates a Gemini-backed sentiment provider. Set GEMINI_API_ENDPOINT
// to point at a proxy or test server.
func New(cfg *store.Config) *Provider {
	endpoint := "https://generativelanguage.googleapis.com/v1beta"
	if ep := os.Getenv("GEMINI_API_ENDPOINT"); ep != "" {
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

func (p *Provider) Name() string { return "gemini" }

// ScoreMessage classifies text on the -1..1 message scale.
func (p *Provider) ScoreMessage(ctx context.Context, text string) (float64, error) {
	ctx, span := trace.StartSpan(ctx, "gemini-score-message")
	defer span.End()

	raw, err := p.complete(ctx, sentiment.MessagePrompt(text, p.cfg.Trade.Pair))
	if err != nil {
		return 0, err
	}
	return sentiment.ParseMessageScore(raw)
}

// AnalyzePost classifies one post on the structured 1-10 scale.
func (p *Provider) AnalyzePost(ctx context.Context, text string) (types.PostSentiment, error) {
	ctx, span := trace.StartSpan(ctx, "gemini-analyze-post")
	defer span.End()

	raw, err := p.complete(ctx, sentiment.PostPrompt(text))
	if err != nil {
		return types.PostSentiment{}, err
	}
	return sentiment.ParsePostSentiment(raw)
}

func (p *Provider) complete(ctx context.Context, prompt string) (string, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return "", errors.New("GEMINI_API_KEY missing")
	}

	body := map[string]any{
		"contents": []map[string]any{
			{"parts": []map[string]string{{"text": prompt}}},
		},
		"generationConfig": map[string]any{
			"temperature":     p.cfg.LLM.Temperature,
			"maxOutputTokens": p.cfg.LLM.MaxTokens,
		},
	}

	// Credential travels in a header so it never shows up in logged URLs
	// or transport errors.
	url := fmt.Sprintf("/models/%s:generateContent", p.cfg.LLM.GeminiModel)
	resp, err := p.client.POST(ctx, url, body, map[string]string{"x-goog-api-key": apiKey})
	if err != nil {
		return "", err
	}

	var r struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := resp.ParseJSON(&r); err != nil {
		return "", err
	}
	if len(r.Candidates) == 0 || len(r.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("gemini: no candidates in response")
	}

	return strings.TrimSpace(r.Candidates[0].Content.Parts[0].Text), nil
}
