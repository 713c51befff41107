package engine

import (
	"context"
	"errors"
	"strings"
	"testing"

	"sentiment-trading-bot/internal/feed"
	"sentiment-trading-bot/internal/types"
)

type failingSource struct{}

func (failingSource) Fetch(context.Context, string, int) ([]types.Post, error) {
	return nil, errors.New("mirror unreachable")
}

// labelByText classifies posts bullish or bearish from their wording.
func labelByText() *stubProvider {
	return &stubProvider{
		name:  "stub",
		score: func(string) (float64, error) { return 0, nil },
		analyze: func(text string) (types.PostSentiment, error) {
			lower := strings.ToLower(text)
			switch {
			case strings.Contains(lower, "scam"):
				return types.PostSentiment{Label: types.Bearish, Score: 2, Confidence: 0.9}, nil
			case strings.Contains(lower, "bullish") || strings.Contains(lower, "adoption") || strings.Contains(lower, "accumulation") || strings.Contains(lower, "viral"):
				return types.PostSentiment{Label: types.Bullish, Score: 8, Confidence: 0.8}, nil
			default:
				return types.PostSentiment{Label: types.Neutral, Score: 5, Confidence: 0.5}, nil
			}
		},
	}
}

func TestAnalyzeFeed(t *testing.T) {
	e := newTestEngine(labelByText())
	src := feed.NewStaticSource()

	analysis, err := e.AnalyzeFeed(context.Background(), src, "", 0)
	if err != nil {
		t.Fatalf("AnalyzeFeed: %v", err)
	}
	if len(analysis.Posts) != 5 {
		t.Fatalf("scored posts = %d, want all 5 samples", len(analysis.Posts))
	}

	// Engagement carries over from the post metrics.
	first := analysis.Posts[0]
	if want := feed.EngagementScore(first.Metrics); first.EngagementScore != want {
		t.Errorf("engagement = %v, want %v", first.EngagementScore, want)
	}

	// The scam warning is bearish and must never surface as alpha.
	for _, ap := range analysis.Alpha.Posts {
		if strings.Contains(strings.ToLower(ap.Text), "scam") {
			t.Errorf("bearish fraud post retained as alpha: %s", ap.ID)
		}
	}
	if len(analysis.Alpha.Posts) == 0 {
		t.Error("expected bullish sample posts to produce alpha")
	}
	if analysis.Alpha.Summary.Total != len(analysis.Alpha.Posts) {
		t.Errorf("summary total = %d, want %d", analysis.Alpha.Summary.Total, len(analysis.Alpha.Posts))
	}
}

func TestAnalyzeFeedFetchFailure(t *testing.T) {
	e := newTestEngine(labelByText())

	if _, err := e.AnalyzeFeed(context.Background(), failingSource{}, "ethereum", 5); err == nil {
		t.Fatal("expected error when the feed cannot be fetched")
	}
}

func TestAnalyzeFeedSkipsUnscorablePosts(t *testing.T) {
	calls := 0
	flaky := &stubProvider{
		name:  "flaky",
		score: func(string) (float64, error) { return 0, nil },
		analyze: func(text string) (types.PostSentiment, error) {
			calls++
			if calls == 1 {
				return types.PostSentiment{}, errors.New("timeout")
			}
			return types.PostSentiment{Label: types.Bullish, Score: 7, Confidence: 0.6}, nil
		},
	}
	e := newTestEngine(flaky)
	src := feed.NewStaticSource(
		types.Post{ID: "1", Text: "first"},
		types.Post{ID: "2", Text: "second"},
	)

	analysis, err := e.AnalyzeFeed(context.Background(), src, "", 0)
	if err != nil {
		t.Fatalf("AnalyzeFeed: %v", err)
	}
	if len(analysis.Posts) != 1 {
		t.Fatalf("scored posts = %d, want 1 (failure skipped)", len(analysis.Posts))
	}
	if analysis.Posts[0].ID != "2" {
		t.Errorf("surviving post = %s, want 2", analysis.Posts[0].ID)
	}
}

func TestAnalyzeFeedAllUnscorable(t *testing.T) {
	dead := &stubProvider{
		name:  "dead",
		score: func(string) (float64, error) { return 0, nil },
		analyze: func(string) (types.PostSentiment, error) {
			return types.PostSentiment{}, errors.New("connection refused")
		},
	}
	e := newTestEngine(dead)
	src := feed.NewStaticSource(types.Post{ID: "1", Text: "only post"})

	if _, err := e.AnalyzeFeed(context.Background(), src, "", 0); err == nil {
		t.Fatal("expected error when no post can be scored")
	}
}
