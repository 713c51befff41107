package engine

import (
	"context"
	"fmt"

	"sentiment-trading-bot/internal/alpha"
	"sentiment-trading-bot/internal/feed"
	"sentiment-trading-bot/internal/interfaces"
	"sentiment-trading-bot/internal/logger"
	"sentiment-trading-bot/internal/types"
)

// FeedAnalysis is the result of scoring a feed and scanning it for alpha.
type FeedAnalysis struct {
	Query string             `json:"query"`
	Posts []types.ScoredPost `json:"scored_posts"`
	Alpha alpha.Result       `json:"alpha"`
}

// AnalyzeFeed fetches posts for the query, scores each for sentiment and
// engagement, then runs alpha detection over the survivors. Individual
// posts whose classification fails entirely are skipped; the operation
// fails only when the feed itself cannot be fetched or no post could be
// scored at all.
func (e *Engine) AnalyzeFeed(ctx context.Context, src interfaces.Source, query string, limit int) (*FeedAnalysis, error) {
	timer := logger.StartOperation(ctx, "engine.analyze_feed")
	ctx = timer.GetContext()

	posts, err := src.Fetch(ctx, query, limit)
	if err != nil {
		timer.EndWithError(err)
		return nil, fmt.Errorf("feed fetch failed: %w", err)
	}

	scored := make([]types.ScoredPost, 0, len(posts))
	var lastErr error
	for _, p := range posts {
		s, provider, err := e.classifier.ScorePost(ctx, p.Text)
		if err != nil {
			lastErr = err
			logger.Warn(ctx, "Skipping unscorable post", "post_id", p.ID, "error", err.Error())
			continue
		}
		scored = append(scored, types.ScoredPost{
			Post:            p,
			Sentiment:       s,
			EngagementScore: feed.EngagementScore(p.Metrics),
		})
		logger.Debug(ctx, "Post scored",
			"post_id", p.ID,
			"provider", provider,
			"label", s.Label,
			"score", s.Score,
		)
	}

	if len(scored) == 0 && lastErr != nil {
		err := fmt.Errorf("no posts could be scored: %w", lastErr)
		timer.EndWithError(err)
		return nil, err
	}

	result := alpha.Detect(scored, alpha.Options{
		MinScore:   e.cfg.Alpha.MinScore,
		TopSignals: e.cfg.Alpha.TopSignals,
	})
	for _, ap := range result.Posts {
		logger.Signal(ctx, ap.ID, ap.AlphaScore, string(ap.RiskLevel), string(ap.PotentialImpact),
			"signals", len(ap.AlphaSignals))
	}

	logger.Info(ctx, "Feed analysis complete",
		"query", query,
		"fetched", len(posts),
		"scored", len(scored),
		"alpha_posts", len(result.Posts),
	)
	timer.End()
	return &FeedAnalysis{Query: query, Posts: scored, Alpha: result}, nil
}
