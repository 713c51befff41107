package feed

import (
	"context"
	"strings"

	"sentiment-trading-bot/internal/interfaces"
	"sentiment-trading-bot/internal/logger"
	"sentiment-trading-bot/internal/types"
)

// StaticSource serves a fixed set of posts. It backs dry runs and local
// development where hitting a live mirror is undesirable.
type StaticSource struct {
	posts []types.Post
}

var _ interfaces.Source = (*StaticSource)(nil)

// NewStaticSource returns a source over the given posts. With no posts it
// falls back to a built-in sample set.
func NewStaticSource(posts ...types.Post) *StaticSource {
	if len(posts) == 0 {
		posts = samplePosts()
	}
	return &StaticSource{posts: posts}
}

// Fetch returns up to limit posts whose text mentions the query
// (case-insensitive). An empty query matches everything.
func (s *StaticSource) Fetch(ctx context.Context, query string, limit int) ([]types.Post, error) {
	q := strings.ToLower(query)
	out := make([]types.Post, 0, len(s.posts))
	for _, p := range s.posts {
		if q != "" && !strings.Contains(strings.ToLower(p.Text), q) {
			continue
		}
		out = append(out, p)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	logger.Debug(ctx, "Static source fetch", "query", query, "matched", len(out))
	return out, nil
}

func samplePosts() []types.Post {
	return []types.Post{
		{
			ID:        "1",
			Text:      "ETH looking bullish! Institutional adoption is growing rapidly. This is just the beginning of the bull run!",
			Author:    "user1",
			CreatedAt: "2024-01-15T10:00:00Z",
			Source:    "twitter",
			Metrics:   types.Metrics{Retweets: 150, Replies: 45, Likes: 1200, Quotes: 30},
		},
		{
			ID:        "2",
			Text:      "Bitcoin showing strong support at 40k. Volume spike indicates accumulation phase. Whales are buying!",
			Author:    "user2",
			CreatedAt: "2024-01-15T09:30:00Z",
			Source:    "twitter",
			Metrics:   types.Metrics{Retweets: 89, Replies: 23, Likes: 567, Quotes: 12},
		},
		{
			ID:        "3",
			Text:      "Solana ecosystem is exploding! New partnerships and adoption metrics are off the charts. This is viral growth!",
			Author:    "user3",
			CreatedAt: "2024-01-15T09:00:00Z",
			Source:    "twitter",
			Metrics:   types.Metrics{Retweets: 234, Replies: 67, Likes: 1890, Quotes: 45},
		},
		{
			ID:        "4",
			Text:      "Be careful with this new token. Looks like a potential scam. No team info, no audit, red flags everywhere!",
			Author:    "user4",
			CreatedAt: "2024-01-15T08:45:00Z",
			Source:    "twitter",
			Metrics:   types.Metrics{Retweets: 12, Replies: 8, Likes: 45, Quotes: 3},
		},
		{
			ID:        "5",
			Text:      "USDC adoption continues to grow. More merchants accepting stablecoins. This is the future of payments!",
			Author:    "user5",
			CreatedAt: "2024-01-15T08:30:00Z",
			Source:    "twitter",
			Metrics:   types.Metrics{Retweets: 67, Replies: 19, Likes: 432, Quotes: 8},
		},
	}
}
