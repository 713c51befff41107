package feed

import "sentiment-trading-bot/internal/types"

// Engagement weights. Retweets and quotes signal amplification, replies
// signal discussion, likes are the weakest endorsement.
const (
	retweetWeight = 2.0
	replyWeight   = 1.5
	likeWeight    = 1.0
	quoteWeight   = 2.0
)

// EngagementScore computes the weighted engagement score for a post's
// public metrics. Missing counters contribute zero.
func EngagementScore(m types.Metrics) float64 {
	return float64(m.Retweets)*retweetWeight +
		float64(m.Replies)*replyWeight +
		float64(m.Likes)*likeWeight +
		float64(m.Quotes)*quoteWeight
}
