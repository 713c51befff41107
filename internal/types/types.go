package types

// SentimentLabel classifies the directional lean of a single post.
type SentimentLabel string

const (
	Bullish SentimentLabel = "bullish"
	Bearish SentimentLabel = "bearish"
	Neutral SentimentLabel = "neutral"
)

// Level buckets risk and impact classifications.
type Level string

const (
	LevelLow    Level = "low"
	LevelMedium Level = "medium"
	LevelHigh   Level = "high"
)

// Metrics holds the public engagement counters attached to a post.
type Metrics struct {
	Retweets int `json:"retweet_count"`
	Replies  int `json:"reply_count"`
	Likes    int `json:"like_count"`
	Quotes   int `json:"quote_count"`
}

// Post is one raw text unit delivered by a text-source provider.
type Post struct {
	ID        string  `json:"id"`
	Text      string  `json:"text"`
	Author    string  `json:"author,omitempty"`
	CreatedAt string  `json:"created_at,omitempty"`
	Source    string  `json:"source,omitempty"`
	Metrics   Metrics `json:"public_metrics"`
}

// PostSentiment is the structured oracle output for one post.
// Score is on the 1-10 per-post scale; Confidence is 0-1.
type PostSentiment struct {
	Label      SentimentLabel `json:"sentiment"`
	Score      float64        `json:"score"`
	Confidence float64        `json:"confidence"`
	Keywords   []string       `json:"keywords"`
}

// ScoredPost is a post with its sentiment classification and engagement
// weight attached. Immutable once produced.
type ScoredPost struct {
	Post
	Sentiment       PostSentiment `json:"sentiment"`
	EngagementScore float64       `json:"engagement_score"`
}

// AlphaPost extends a ScoredPost with the lexical alpha annotation.
type AlphaPost struct {
	ScoredPost
	AlphaScore      float64  `json:"alpha_score"`
	AlphaSignals    []string `json:"alpha_signals"`
	RiskLevel       Level    `json:"risk_level"`
	PotentialImpact Level    `json:"potential_impact"`
}

// TradePlan is the discrete, policy-bounded trade decision. Created once
// per qualifying input and never mutated.
type TradePlan struct {
	ID             string  `json:"id"`
	Action         string  `json:"action"` // "buy" or "sell"
	Pair           string  `json:"token_pair"`
	Amount         string  `json:"amount"`
	PriceThreshold string  `json:"price_threshold"`
	SentimentScore float64 `json:"sentiment_score"` // -1..1 message scale
	Source         string  `json:"source"`
	Timestamp      string  `json:"timestamp"`
	Provider       string  `json:"provider_used"`
	PriceUSD       float64 `json:"price_usd,omitempty"` // optional enrichment
}

// Outcome tags the result of one batch item.
type Outcome string

const (
	OutcomeSignal   Outcome = "signal"
	OutcomeNoSignal Outcome = "no-signal"
	OutcomeError    Outcome = "error"
)

// BatchResult records the outcome of one item of a batch, in input order.
type BatchResult struct {
	Post    Post       `json:"post"`
	Plan    *TradePlan `json:"trade_plan,omitempty"`
	Err     string     `json:"error,omitempty"`
	Outcome Outcome    `json:"outcome"`
}

// BatchReport aggregates a full batch run. Results preserve input order.
type BatchReport struct {
	BatchID       string        `json:"batch_id"`
	TotalPosts    int           `json:"total_posts"`
	StrongSignals int           `json:"strong_signals"`
	Results       []BatchResult `json:"results"`
}
