package alpha

import (
	"math"
	"testing"

	"sentiment-trading-bot/internal/types"
)

func bullishPost(id, text string, score, confidence, engagement float64) types.ScoredPost {
	return types.ScoredPost{
		Post: types.Post{ID: id, Text: text},
		Sentiment: types.PostSentiment{
			Label:      types.Bullish,
			Score:      score,
			Confidence: confidence,
		},
		EngagementScore: engagement,
	}
}

func TestDetectCompositeScore(t *testing.T) {
	post := bullishPost("1", "ETH institutional adoption with whale accumulation ahead of a breakout", 8, 0.8, 5)

	res := Detect([]types.ScoredPost{post}, DefaultOptions())
	if len(res.Posts) != 1 {
		t.Fatalf("expected 1 retained post, got %d", len(res.Posts))
	}

	got := res.Posts[0]
	// sentiment 8 + institutional 3 + adoption 4 + whale 2 + accumulation 3
	// + breakout 3 + engagement bonus 2.5 + confidence 1.6
	want := 27.1
	if math.Abs(got.AlphaScore-want) > 1e-9 {
		t.Errorf("alpha score = %v, want %v", got.AlphaScore, want)
	}
	if got.RiskLevel != types.LevelLow {
		t.Errorf("risk = %v, want low", got.RiskLevel)
	}
	if got.PotentialImpact != types.LevelHigh {
		t.Errorf("impact = %v, want high", got.PotentialImpact)
	}
	if len(got.AlphaSignals) != 5 {
		t.Errorf("signals = %v, want 5 matches", got.AlphaSignals)
	}
}

func TestDetectEligibility(t *testing.T) {
	posts := []types.ScoredPost{
		{
			Post:            types.Post{ID: "bearish", Text: "breakout adoption institutional"},
			Sentiment:       types.PostSentiment{Label: types.Bearish, Score: 9, Confidence: 0.9},
			EngagementScore: 10,
		},
		{
			Post:            types.Post{ID: "low-conf", Text: "breakout adoption institutional"},
			Sentiment:       types.PostSentiment{Label: types.Bullish, Score: 9, Confidence: 0.2},
			EngagementScore: 10,
		},
		{
			Post:            types.Post{ID: "low-score", Text: "breakout adoption institutional"},
			Sentiment:       types.PostSentiment{Label: types.Bullish, Score: 1, Confidence: 0.9},
			EngagementScore: 10,
		},
	}

	res := Detect(posts, DefaultOptions())
	if len(res.Posts) != 0 {
		t.Fatalf("expected no retained posts, got %v", res.Posts)
	}
}

func TestDetectClampsNegativeScores(t *testing.T) {
	// Fraud language outweighs the positives; the composite would be
	// negative without clamping.
	post := bullishPost("1", "total scam rug ponzi fake manipulation pump and dump", 2, 0.3, 0)

	res := Detect([]types.ScoredPost{post}, Options{MinScore: -1, TopSignals: 10})
	if len(res.Posts) != 1 {
		t.Fatalf("expected 1 retained post, got %d", len(res.Posts))
	}
	if got := res.Posts[0].AlphaScore; got != 0 {
		t.Errorf("alpha score = %v, want 0 after clamping", got)
	}
	if res.Posts[0].RiskLevel != types.LevelHigh {
		t.Errorf("risk = %v, want high for fraud language", res.Posts[0].RiskLevel)
	}
	if res.Posts[0].PotentialImpact != types.LevelLow {
		t.Errorf("impact = %v, want low", res.Posts[0].PotentialImpact)
	}
}

func TestDetectRetentionAndOrdering(t *testing.T) {
	posts := []types.ScoredPost{
		bullishPost("weak", "mild support levels", 2, 0.3, 0),
		bullishPost("strong", "viral bull run momentum breakout", 8, 0.9, 10),
		bullishPost("mid", "partnership milestone on the roadmap", 5, 0.6, 0),
	}

	res := Detect(posts, DefaultOptions())
	if len(res.Posts) != 2 {
		t.Fatalf("expected 2 retained posts, got %d", len(res.Posts))
	}
	if res.Posts[0].ID != "strong" || res.Posts[1].ID != "mid" {
		t.Errorf("order = [%s %s], want [strong mid]", res.Posts[0].ID, res.Posts[1].ID)
	}
	for i := 1; i < len(res.Posts); i++ {
		if res.Posts[i].AlphaScore > res.Posts[i-1].AlphaScore {
			t.Errorf("posts not sorted descending at %d", i)
		}
	}
}

func TestDetectStableTies(t *testing.T) {
	a := bullishPost("first", "breakout coming", 5, 0.5, 0)
	b := bullishPost("second", "breakout coming", 5, 0.5, 0)

	res := Detect([]types.ScoredPost{a, b}, DefaultOptions())
	if len(res.Posts) != 2 {
		t.Fatalf("expected 2 retained posts, got %d", len(res.Posts))
	}
	if res.Posts[0].ID != "first" || res.Posts[1].ID != "second" {
		t.Errorf("tie order = [%s %s], want input order", res.Posts[0].ID, res.Posts[1].ID)
	}
}

func TestDetectEmptyInput(t *testing.T) {
	res := Detect(nil, DefaultOptions())
	if len(res.Posts) != 0 {
		t.Fatalf("expected no posts, got %d", len(res.Posts))
	}
	s := res.Summary
	if s.Total != 0 || s.HighConfidence != 0 || s.AverageAlpha != 0 {
		t.Errorf("summary = %+v, want zeroes", s)
	}
	if len(s.TopSignals) != 0 {
		t.Errorf("top signals = %v, want empty", s.TopSignals)
	}
	for _, lvl := range []types.Level{types.LevelLow, types.LevelMedium, types.LevelHigh} {
		if s.RiskDistribution[lvl] != 0 || s.ImpactDistribution[lvl] != 0 {
			t.Errorf("distribution for %v not zero", lvl)
		}
	}
}

func TestSummaryTopSignals(t *testing.T) {
	posts := []types.ScoredPost{
		bullishPost("1", "breakout with momentum", 8, 0.8, 0),
		bullishPost("2", "another breakout setup", 6, 0.6, 0),
		bullishPost("3", "momentum only", 7, 0.8, 0),
	}

	res := Detect(posts, DefaultOptions())
	top := res.Summary.TopSignals
	if len(top) != 2 {
		t.Fatalf("top signals = %v, want 2 entries", top)
	}
	// breakout and momentum both appear twice; momentum's posts carry the
	// higher average alpha so it wins the tie.
	for _, stat := range top {
		if stat.Count != 2 {
			t.Errorf("signal %s count = %d, want 2", stat.Signal, stat.Count)
		}
	}
	if top[0].Signal != "momentum" {
		t.Errorf("top signal = %s, want momentum on avg-score tiebreak", top[0].Signal)
	}
}

func TestSummaryDistributions(t *testing.T) {
	posts := []types.ScoredPost{
		bullishPost("low-risk", "viral bull run momentum breakout", 8, 0.9, 10),
		bullishPost("mid-risk", "partnership milestone on the roadmap", 5, 0.5, 0),
	}

	res := Detect(posts, DefaultOptions())
	s := res.Summary
	if s.Total != 2 {
		t.Fatalf("total = %d, want 2", s.Total)
	}
	if s.HighConfidence != 1 {
		t.Errorf("high confidence = %d, want 1", s.HighConfidence)
	}
	if s.RiskDistribution[types.LevelLow] != 1 || s.RiskDistribution[types.LevelMedium] != 1 {
		t.Errorf("risk distribution = %v", s.RiskDistribution)
	}
	if s.AverageAlpha <= 0 {
		t.Errorf("average alpha = %v, want positive", s.AverageAlpha)
	}
}
