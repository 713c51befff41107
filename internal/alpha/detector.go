// Package alpha scans sentiment-scored posts for lexical alpha signals
// and ranks the survivors by a composite alpha score.
package alpha

import (
	"sort"
	"strings"

	"sentiment-trading-bot/internal/types"
)

// Options controls detection thresholds.
type Options struct {
	// MinScore is the retention threshold. Posts whose composite alpha
	// score falls below it are dropped from the result.
	MinScore float64
	// TopSignals caps the number of aggregated signals in the summary.
	TopSignals int
}

// DefaultOptions returns the standard detection thresholds.
func DefaultOptions() Options {
	return Options{MinScore: 5, TopSignals: 10}
}

// SignalStat aggregates one lexical signal across the retained posts.
type SignalStat struct {
	Signal   string  `json:"signal"`
	Count    int     `json:"count"`
	AvgScore float64 `json:"avg_score"`
}

// Summary describes the retained posts in aggregate.
type Summary struct {
	Total              int                 `json:"total_alpha_signals"`
	HighConfidence     int                 `json:"high_confidence_alphas"`
	AverageAlpha       float64             `json:"average_alpha_score"`
	RiskDistribution   map[types.Level]int `json:"risk_distribution"`
	ImpactDistribution map[types.Level]int `json:"impact_distribution"`
	TopSignals         []SignalStat        `json:"top_alpha_signals"`
}

// Result is the output of a detection pass.
type Result struct {
	Posts   []types.AlphaPost `json:"alpha_posts"`
	Summary Summary           `json:"alpha_summary"`
}

// Detect filters scored posts down to candidate alpha posts, scores each
// against the phrase lexicon, and returns the retained posts sorted by
// alpha score descending (ties keep input order) plus an aggregate summary.
func Detect(posts []types.ScoredPost, opts Options) Result {
	if opts.MinScore == 0 {
		opts.MinScore = DefaultOptions().MinScore
	}
	if opts.TopSignals == 0 {
		opts.TopSignals = DefaultOptions().TopSignals
	}

	var retained []types.AlphaPost
	for _, p := range posts {
		if !eligible(p) {
			continue
		}
		ap := score(p)
		if ap.AlphaScore < opts.MinScore {
			continue
		}
		retained = append(retained, ap)
	}

	sort.SliceStable(retained, func(i, j int) bool {
		return retained[i].AlphaScore > retained[j].AlphaScore
	})

	return Result{
		Posts:   retained,
		Summary: summarize(retained, opts.TopSignals),
	}
}

// eligible keeps only bullish posts with a minimum sentiment score and
// confidence. Bearish and neutral posts never produce alpha.
func eligible(p types.ScoredPost) bool {
	return p.Sentiment.Label == types.Bullish &&
		p.Sentiment.Score >= 2 &&
		p.Sentiment.Confidence >= 0.3
}

func score(p types.ScoredPost) types.AlphaPost {
	text := strings.ToLower(p.Text)

	// Start from the sentiment score, then add lexicon hits.
	alphaScore := p.Sentiment.Score
	var matched []string
	for _, s := range lexicon {
		if strings.Contains(text, s.Phrase) {
			alphaScore += s.Weight
			matched = append(matched, s.Phrase)
		}
	}

	// Engagement boost, capped so a viral post cannot dominate the lexicon.
	if p.EngagementScore > 2 {
		alphaScore += min(p.EngagementScore*0.5, 3)
	}
	alphaScore += p.Sentiment.Confidence * 2

	risk := types.LevelMedium
	if containsAny(text, riskKeywords) {
		risk = types.LevelHigh
	} else if alphaScore > 8 && p.Sentiment.Confidence > 0.7 {
		risk = types.LevelLow
	}

	impact := types.LevelMedium
	if alphaScore > 10 && p.EngagementScore > 3 {
		impact = types.LevelHigh
	} else if alphaScore < 5 {
		impact = types.LevelLow
	}

	return types.AlphaPost{
		ScoredPost:      p,
		AlphaScore:      max(0, alphaScore),
		AlphaSignals:    matched,
		RiskLevel:       risk,
		PotentialImpact: impact,
	}
}

func containsAny(text string, phrases []string) bool {
	for _, ph := range phrases {
		if strings.Contains(text, ph) {
			return true
		}
	}
	return false
}

func summarize(posts []types.AlphaPost, topN int) Summary {
	s := Summary{
		RiskDistribution:   map[types.Level]int{types.LevelLow: 0, types.LevelMedium: 0, types.LevelHigh: 0},
		ImpactDistribution: map[types.Level]int{types.LevelLow: 0, types.LevelMedium: 0, types.LevelHigh: 0},
		TopSignals:         []SignalStat{},
	}
	s.Total = len(posts)

	var total float64
	for _, p := range posts {
		total += p.AlphaScore
		if p.Sentiment.Confidence > 0.7 {
			s.HighConfidence++
		}
		s.RiskDistribution[p.RiskLevel]++
		s.ImpactDistribution[p.PotentialImpact]++
	}
	if len(posts) > 0 {
		s.AverageAlpha = total / float64(len(posts))
	}
	s.TopSignals = topSignals(posts, topN)
	return s
}

// topSignals ranks lexical signals across retained posts by occurrence
// count; ties break toward the higher average alpha score.
func topSignals(posts []types.AlphaPost, topN int) []SignalStat {
	type agg struct {
		count int
		total float64
	}
	stats := make(map[string]*agg)
	var order []string
	for _, p := range posts {
		for _, sig := range p.AlphaSignals {
			a, ok := stats[sig]
			if !ok {
				a = &agg{}
				stats[sig] = a
				order = append(order, sig)
			}
			a.count++
			a.total += p.AlphaScore
		}
	}

	out := make([]SignalStat, 0, len(order))
	for _, sig := range order {
		a := stats[sig]
		out = append(out, SignalStat{
			Signal:   sig,
			Count:    a.count,
			AvgScore: a.total / float64(a.count),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].AvgScore > out[j].AvgScore
	})

	if len(out) > topN {
		out = out[:topN]
	}
	return out
}
