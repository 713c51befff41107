package notify

import (
	"fmt"
	"strings"

	"sentiment-trading-bot/internal/alpha"
	"sentiment-trading-bot/internal/types"
)

// AlphaSummary formats an alpha detection summary for display.
func AlphaSummary(coin string, s alpha.Summary) string {
	if s.Total == 0 {
		return fmt.Sprintf("**Alpha Signal Analysis for %s**\n\n**No significant alpha signals detected**\n\n*Consider monitoring for longer periods or different keywords.*",
			strings.ToUpper(coin))
	}

	top := make([]string, 0, 5)
	for i, stat := range s.TopSignals {
		if i == 5 {
			break
		}
		top = append(top, stat.Signal)
	}

	return fmt.Sprintf(
		"**Alpha Signal Analysis for %s**\n\n"+
			"**High-Confidence Alphas:** %d signals\n"+
			"**Average Alpha Score:** %.1f\n"+
			"**Risk Distribution:** Low: %d, Medium: %d, High: %d\n"+
			"**Impact Distribution:** Low: %d, Medium: %d, High: %d\n"+
			"**Top Alpha Signals:** %s\n\n"+
			"*Alpha signals detected from social media analysis.*",
		strings.ToUpper(coin),
		s.HighConfidence,
		s.AverageAlpha,
		s.RiskDistribution[types.LevelLow], s.RiskDistribution[types.LevelMedium], s.RiskDistribution[types.LevelHigh],
		s.ImpactDistribution[types.LevelLow], s.ImpactDistribution[types.LevelMedium], s.ImpactDistribution[types.LevelHigh],
		strings.Join(top, ", "),
	)
}
