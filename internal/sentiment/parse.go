package sentiment

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"sentiment-trading-bot/internal/types"
)

// ParseMessageScore parses a bare numeric oracle answer and validates it
// against the -1..1 message scale. Anything non-numeric or out of range is
// ErrInvalidResponse; the two scales are validated independently and must
// never share bounds.
func ParseMessageScore(raw string) (float64, error) {
	t := strings.TrimSpace(raw)
	if t == "" {
		return 0, fmt.Errorf("%w: empty response", ErrInvalidResponse)
	}
	// Models occasionally wrap the number in prose; take the first token
	// that parses.
	for _, field := range strings.Fields(t) {
		field = strings.Trim(field, "\"'`.,:;()")
		score, err := strconv.ParseFloat(field, 64)
		if err != nil {
			continue
		}
		if math.IsNaN(score) || score < -1 || score > 1 {
			return 0, fmt.Errorf("%w: score %v outside [-1,1]", ErrInvalidResponse, score)
		}
		return score, nil
	}
	return 0, fmt.Errorf("%w: no numeric token in %q", ErrInvalidResponse, preview(t))
}

// NeutralPostSentiment is the substitute used when the per-post oracle
// output cannot be trusted.
func NeutralPostSentiment() types.PostSentiment {
	return types.PostSentiment{Label: types.Neutral, Score: 5, Confidence: 0.3}
}

// ParsePostSentiment extracts the first JSON object from free-form model
// output and validates it against the 1-10 per-post scale.
func ParsePostSentiment(raw string) (types.PostSentiment, error) {
	t := strings.TrimSpace(raw)

	start := strings.Index(t, "{")
	end := strings.LastIndex(t, "}")
	if start < 0 || end <= start {
		return types.PostSentiment{}, fmt.Errorf("%w: no JSON object in %q", ErrInvalidResponse, preview(t))
	}

	var s types.PostSentiment
	if err := json.Unmarshal([]byte(t[start:end+1]), &s); err != nil {
		return types.PostSentiment{}, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	s.Label = types.SentimentLabel(strings.ToLower(strings.TrimSpace(string(s.Label))))
	switch s.Label {
	case types.Bullish, types.Bearish, types.Neutral:
	case "":
		s.Label = types.Neutral
	default:
		return types.PostSentiment{}, fmt.Errorf("%w: unknown sentiment label %q", ErrInvalidResponse, s.Label)
	}

	if s.Score == 0 {
		s.Score = 5
	}
	if s.Score < 1 || s.Score > 10 {
		return types.PostSentiment{}, fmt.Errorf("%w: score %v outside [1,10]", ErrInvalidResponse, s.Score)
	}
	if s.Confidence == 0 {
		s.Confidence = 0.5
	}
	if s.Confidence < 0 || s.Confidence > 1 {
		return types.PostSentiment{}, fmt.Errorf("%w: confidence %v outside [0,1]", ErrInvalidResponse, s.Confidence)
	}

	return s, nil
}

func preview(s string) string {
	if len(s) > 80 {
		return s[:80] + "..."
	}
	return s
}
