package sentiment

import (
	"context"
	"errors"
	"time"

	"golang.org/x/time/rate"

	"sentiment-trading-bot/internal/interfaces"
	"sentiment-trading-bot/internal/logger"
	"sentiment-trading-bot/internal/trace"
	"sentiment-trading-bot/internal/types"
)

// Classifier turns raw text into sentiment judgments by trying an ordered
// list of oracle providers until one returns a usable result. Provider
// configuration is explicit at construction; there is no global state.
type Classifier struct {
	providers []interfaces.Provider
	limiter   *rate.Limiter
	timeout   time.Duration
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithTimeout bounds each individual provider call. A call that exceeds
// the bound counts as a provider failure and triggers failover.
func WithTimeout(d time.Duration) Option {
	return func(c *Classifier) { c.timeout = d }
}

// WithRateLimit caps oracle calls per second on the per-post path.
func WithRateLimit(perSecond float64) Option {
	return func(c *Classifier) {
		if perSecond > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
		}
	}
}

// NewClassifier builds a classifier over the given failover chain.
func NewClassifier(providers []interfaces.Provider, opts ...Option) *Classifier {
	c := &Classifier{
		providers: providers,
		timeout:   30 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// MessageScore classifies text on the -1..1 message scale. It returns the
// score and the name of the provider that produced it. When every provider
// fails the error is ErrUnavailable; callers treat that as "no signal".
func (c *Classifier) MessageScore(ctx context.Context, text string) (float64, string, error) {
	ctx, span := trace.StartSpan(ctx, "sentiment.MessageScore")
	defer span.End()

	if len(c.providers) == 0 {
		return 0, "", ErrUnavailable
	}

	var lastErr error
	for _, p := range c.providers {
		score, err := c.scoreWith(ctx, p, text)
		if err != nil {
			logger.Warn(ctx, "Sentiment provider failed, trying next", "provider", p.Name(), "error", err)
			lastErr = err
			continue
		}
		logger.Debug(ctx, "Message sentiment scored", "provider", p.Name(), "score", score)
		return score, p.Name(), nil
	}

	return 0, "", errors.Join(ErrUnavailable, lastErr)
}

func (c *Classifier) scoreWith(ctx context.Context, p interfaces.Provider, text string) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return p.ScoreMessage(ctx, text)
}

// ScorePost classifies one post on the structured 1-10 scale. A provider
// that answers with malformed or out-of-range output is recovered locally:
// the next provider is tried, and if none gives a clean answer but at
// least one responded, the neutral default is substituted. Only total
// provider unavailability surfaces as ErrUnavailable.
func (c *Classifier) ScorePost(ctx context.Context, text string) (types.PostSentiment, string, error) {
	ctx, span := trace.StartSpan(ctx, "sentiment.ScorePost")
	defer span.End()

	if len(c.providers) == 0 {
		return types.PostSentiment{}, "", ErrUnavailable
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return types.PostSentiment{}, "", errors.Join(ErrUnavailable, err)
		}
	}

	var lastErr error
	sawResponse := ""
	for _, p := range c.providers {
		s, err := c.analyzeWith(ctx, p, text)
		if err != nil {
			logger.Warn(ctx, "Post sentiment provider failed, trying next", "provider", p.Name(), "error", err)
			if errors.Is(err, ErrInvalidResponse) {
				sawResponse = p.Name()
			}
			lastErr = err
			continue
		}
		return s, p.Name(), nil
	}

	// A provider answered but the payload was unusable: substitute the
	// neutral default rather than dropping the post.
	if sawResponse != "" {
		logger.Warn(ctx, "All providers returned invalid output, using neutral default", "provider", sawResponse)
		return NeutralPostSentiment(), sawResponse, nil
	}

	return types.PostSentiment{}, "", errors.Join(ErrUnavailable, lastErr)
}

func (c *Classifier) analyzeWith(ctx context.Context, p interfaces.Provider, text string) (types.PostSentiment, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return p.AnalyzePost(ctx, text)
}
