// Package price provides spot price lookups used to enrich trade plans.
package price

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"sentiment-trading-bot/internal/api"
	"sentiment-trading-bot/internal/logger"
)

const defaultEndpoint = "https://api.coingecko.com/api/v3"

// Lookup resolves base-asset spot prices in USD via CoinGecko, falling
// back to a configured constant when the API is unreachable. Price
// failures must never block a trade decision.
type Lookup struct {
	client      *api.Client
	fallbackUSD float64
}

// NewLookup creates a price lookup. fallbackUSD is returned whenever the
// live query fails. COINGECKO_API_ENDPOINT overrides the API base URL.
func NewLookup(fallbackUSD float64, timeout time.Duration) *Lookup {
	endpoint := defaultEndpoint
	if v := os.Getenv("COINGECKO_API_ENDPOINT"); v != "" {
		endpoint = v
	}
	return &Lookup{
		client: api.NewClient(
			api.WithBaseURL(endpoint),
			api.WithTimeout(timeout),
			api.WithLogging(true),
		),
		fallbackUSD: fallbackUSD,
	}
}

// coinIDs maps common base-asset symbols to CoinGecko coin IDs.
var coinIDs = map[string]string{
	"eth":  "ethereum",
	"btc":  "bitcoin",
	"sol":  "solana",
	"usdc": "usd-coin",
}

// SpotUSD returns the USD spot price for the base asset of a trading
// pair such as "ETH/USDC". On any failure it logs and returns the
// fallback price, never an error.
func (l *Lookup) SpotUSD(ctx context.Context, pair string) float64 {
	asset := strings.ToLower(strings.SplitN(pair, "/", 2)[0])
	coinID, ok := coinIDs[asset]
	if !ok {
		coinID = asset
	}

	resp, err := l.client.GET(ctx, fmt.Sprintf("/simple/price?ids=%s&vs_currencies=usd", url.QueryEscape(coinID)))
	if err != nil {
		logger.Warn(ctx, "Price lookup failed, using fallback", "asset", asset, "fallback_usd", l.fallbackUSD, "error", err.Error())
		return l.fallbackUSD
	}

	var payload map[string]struct {
		USD float64 `json:"usd"`
	}
	if err := resp.ParseJSON(&payload); err != nil {
		logger.Warn(ctx, "Price response unparsable, using fallback", "asset", asset, "fallback_usd", l.fallbackUSD, "error", err.Error())
		return l.fallbackUSD
	}

	entry, ok := payload[coinID]
	if !ok || entry.USD <= 0 {
		logger.Warn(ctx, "Price missing from response, using fallback", "asset", asset, "fallback_usd", l.fallbackUSD)
		return l.fallbackUSD
	}

	logger.Debug(ctx, "Spot price resolved", "asset", asset, "price_usd", entry.USD)
	return entry.USD
}
