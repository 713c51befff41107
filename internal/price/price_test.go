package price

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestLookup(t *testing.T, handler http.HandlerFunc, fallback float64) *Lookup {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	t.Setenv("COINGECKO_API_ENDPOINT", server.URL)
	return NewLookup(fallback, 5*time.Second)
}

func TestSpotUSD(t *testing.T) {
	l := newTestLookup(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/simple/price" {
			http.NotFound(w, r)
			return
		}
		if got := r.URL.Query().Get("ids"); got != "ethereum" {
			t.Errorf("ids = %q, want ethereum", got)
		}
		fmt.Fprint(w, `{"ethereum":{"usd":3214.55}}`)
	}, 3000)

	if got := l.SpotUSD(context.Background(), "ETH/USDC"); got != 3214.55 {
		t.Errorf("SpotUSD = %v, want 3214.55", got)
	}
}

func TestSpotUSDFallbackOnServerError(t *testing.T) {
	l := newTestLookup(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}, 3000)

	if got := l.SpotUSD(context.Background(), "ETH/USDC"); got != 3000 {
		t.Errorf("SpotUSD = %v, want fallback 3000", got)
	}
}

func TestSpotUSDFallbackOnBadPayload(t *testing.T) {
	l := newTestLookup(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `not json`)
	}, 2500)

	if got := l.SpotUSD(context.Background(), "ETH/USDC"); got != 2500 {
		t.Errorf("SpotUSD = %v, want fallback 2500", got)
	}
}

func TestSpotUSDFallbackOnMissingCoin(t *testing.T) {
	l := newTestLookup(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{}`)
	}, 3000)

	if got := l.SpotUSD(context.Background(), "ETH/USDC"); got != 3000 {
		t.Errorf("SpotUSD = %v, want fallback 3000", got)
	}
}

func TestSpotUSDUnknownAssetPassesSymbol(t *testing.T) {
	l := newTestLookup(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("ids"); got != "dogecoin" {
			t.Errorf("ids = %q, want dogecoin", got)
		}
		fmt.Fprint(w, `{"dogecoin":{"usd":0.1}}`)
	}, 3000)

	if got := l.SpotUSD(context.Background(), "DOGECOIN/USDC"); got != 0.1 {
		t.Errorf("SpotUSD = %v, want 0.1", got)
	}
}
