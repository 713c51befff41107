package feed

import (
	"regexp"
	"strings"
)

var coinPattern = regexp.MustCompile(`(?i)\b(eth|btc|sol|usdc|ethereum|bitcoin|solana)\b`)

// canonical maps ticker shorthand to the query form used against feeds.
var canonical = map[string]string{
	"eth": "ethereum",
	"btc": "bitcoin",
	"sol": "solana",
}

// ExtractCoin pulls the first recognized coin mention out of free text,
// normalized to its full name. Unrecognized text defaults to ethereum.
func ExtractCoin(text string) string {
	m := coinPattern.FindString(text)
	if m == "" {
		return "ethereum"
	}
	coin := strings.ToLower(m)
	if full, ok := canonical[coin]; ok {
		return full
	}
	return coin
}
