package sentiment

import "fmt"

// MessagePrompt builds the instruction for the -1..1 message-classification
// path. The model must answer with a bare numeric token.
func MessagePrompt(text, pair string) string {
	return fmt.Sprintf(`You are a crypto trading sentiment analyzer. Analyze the following message and return only a number between -1 and 1 representing how positive or negative this message is toward %s trading.

-1 = very negative/bearish
0 = neutral
1 = very positive/bullish

Message: "%s"

Return only the number, no other text:`, pair, text)
}

// PostPrompt builds the instruction for the structured per-post path.
// The model must answer with a single JSON object on the 1-10 scale.
func PostPrompt(text string) string {
	return fmt.Sprintf(`Analyze the sentiment of this crypto-related post and provide a structured response:

Post: "%s"

Please respond with ONLY a JSON object in this exact format:
{
  "sentiment": "bullish|bearish|neutral",
  "score": number (1-10, where 10 is extremely positive),
  "confidence": number (0-1, where 1 is very confident),
  "keywords": ["keyword1", "keyword2", "keyword3"]
}

Focus on crypto trading sentiment, market sentiment, and potential price impact.`, text)
}
