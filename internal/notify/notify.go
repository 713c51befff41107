// Package notify delivers pipeline updates to a consumer. Delivery is
// fire-and-forget: a broken notifier must never fail a trade decision.
package notify

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"sentiment-trading-bot/internal/interfaces"
	"sentiment-trading-bot/internal/logger"
	"sentiment-trading-bot/internal/types"
)

// Console writes notifications to a writer, stdout by default.
type Console struct {
	mu  sync.Mutex
	out io.Writer
}

var _ interfaces.Notifier = (*Console)(nil)

// NewConsole creates a console notifier. A nil writer defaults to stdout.
func NewConsole(out io.Writer) *Console {
	if out == nil {
		out = os.Stdout
	}
	return &Console{out: out}
}

// Publish writes the message text. Write failures are logged and swallowed.
func (c *Console) Publish(ctx context.Context, msg types.Message) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, err := fmt.Fprintln(c.out, msg.Text); err != nil {
		logger.Warn(ctx, "Notification write failed", "source", msg.Source, "error", err.Error())
	}
}

// richSource reports whether the consumer renders markdown. Discord-style
// consumers get the decorated variant, everything else plain text.
func richSource(source string) bool {
	return strings.Contains(strings.ToLower(source), "discord")
}

// PlanDetected formats a trade-plan notification for the given source.
func PlanDetected(plan *types.TradePlan, source string) string {
	if richSource(source) {
		return fmt.Sprintf(
			"**Trading Signal Detected!**\n\n**Action:** %s\n**Pair:** %s\n**Amount:** %s\n**Target:** %s\n**Sentiment Score:** %.2f\n\n*Remember: This is analysis only, not financial advice.*",
			strings.ToUpper(plan.Action), plan.Pair, plan.Amount, plan.PriceThreshold, plan.SentimentScore)
	}
	return fmt.Sprintf("Trade plan generated: %s %s %s at %s (sentiment: %.2f)",
		strings.ToUpper(plan.Action), plan.Amount, plan.Pair, plan.PriceThreshold, plan.SentimentScore)
}

// NoSignal formats the no-signal response for the given source.
func NoSignal(source string) string {
	if richSource(source) {
		return "No strong trading signal detected in this message."
	}
	return "No strong trade signal found."
}

// BatchStarted announces the start of a batch run.
func BatchStarted(total int, source string) string {
	if richSource(source) {
		return fmt.Sprintf("**Starting analysis of %d messages...**", total)
	}
	return fmt.Sprintf("Starting analysis of %d posts...", total)
}

// StrongSignal announces the nth strong signal found during a batch run.
func StrongSignal(n int, plan *types.TradePlan, source string) string {
	if richSource(source) {
		return fmt.Sprintf("**Strong Signal #%d:** %s %s (sentiment: %.2f)",
			n, strings.ToUpper(plan.Action), plan.Pair, plan.SentimentScore)
	}
	return fmt.Sprintf("Strong signal #%d: %s %s (sentiment: %.2f)",
		n, strings.ToUpper(plan.Action), plan.Pair, plan.SentimentScore)
}

// BatchComplete summarizes a finished batch run.
func BatchComplete(report types.BatchReport, source string) string {
	if richSource(source) {
		verdict := "No strong signals found."
		if report.StrongSignals > 0 {
			verdict = "Trading opportunities detected!"
		}
		return fmt.Sprintf("**Analysis Complete!**\n\n**Processed:** %d messages\n**Strong Signals:** %d\n\n%s",
			report.TotalPosts, report.StrongSignals, verdict)
	}
	return fmt.Sprintf("Analysis complete! Processed %d posts, found %d strong signals.",
		report.TotalPosts, report.StrongSignals)
}

// TradeExecuted formats a settlement confirmation.
func TradeExecuted(plan *types.TradePlan, result types.TradeResult, source string) string {
	toAsset := plan.Pair
	if parts := strings.SplitN(plan.Pair, "/", 2); len(parts) == 2 {
		toAsset = parts[1]
	}
	if richSource(source) {
		return fmt.Sprintf(
			"**Trade Executed Successfully!**\n\n**Action:** %s\n**Pair:** %s\n**Amount:** %s\n**Received:** %s %s\n**Transaction Hash:** %s\n**Sentiment Score:** %.2f\n\n*Trade executed on-chain based on sentiment analysis.*",
			strings.ToUpper(plan.Action), plan.Pair, plan.Amount, result.AmountReceived, toAsset, result.TransactionHash, plan.SentimentScore)
	}
	return fmt.Sprintf("Trade executed: %s %s %s, received %s %s (tx %s)",
		strings.ToUpper(plan.Action), plan.Amount, plan.Pair, result.AmountReceived, toAsset, result.TransactionHash)
}
