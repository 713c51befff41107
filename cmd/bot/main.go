package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"sentiment-trading-bot/internal/engine"
	"sentiment-trading-bot/internal/feed"
	"sentiment-trading-bot/internal/interfaces"
	"sentiment-trading-bot/internal/logger"
	"sentiment-trading-bot/internal/notify"
	"sentiment-trading-bot/internal/report"
	"sentiment-trading-bot/internal/store"
	"sentiment-trading-bot/internal/trace"
	"sentiment-trading-bot/internal/types"
)

func main() {
	if err := initializeSystem(); err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := loadConfig(ctx)
	if err != nil {
		log.Fatal(err)
	}
	env, err := store.LoadEnv()
	if err != nil {
		log.Fatal(err)
	}

	audit := initializeAudit(ctx, env)
	classifier := initializeClassifier(ctx, cfg, env)
	source := initializeSource(ctx, cfg)
	gw := initializeGateway(ctx, cfg)
	eng := initializeEngine(cfg, classifier, audit)
	notifier := notify.NewConsole(os.Stdout)

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)

	lines := make(chan string)
	go func() {
		sc := bufio.NewScanner(os.Stdin)
		for sc.Scan() {
			lines <- sc.Text()
		}
		close(lines)
	}()

	logger.Info(ctx, "Bot started", "mode", cfg.Mode, "providers", cfg.LLM.Providers)
	fmt.Println("Commands: <message> | analyze [coin] | batch | balance <asset> | execute | quit")

	var lastPlan *types.TradePlan
	for {
		select {
		case line, ok := <-lines:
			if !ok {
				shutdown(ctx, audit)
				return
			}
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			if line == "quit" || line == "exit" {
				shutdown(ctx, audit)
				return
			}
			lastPlan = handle(ctx, line, cfg, eng, source, gw, notifier, lastPlan)
		case <-sigc:
			logger.Info(ctx, "Shutting down...")
			shutdown(ctx, audit)
			return
		case <-ctx.Done():
			return
		}
	}
}

// handle dispatches one REPL line and returns the most recent trade plan
// so a later "execute" can settle it.
func handle(
	ctx context.Context,
	line string,
	cfg *store.Config,
	eng *engine.Engine,
	source interfaces.Source,
	gw interfaces.Gateway,
	notifier interfaces.Notifier,
	lastPlan *types.TradePlan,
) *types.TradePlan {
	cmd, rest, _ := strings.Cut(line, " ")

	switch cmd {
	case "analyze":
		coin := feed.ExtractCoin(rest)
		analysis, err := eng.AnalyzeFeed(ctx, source, coin, cfg.Feed.MaxPosts)
		if err != nil {
			logger.ErrorWithErr(ctx, "Feed analysis failed", err, "coin", coin)
			return lastPlan
		}
		notifier.Publish(ctx, types.Message{Text: notify.AlphaSummary(coin, analysis.Alpha.Summary), Source: "cli", Data: analysis})
		return lastPlan

	case "batch":
		posts, err := source.Fetch(ctx, cfg.Feed.Query, cfg.Feed.MaxPosts)
		if err != nil {
			logger.ErrorWithErr(ctx, "Feed fetch failed", err)
			return lastPlan
		}
		batch := eng.RunBatch(ctx, posts, "cli", notifier)
		for _, res := range batch.Results {
			if res.Outcome == types.OutcomeSignal && res.Plan != nil {
				lastPlan = res.Plan
			}
		}
		return lastPlan

	case "balance":
		asset := strings.ToUpper(strings.TrimSpace(rest))
		if asset == "" {
			asset = strings.SplitN(cfg.Trade.Pair, "/", 2)[0]
		}
		bal, err := gw.Balance(ctx, asset)
		if err != nil {
			logger.ErrorWithErr(ctx, "Balance check failed", err, "asset", asset)
			return lastPlan
		}
		notifier.Publish(ctx, types.Message{Text: fmt.Sprintf("**Balance Check**\n\n**Asset:** %s\n**Balance:** %s", bal.Asset, bal.Formatted), Source: "cli"})
		return lastPlan

	case "execute":
		if lastPlan == nil {
			notifier.Publish(ctx, types.Message{Text: "No trade plan to execute. Analyze a message first.", Source: "cli"})
			return lastPlan
		}
		result, err := gw.ExecuteTrade(ctx, lastPlan)
		if err != nil {
			logger.ErrorWithErr(ctx, "Trade execution failed", err, "plan_id", lastPlan.ID)
			return lastPlan
		}
		if !result.Success {
			notifier.Publish(ctx, types.Message{Text: fmt.Sprintf("**Trade Execution Failed**\n\nError: %s", result.Error), Source: "cli"})
			return lastPlan
		}
		notifier.Publish(ctx, types.Message{Text: notify.TradeExecuted(lastPlan, result, "cli"), Source: "cli", Data: result})
		return nil

	default:
		plan, err := eng.Decide(ctx, line, "cli")
		if err != nil {
			logger.ErrorWithErr(ctx, "Decision failed", err)
			return lastPlan
		}
		if plan == nil {
			notifier.Publish(ctx, types.Message{Text: notify.NoSignal("cli"), Source: "cli"})
			return lastPlan
		}
		notifier.Publish(ctx, types.Message{Text: notify.PlanDetected(plan, "cli"), Source: "cli", Data: plan})
		return plan
	}
}

func shutdown(ctx context.Context, audit *report.Log) {
	if p, err := audit.SummarizeToday(); err == nil && p != "" {
		logger.Info(ctx, "Daily report written", "path", p)
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = trace.Shutdown(shutdownCtx)
}
