package engine

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"sentiment-trading-bot/internal/interfaces"
	"sentiment-trading-bot/internal/logger"
	"sentiment-trading-bot/internal/notify"
	"sentiment-trading-bot/internal/types"
)

// RunBatch decides each post independently and reports the outcomes in
// input order. One failing item never aborts the rest of the batch; its
// error is captured in that item's result. Progress is streamed through
// the notifier as signals appear.
func (e *Engine) RunBatch(ctx context.Context, posts []types.Post, source string, notifier interfaces.Notifier) types.BatchReport {
	batch := types.BatchReport{
		BatchID:    uuid.NewString(),
		TotalPosts: len(posts),
		Results:    make([]types.BatchResult, 0, len(posts)),
	}

	logger.Info(ctx, "Starting batch analysis", "batch_id", batch.BatchID, "posts", len(posts), "source", source)
	publish(ctx, notifier, notify.BatchStarted(len(posts), source), source, nil)

	for i, post := range posts {
		res := e.decideOne(ctx, post, source)
		if res.Outcome == types.OutcomeSignal {
			batch.StrongSignals++
			publish(ctx, notifier, notify.StrongSignal(batch.StrongSignals, res.Plan, source), source, res.Plan)
		} else if res.Outcome == types.OutcomeError {
			logger.Warn(ctx, "Batch item failed", "batch_id", batch.BatchID, "index", i, "post_id", post.ID, "error", res.Err)
		}
		batch.Results = append(batch.Results, res)
	}

	publish(ctx, notifier, notify.BatchComplete(batch, source), source, batch)
	if e.audit != nil {
		if err := e.audit.AppendBatch(batch); err != nil {
			logger.Warn(ctx, "Failed to persist batch report", "batch_id", batch.BatchID, "error", err.Error())
		}
	}

	logger.Info(ctx, "Batch analysis complete",
		"batch_id", batch.BatchID,
		"total_posts", batch.TotalPosts,
		"strong_signals", batch.StrongSignals,
	)
	return batch
}

// decideOne wraps a single decision with panic isolation so a misbehaving
// item is recorded as an error result instead of taking down the batch.
func (e *Engine) decideOne(ctx context.Context, post types.Post, source string) (res types.BatchResult) {
	res = types.BatchResult{Post: post}
	defer func() {
		if r := recover(); r != nil {
			res.Plan = nil
			res.Err = fmt.Sprintf("panic: %v", r)
			res.Outcome = types.OutcomeError
		}
	}()

	// A post keeps its own origin; the batch source only covers posts
	// that arrived without one.
	if post.Source != "" {
		source = post.Source
	}

	plan, err := e.Decide(ctx, post.Text, source)
	switch {
	case err != nil:
		res.Err = err.Error()
		res.Outcome = types.OutcomeError
	case plan == nil:
		res.Outcome = types.OutcomeNoSignal
	default:
		res.Plan = plan
		res.Outcome = types.OutcomeSignal
	}
	return res
}

func publish(ctx context.Context, notifier interfaces.Notifier, text, source string, data any) {
	if notifier == nil {
		return
	}
	notifier.Publish(ctx, types.Message{Text: text, Source: source, Data: data})
}
