package report

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"sentiment-trading-bot/internal/types"
)

type aggRow struct {
	Pair           string
	Buys           int
	Sells          int
	SentimentSum   float64
	StrongestScore float64
}

// SummarizeDay aggregates the day's plan file into a per-pair CSV report
// and returns the written path. With no plans for the day it returns ""
// and no error.
func (l *Log) SummarizeDay(t time.Time) (string, error) {
	inPath := l.planPath(t)
	if _, err := os.Stat(inPath); err != nil {
		return "", nil
	}
	f, err := os.Open(inPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	aggs := map[string]*aggRow{}
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var plan types.TradePlan
		if err := json.Unmarshal(sc.Bytes(), &plan); err != nil {
			continue
		}
		row := aggs[plan.Pair]
		if row == nil {
			row = &aggRow{Pair: plan.Pair}
			aggs[plan.Pair] = row
		}
		switch plan.Action {
		case "buy":
			row.Buys++
		case "sell":
			row.Sells++
		}
		row.SentimentSum += plan.SentimentScore
		if abs(plan.SentimentScore) > abs(row.StrongestScore) {
			row.StrongestScore = plan.SentimentScore
		}
	}
	if err := sc.Err(); err != nil {
		return "", err
	}
	if len(aggs) == 0 {
		return "", nil
	}

	keys := make([]string, 0, len(aggs))
	for k := range aggs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	outPath := l.reportPath(t)
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return "", err
	}
	out, err := os.Create(outPath)
	if err != nil {
		return "", err
	}
	defer out.Close()

	w := csv.NewWriter(out)
	defer w.Flush()
	headers := []string{"pair", "buys", "sells", "avg_sentiment", "strongest_sentiment"}
	if err := w.Write(headers); err != nil {
		return "", err
	}

	var totalBuys, totalSells int
	for _, k := range keys {
		r := aggs[k]
		count := r.Buys + r.Sells
		avg := r.SentimentSum / float64(count)
		rec := []string{
			r.Pair,
			strconv.Itoa(r.Buys),
			strconv.Itoa(r.Sells),
			fmt.Sprintf("%.4f", avg),
			fmt.Sprintf("%.4f", r.StrongestScore),
		}
		if err := w.Write(rec); err != nil {
			return "", err
		}
		totalBuys += r.Buys
		totalSells += r.Sells
	}
	_ = w.Write([]string{"TOTAL", strconv.Itoa(totalBuys), strconv.Itoa(totalSells), "", ""})
	return outPath, nil
}

// SummarizeToday summarizes the current UTC day.
func (l *Log) SummarizeToday() (string, error) {
	return l.SummarizeDay(time.Now().UTC())
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
