// Package report persists trade plans and batch runs as daily JSONL files
// and summarizes them into per-day CSV reports.
package report

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"sentiment-trading-bot/internal/types"
)

// Log appends audit records under a base directory. All timestamps and
// daily rollovers are UTC; crypto markets have no session close.
type Log struct {
	mu  sync.Mutex
	dir string
}

// New creates an audit log rooted at dir.
func New(dir string) *Log {
	if dir == "" {
		dir = "logs"
	}
	return &Log{dir: dir}
}

func (l *Log) planPath(t time.Time) string {
	return filepath.Join(l.dir, "plans", t.UTC().Format("2006-01-02")+".txt")
}

func (l *Log) batchPath(t time.Time) string {
	return filepath.Join(l.dir, "batches", t.UTC().Format("2006-01-02")+".txt")
}

func (l *Log) reportPath(t time.Time) string {
	return filepath.Join(l.dir, "reports", t.UTC().Format("2006-01-02")+".csv")
}

// AppendPlan records one trade plan as a JSONL line in today's plan file.
func (l *Log) AppendPlan(plan *types.TradePlan) error {
	return l.appendLine(l.planPath(time.Now()), plan)
}

// AppendBatch records one finished batch run in today's batch file.
func (l *Log) AppendBatch(report types.BatchReport) error {
	return l.appendLine(l.batchPath(time.Now()), report)
}

func (l *Log) appendLine(path string, v any) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(f, string(b))
	return err
}

// CompressOlder gzips plan and batch files older than retentionDays.
// A non-positive retention disables compression.
func (l *Log) CompressOlder(retentionDays int) error {
	if retentionDays <= 0 {
		return nil
	}
	cutoff := time.Now().AddDate(0, 0, -retentionDays)
	return filepath.WalkDir(l.dir, func(p string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() || filepath.Ext(p) != ".txt" {
			return nil
		}
		info, er := os.Stat(p)
		if er != nil || !info.ModTime().Before(cutoff) {
			return nil
		}

		gz := p + ".gz"
		if _, e2 := os.Stat(gz); e2 == nil {
			_ = os.Remove(p)
			return nil
		}

		in, e3 := os.Open(p)
		if e3 != nil {
			return nil
		}
		defer in.Close()

		out, e4 := os.OpenFile(gz, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
		if e4 != nil {
			return nil
		}
		gw := gzip.NewWriter(out)
		if _, e5 := io.Copy(gw, in); e5 == nil {
			_ = gw.Close()
			_ = out.Close()
			_ = os.Remove(p)
		} else {
			_ = gw.Close()
			_ = out.Close()
		}
		return nil
	})
}
