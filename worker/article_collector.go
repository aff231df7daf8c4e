package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"article-mapper/internal/mapper"
	"article-mapper/internal/sink"

	"github.com/google/uuid"
)

// ArticleCollector polls the article feed, assembles every listed article and
// hands the results to a sink.
type ArticleCollector struct {
	Source      Source
	Assembler   *mapper.Assembler
	Sink        sink.Sink
	Interval    time.Duration
	Concurrency int // articles fetched in parallel; 1 keeps the cycle sequential
}

// CycleStats summarizes one pass over the article list.
type CycleStats struct {
	IDs        int
	Emitted    int
	Failed     int
	SinkErrors int
}

func (w *ArticleCollector) Start(ctx context.Context) error {
	if w.Interval <= 0 {
		w.Interval = 300 * time.Second
	}

	// initial run
	w.runOnce(ctx)

	t := time.NewTicker(w.Interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			w.runOnce(ctx)
		}
	}
}

func (w *ArticleCollector) runOnce(ctx context.Context) {
	if _, err := w.RunOnce(ctx); err != nil {
		slog.Error("collector: cycle aborted", "error", err)
	}
}

// RunOnce performs one cycle: fetch the list, then every article. It returns
// an error only when the list itself cannot be fetched or parsed.
func (w *ArticleCollector) RunOnce(ctx context.Context) (CycleStats, error) {
	raw, err := w.Source.List(ctx)
	if err != nil {
		return CycleStats{}, fmt.Errorf("fetch article list: %w", err)
	}
	ids, err := mapper.ParseIDs(raw)
	if err != nil {
		return CycleStats{}, fmt.Errorf("parse article list: %w", err)
	}
	return w.RunIDs(ctx, ids), nil
}

// RunIDs assembles the given ids and emits each article in list order.
// Failures are logged per article and never stop the cycle.
func (w *ArticleCollector) RunIDs(ctx context.Context, ids []string) CycleStats {
	cycleID := uuid.NewString()
	log := slog.With("cycle_id", cycleID)
	start := time.Now()
	log.Info("collector: cycle started", "ids", len(ids), "concurrency", w.Concurrency)

	stats := CycleStats{IDs: len(ids)}
	for _, r := range ProcessCycle(ctx, w.Source, w.Assembler, ids, w.Concurrency) {
		if r.Err != nil {
			stats.Failed++
			log.Error("collector: article failed", "id", r.ID, "error", r.Err)
			continue
		}
		if err := w.Sink.Emit(ctx, r.Article); err != nil {
			stats.SinkErrors++
			log.Error("collector: emit failed", "id", r.ID, "error", err)
			continue
		}
		stats.Emitted++
	}

	log.Info("collector: cycle completed",
		"emitted", stats.Emitted,
		"failed", stats.Failed,
		"sink_errors", stats.SinkErrors,
		"took", time.Since(start).Round(time.Millisecond),
	)
	return stats
}
