package resolve

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/catalog-resolver/internal/model"
)

// Summary describes a finished batch run.
type Summary struct {
	RunID     string
	Total     int
	Processed int
	Counts    map[model.Status]int
	Duration  time.Duration
}

// Count returns the number of records that ended in status.
func (s Summary) Count(status model.Status) int {
	return s.Counts[status]
}

// RunBatch resolves every record, or the first opts.Limit records, with at
// most opts.Concurrency records in flight. The processed records are copies
// merged back by position, so the input slice and every record past the
// limit are returned exactly as given. Canceling ctx stops new records from
// starting; records already in flight finish with an error note.
func RunBatch(ctx context.Context, r *Resolver, records []*model.CatalogRecord, opts Options) ([]*model.CatalogRecord, Summary) {
	start := time.Now()
	runID := uuid.NewString()
	log := zap.L().With(zap.String("run_id", runID))

	n := len(records)
	if opts.Limit > 0 && opts.Limit < n {
		n = opts.Limit
	}
	concurrency := opts.Concurrency
	if concurrency < 1 {
		concurrency = DefaultConcurrency
	}
	every := int64(opts.ProgressEvery)
	if every < 1 {
		every = DefaultProgressEvery
	}

	subset := make([]*model.CatalogRecord, n)
	for i := range subset {
		subset[i] = records[i].Clone()
	}

	log.Info("resolve: batch started",
		zap.Int("total", len(records)),
		zap.Int("processing", n),
		zap.Int("concurrency", concurrency),
	)

	outcomes := make([]model.Outcome, n)
	var done atomic.Int64
	started := 0

	g := new(errgroup.Group)
	g.SetLimit(concurrency)
	for i, rec := range subset {
		// Records not yet started stay as read once the run is canceled.
		if ctx.Err() != nil {
			log.Warn("resolve: batch canceled", zap.Int("started", started), zap.Error(ctx.Err()))
			break
		}
		started++
		i, rec := i, rec
		g.Go(func() error {
			outcomes[i] = r.Resolve(ctx, rec)

			if c := done.Add(1); c%every == 0 {
				elapsed := time.Since(start).Seconds()
				log.Info("resolve: progress",
					zap.Int64("done", c),
					zap.Int("total", n),
					zap.String("rate", humanize.FtoaWithDigits(float64(c)/max(elapsed, 1e-9), 2)+" records/s"),
				)
			}
			return nil
		})
	}
	_ = g.Wait()

	summary := Summary{
		RunID:     runID,
		Total:     len(records),
		Processed: started,
		Counts:    make(map[model.Status]int),
		Duration:  time.Since(start),
	}
	for _, o := range outcomes[:started] {
		summary.Counts[o.Status]++
	}

	log.Info("resolve: batch complete",
		zap.Int("processed", started),
		zap.Int("enriched", summary.Count(model.StatusEnriched)),
		zap.Int("unmatched", summary.Count(model.StatusUnmatched)),
		zap.Int("errored", summary.Count(model.StatusErrored)),
		zap.Int("skipped", summary.Count(model.StatusSkipped)),
		zap.String("elapsed", summary.Duration.Round(time.Millisecond).String()),
	)

	return MergeByPosition(records, subset), summary
}

// MergeByPosition returns a copy of full with its leading entries replaced
// by processed. Entries past len(processed) are left as they were.
func MergeByPosition(full, processed []*model.CatalogRecord) []*model.CatalogRecord {
	merged := make([]*model.CatalogRecord, len(full))
	copy(merged, full)
	copy(merged, processed)
	return merged
}
