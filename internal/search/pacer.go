package search

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Pacer enforces a fixed minimum delay between successive queries issued for
// one record. Each record gets its own Pacer, so waiting only blocks that
// record's worker.
type Pacer struct {
	limiter *rate.Limiter
}

// NewPacer creates a Pacer. A delay of zero or less disables pacing.
func NewPacer(delay time.Duration) *Pacer {
	if delay <= 0 {
		return &Pacer{}
	}
	return &Pacer{limiter: rate.NewLimiter(rate.Every(delay), 1)}
}

// Wait blocks until the next query may be issued or ctx is done. The first
// call returns immediately.
func (p *Pacer) Wait(ctx context.Context) error {
	if p == nil || p.limiter == nil {
		return ctx.Err()
	}
	return p.limiter.Wait(ctx)
}
