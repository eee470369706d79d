// Package resolve runs catalog records through search, ranking, and
// validation, and schedules whole batches of them.
package resolve

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/sells-group/catalog-resolver/internal/model"
	"github.com/sells-group/catalog-resolver/internal/rank"
	"github.com/sells-group/catalog-resolver/internal/search"
	"github.com/sells-group/catalog-resolver/internal/validate"
)

// Resolver enriches one record at a time. It is safe for concurrent use as
// long as each record is owned by a single caller.
type Resolver struct {
	provider  search.Provider
	ranker    *rank.Ranker
	validator validate.Validator
	opts      Options
	now       func() time.Time
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithClock overrides the clock used for last_verified_utc.
func WithClock(now func() time.Time) Option {
	return func(r *Resolver) { r.now = now }
}

// NewResolver creates a Resolver. opts must already be validated.
func NewResolver(p search.Provider, rk *rank.Ranker, v validate.Validator, opts Options, ropts ...Option) *Resolver {
	r := &Resolver{
		provider:  p,
		ranker:    rk,
		validator: v,
		opts:      opts,
		now:       time.Now,
	}
	for _, o := range ropts {
		o(r)
	}
	return r
}

// Options returns the options the resolver was built with.
func (r *Resolver) Options() Options { return r.opts }

// Resolve searches for, ranks, and validates candidates for rec and writes
// the result into it. It never returns an error or panics: failures are
// recorded in rec's notes and in the returned Outcome, and leave every other
// field of rec untouched.
func (r *Resolver) Resolve(ctx context.Context, rec *model.CatalogRecord) (out model.Outcome) {
	start := time.Now()
	log := zap.L().With(zap.String("record", rec.Label()))

	defer func() {
		if p := recover(); p != nil {
			r.markErrored(rec, &out, fmt.Sprintf("panic: %v", p))
		}
		out.Duration = time.Since(start)
		log.Debug("resolve: record done",
			zap.String("status", string(out.Status)),
			zap.Int("candidates", out.Candidates),
			zap.Int("tried", out.Tried),
			zap.Duration("elapsed", out.Duration),
		)
	}()

	if r.opts.OnlyMissing && rec.HasCanonicalURL() {
		out.Status = model.StatusSkipped
		return out
	}

	match, err := r.findMatch(ctx, rec, &out)
	if err != nil {
		log.Warn("resolve: record failed", zap.Error(err))
		r.markErrored(rec, &out, err.Error())
		return out
	}

	if match == nil {
		out.Status = model.StatusUnmatched
		rec.AppendNote(model.NoteNoMatch)
		return out
	}

	rec.CanonicalProductURL = match.CanonicalURL
	rec.ReviewURL1 = match.ReviewURL
	rec.LastVerifiedUTC = r.now().UTC().Format(time.RFC3339)
	rec.AppendNote(model.NoteEnriched)

	out.Status = model.StatusEnriched
	out.Match = match
	log.Info("resolve: record enriched",
		zap.String("url", match.CanonicalURL),
		zap.Float64("product_score", match.ProductScore),
		zap.Float64("brand_score", match.BrandScore),
	)
	return out
}

// findMatch gathers and ranks candidates, then validates them in order until
// the first one is accepted.
func (r *Resolver) findMatch(ctx context.Context, rec *model.CatalogRecord, out *model.Outcome) (*model.ValidationResult, error) {
	out.Queries = search.BuildQueries(rec)
	if len(out.Queries) == 0 {
		return nil, nil
	}

	links, err := search.Gather(ctx, r.provider, search.NewPacer(r.opts.Pacing), out.Queries)
	if err != nil {
		return nil, err
	}

	candidates := r.ranker.Rank(rec, links)
	out.Candidates = len(candidates)
	if len(candidates) > r.opts.MaxCandidates {
		candidates = candidates[:r.opts.MaxCandidates]
	}

	for _, c := range candidates {
		out.Tried++
		res, err := r.validator.Validate(ctx, rec, c.URL)
		if err != nil {
			return nil, err
		}
		if res != nil {
			return res, nil
		}
	}
	return nil, nil
}

func (r *Resolver) markErrored(rec *model.CatalogRecord, out *model.Outcome, msg string) {
	out.Status = model.StatusErrored
	out.Match = nil
	out.Error = msg
	rec.AppendNote(model.NoteError + ": " + msg)
}
