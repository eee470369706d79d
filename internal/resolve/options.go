package resolve

import (
	"time"

	"github.com/rotisserie/eris"
)

// Defaults for batch resolution.
const (
	DefaultConcurrency   = 5
	DefaultMaxCandidates = 10
	DefaultProgressEvery = 25
	DefaultPacing        = 350 * time.Millisecond
)

// Options controls how records are resolved.
type Options struct {
	// OnlyMissing skips records that already have a canonical URL.
	OnlyMissing bool
	// Concurrency is the number of records resolved at once.
	Concurrency int
	// Limit caps the number of records processed. Zero means all.
	Limit int
	// MaxCandidates caps how many ranked candidates are validated per record.
	MaxCandidates int
	// ProgressEvery is the number of completed records between progress logs.
	ProgressEvery int
	// Pacing is the minimum delay between searches for one record.
	Pacing time.Duration
}

// DefaultOptions returns Options with every default applied.
func DefaultOptions() Options {
	return Options{
		Concurrency:   DefaultConcurrency,
		MaxCandidates: DefaultMaxCandidates,
		ProgressEvery: DefaultProgressEvery,
		Pacing:        DefaultPacing,
	}
}

// Validate checks the options once before a run.
func (o Options) Validate() error {
	if o.Concurrency < 1 {
		return eris.Errorf("resolve: concurrency must be at least 1, got %d", o.Concurrency)
	}
	if o.Limit < 0 {
		return eris.Errorf("resolve: limit must not be negative, got %d", o.Limit)
	}
	if o.MaxCandidates < 1 {
		return eris.Errorf("resolve: max candidates must be at least 1, got %d", o.MaxCandidates)
	}
	if o.ProgressEvery < 1 {
		return eris.Errorf("resolve: progress interval must be at least 1, got %d", o.ProgressEvery)
	}
	if o.Pacing < 0 {
		return eris.Errorf("resolve: pacing must not be negative, got %s", o.Pacing)
	}
	return nil
}
