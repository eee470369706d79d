package main

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/sells-group/catalog-resolver/internal/config"
	"github.com/sells-group/catalog-resolver/internal/fetch"
	"github.com/sells-group/catalog-resolver/internal/rank"
	"github.com/sells-group/catalog-resolver/internal/resilience"
	"github.com/sells-group/catalog-resolver/internal/resolve"
	"github.com/sells-group/catalog-resolver/internal/search"
	"github.com/sells-group/catalog-resolver/internal/validate"
)

// baseOptions returns resolve options populated from configuration.
func baseOptions(c *config.Config) resolve.Options {
	return resolve.Options{
		Concurrency:   c.Batch.Concurrency,
		MaxCandidates: c.Batch.MaxCandidates,
		ProgressEvery: c.Batch.ProgressEvery,
		Pacing:        c.Search.Pacing(),
	}
}

// buildResolver wires the search provider, ranker, and validator from
// configuration.
func buildResolver(c *config.Config, opts resolve.Options) *resolve.Resolver {
	pageFetcher := fetch.New(fetch.Config{
		UserAgent:    c.Fetch.UserAgent,
		Timeout:      c.Fetch.Timeout(),
		MaxBodyBytes: c.Fetch.MaxBodyBytes,
		MaxAttempts:  c.Fetch.MaxAttempts,
	})
	searchFetcher := fetch.New(fetch.Config{
		UserAgent:    c.Fetch.UserAgent,
		Timeout:      c.Search.Timeout(),
		MaxBodyBytes: c.Fetch.MaxBodyBytes,
		MaxAttempts:  c.Fetch.MaxAttempts,
	})

	provider := search.NewHTMLProvider(searchFetcher,
		search.WithBaseURL(c.Search.BaseURL),
		search.WithResultSelector(c.Search.ResultSelector),
	)
	breaker := resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
		FailureThreshold: c.Search.BreakerFailures,
		ResetTimeout:     time.Duration(c.Search.BreakerResetSecs) * time.Second,
		ShouldTrip: func(err error) bool {
			return !errors.Is(err, context.Canceled)
		},
		OnStateChange: func(from, to resilience.CircuitState) {
			zap.L().Warn("search: circuit state changed",
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})

	ranker := rank.NewRanker(c.Rank.Sources, c.Rank.DefaultSources, rank.NewExcluder(c.Rank.ExcludePatterns))
	validator := validate.NewPageValidator(pageFetcher)

	return resolve.NewResolver(search.WithBreaker(provider, breaker), ranker, validator, opts)
}
