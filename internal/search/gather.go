package search

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/catalog-resolver/internal/resilience"
)

// Gather runs queries in order through pacer and merges their links in
// first-seen order. Any query failure fails the whole gather.
func Gather(ctx context.Context, p Provider, pacer *Pacer, queries []string) ([]string, error) {
	seen := make(map[string]bool)
	var links []string

	for _, q := range queries {
		if err := pacer.Wait(ctx); err != nil {
			return nil, eris.Wrap(err, "search: pacing")
		}

		results, err := p.Search(ctx, q)
		if err != nil {
			return nil, err
		}
		for _, link := range results {
			if !seen[link] {
				seen[link] = true
				links = append(links, link)
			}
		}
	}
	return links, nil
}

// breakerProvider fails fast while the search surface keeps failing.
type breakerProvider struct {
	next Provider
	cb   *resilience.CircuitBreaker
}

// WithBreaker wraps p so its calls go through cb.
func WithBreaker(p Provider, cb *resilience.CircuitBreaker) Provider {
	return &breakerProvider{next: p, cb: cb}
}

func (b *breakerProvider) Search(ctx context.Context, query string) ([]string, error) {
	return resilience.ExecuteVal(ctx, b.cb, func(ctx context.Context) ([]string, error) {
		return b.next.Search(ctx, query)
	})
}
