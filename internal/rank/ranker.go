// Package rank orders search candidates by a record's domain preferences.
package rank

import (
	"net/url"
	"sort"
	"strings"

	"github.com/sells-group/catalog-resolver/internal/model"
)

// Ranker turns raw candidate URLs into weighted, ordered SearchCandidates.
type Ranker struct {
	sources  map[string]string
	defaults []string
	excluder *Excluder
}

// NewRanker creates a Ranker. sources maps source keys to retailer domains;
// defaults is the source key order used when a record declares none.
func NewRanker(sources map[string]string, defaults []string, excluder *Excluder) *Ranker {
	if excluder == nil {
		excluder = NewExcluder(nil)
	}
	normalized := make(map[string]string, len(sources))
	for k, v := range sources {
		normalized[strings.ToLower(strings.TrimSpace(k))] = NormalizeDomain(v)
	}
	return &Ranker{sources: normalized, defaults: defaults, excluder: excluder}
}

// Preferences returns the record's domain preference list: brand_domain
// first, then the declared source keys (or the defaults) mapped to domains.
// A key containing a dot is taken as a domain; unknown keys are skipped.
func (r *Ranker) Preferences(rec *model.CatalogRecord) []string {
	var prefs []string
	seen := make(map[string]bool)
	add := func(domain string) {
		if domain != "" && !seen[domain] {
			seen[domain] = true
			prefs = append(prefs, domain)
		}
	}

	add(NormalizeDomain(rec.BrandDomain))

	keys := splitKeys(rec.SourcePriority)
	if len(keys) == 0 {
		keys = splitKeys(strings.Join(r.defaults, ","))
	}
	for _, key := range keys {
		if strings.Contains(key, ".") {
			add(NormalizeDomain(key))
			continue
		}
		add(r.sources[key])
	}
	return prefs
}

// Rank drops excluded URLs, deduplicates by exact URL, weights each
// candidate by the position of the first preference domain its host matches,
// and sorts by weight descending. Ties keep first-seen order.
func (r *Ranker) Rank(rec *model.CatalogRecord, urls []string) []model.SearchCandidate {
	prefs := r.Preferences(rec)

	seen := make(map[string]bool)
	candidates := make([]model.SearchCandidate, 0, len(urls))
	for _, u := range urls {
		if seen[u] || r.excluder.IsExcluded(u) {
			continue
		}
		seen[u] = true
		candidates = append(candidates, model.SearchCandidate{URL: u, Weight: weight(prefs, u)})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Weight > candidates[j].Weight
	})
	return candidates
}

func weight(prefs []string, rawURL string) int {
	u, err := url.Parse(rawURL)
	if err != nil {
		return 0
	}
	host := strings.ToLower(u.Hostname())
	for i, domain := range prefs {
		if HostMatches(host, domain) {
			return len(prefs) - i
		}
	}
	return 0
}

// HostMatches reports whether host equals domain or is a subdomain of it.
func HostMatches(host, domain string) bool {
	return host == domain || strings.HasSuffix(host, "."+domain)
}

// NormalizeDomain reduces a domain or URL to a bare lowercase host without
// a leading "www.".
func NormalizeDomain(raw string) string {
	d := strings.ToLower(strings.TrimSpace(raw))
	if d == "" {
		return ""
	}
	if strings.Contains(d, "://") {
		if u, err := url.Parse(d); err == nil {
			d = u.Hostname()
		}
	}
	d = strings.TrimSuffix(strings.SplitN(d, "/", 2)[0], ".")
	return strings.TrimPrefix(d, "www.")
}

func splitKeys(s string) []string {
	var keys []string
	for _, k := range strings.Split(s, ",") {
		if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}
