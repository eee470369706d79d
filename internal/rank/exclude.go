package rank

import (
	"net/url"
	"path"
	"strings"
)

// DefaultExcludePatterns name path segments of pages that are never product
// pages.
var DefaultExcludePatterns = []string{
	"cart", "checkout", "basket",
	"login", "logout", "signin", "sign-in", "register",
	"account", "accounts", "my-account",
	"faq", "faqs", "help",
	"blog", "blogs", "article", "articles", "news",
	"*policy", "policies", "privacy", "terms",
}

// Excluder drops candidate URLs whose path contains a non-product segment.
// Each pattern is a path.Match glob tested against the whole segment, the
// segment without its file extension, and the segment's first '-' or '_'
// delimited word. So "cart" excludes "/cart", "/cart.php" and
// "/cart-summary" but keeps "/products/cartilage-support".
type Excluder struct {
	patterns []string
}

// NewExcluder creates an Excluder from segment globs. Falls back to
// DefaultExcludePatterns if none are provided.
func NewExcluder(patterns []string) *Excluder {
	var cleaned []string
	for _, p := range patterns {
		if p = strings.ToLower(strings.Trim(strings.TrimSpace(p), "/")); p != "" {
			cleaned = append(cleaned, p)
		}
	}
	if len(cleaned) == 0 {
		cleaned = DefaultExcludePatterns
	}
	return &Excluder{patterns: cleaned}
}

// Patterns returns the configured patterns.
func (e *Excluder) Patterns() []string {
	return e.patterns
}

// IsExcluded reports whether rawURL is unparseable or has a path segment
// matching any pattern.
func (e *Excluder) IsExcluded(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return true
	}
	for _, seg := range strings.Split(strings.ToLower(u.Path), "/") {
		if seg != "" && e.matchSegment(seg) {
			return true
		}
	}
	return false
}

func (e *Excluder) matchSegment(seg string) bool {
	forms := segmentForms(seg)
	for _, pattern := range e.patterns {
		for _, form := range forms {
			if ok, _ := path.Match(pattern, form); ok {
				return true
			}
		}
	}
	return false
}

// segmentForms returns seg, seg without its extension, and the first word
// of that stem.
func segmentForms(seg string) []string {
	forms := []string{seg}
	stem := seg
	if i := strings.LastIndexByte(seg, '.'); i > 0 {
		stem = seg[:i]
		forms = append(forms, stem)
	}
	if i := strings.IndexAny(stem, "-_"); i > 0 {
		forms = append(forms, stem[:i])
	}
	return forms
}
