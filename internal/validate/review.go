package validate

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// FindReviewAnchor returns the fragment of the page's reviews section: the
// first element whose id mentions "review", else the first in-page link
// whose fragment mentions it. Returns "" when the page has neither.
func FindReviewAnchor(doc *goquery.Document) string {
	var anchor string
	doc.Find("[id]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		id := strings.TrimSpace(s.AttrOr("id", ""))
		if mentionsReview(id) {
			anchor = id
			return false
		}
		return true
	})
	if anchor != "" {
		return anchor
	}

	doc.Find(`a[href^="#"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		frag := strings.TrimSpace(strings.TrimPrefix(s.AttrOr("href", ""), "#"))
		if mentionsReview(frag) {
			anchor = frag
			return false
		}
		return true
	})
	return anchor
}

// mentionsReview reports whether s names reviews. "preview" does not count.
func mentionsReview(s string) bool {
	lower := strings.ReplaceAll(strings.ToLower(s), "preview", "")
	return strings.Contains(lower, "review")
}

// withFragment returns rawURL with its fragment replaced by frag.
func withFragment(rawURL, frag string) string {
	if frag == "" {
		return rawURL
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	u.Fragment = frag
	u.RawFragment = ""
	return u.String()
}
