// Package search issues catalog queries against an HTML web search surface
// and turns the result markup into candidate URLs.
package search

import (
	"bytes"
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/catalog-resolver/internal/fetch"
)

// Defaults for the HTML search surface.
const (
	DefaultBaseURL        = "https://html.duckduckgo.com/html/"
	DefaultResultSelector = "a.result__a"
)

// Provider runs one search query and returns result links in result order.
type Provider interface {
	Search(ctx context.Context, query string) ([]string, error)
}

// Option configures an HTMLProvider.
type Option func(*HTMLProvider)

// WithBaseURL overrides the search surface URL.
func WithBaseURL(u string) Option {
	return func(p *HTMLProvider) { p.baseURL = u }
}

// WithResultSelector overrides the CSS selector for result anchors.
func WithResultSelector(sel string) Option {
	return func(p *HTMLProvider) { p.selector = sel }
}

// HTMLProvider scrapes an HTML search results page.
type HTMLProvider struct {
	fetcher  *fetch.Fetcher
	baseURL  string
	selector string
}

// NewHTMLProvider creates a provider that fetches result pages with f.
func NewHTMLProvider(f *fetch.Fetcher, opts ...Option) *HTMLProvider {
	p := &HTMLProvider{
		fetcher:  f,
		baseURL:  DefaultBaseURL,
		selector: DefaultResultSelector,
	}
	for _, o := range opts {
		o(p)
	}
	if p.baseURL == "" {
		p.baseURL = DefaultBaseURL
	}
	if p.selector == "" {
		p.selector = DefaultResultSelector
	}
	return p
}

// Search issues a single GET for query and extracts outbound result links,
// unwrapping redirect wrappers and dropping duplicates.
func (p *HTMLProvider) Search(ctx context.Context, query string) ([]string, error) {
	searchURL, err := p.queryURL(query)
	if err != nil {
		return nil, err
	}

	page, err := p.fetcher.Fetch(ctx, searchURL)
	if err != nil {
		return nil, eris.Wrapf(err, "search: query %q", query)
	}

	links, err := ExtractLinks(page.Body, page.URL, p.selector)
	if err != nil {
		return nil, err
	}

	zap.L().Debug("search: results",
		zap.String("query", query),
		zap.Int("links", len(links)),
	)
	return links, nil
}

func (p *HTMLProvider) queryURL(query string) (string, error) {
	u, err := url.Parse(p.baseURL)
	if err != nil {
		return "", eris.Wrap(err, "search: parse base url")
	}
	q := u.Query()
	q.Set("q", query)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// ExtractLinks parses a results page and returns absolute http(s) links that
// leave the search site, in document order. Anchors matching selector are
// used; when none match, every outbound anchor on the page is used instead.
func ExtractLinks(body []byte, pageURL, selector string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, eris.Wrap(err, "search: parse results")
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, eris.Wrap(err, "search: parse page url")
	}

	anchors := doc.Find(selector)
	if anchors.Length() == 0 {
		anchors = doc.Find("a[href]")
	}

	seen := make(map[string]bool)
	var links []string
	anchors.Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok {
			return
		}
		link := resolveLink(base, href)
		if link == "" || seen[link] {
			return
		}
		seen[link] = true
		links = append(links, link)
	})
	return links, nil
}

// resolveLink makes href absolute, unwraps redirects, and drops links that
// are not http(s) or that stay on the search site. Links served by the search
// site itself are unwrapped whatever their path.
func resolveLink(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}

	abs := base.ResolveReference(ref)
	link := abs.String()
	if target := redirectTarget(abs); target != "" && sameSite(abs, base) {
		link = target
	} else {
		link = UnwrapRedirect(link)
	}

	u, err := url.Parse(link)
	if err != nil || !isHTTPURL(link) || sameSite(u, base) {
		return ""
	}
	return link
}
