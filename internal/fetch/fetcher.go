// Package fetch retrieves candidate and search pages over HTTP with a fixed
// client identifier, a per-request deadline, a body size cap, and anti-bot
// block detection.
package fetch

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/catalog-resolver/internal/resilience"
)

// DefaultUserAgent identifies the resolver to the sites it visits.
const DefaultUserAgent = "catalog-resolver/1.0 (+product-url-verification)"

// ErrBlocked is returned when a response looks like an anti-bot challenge.
var ErrBlocked = eris.New("fetch: blocked")

// Config controls a Fetcher.
type Config struct {
	UserAgent    string
	Timeout      time.Duration
	MaxBodyBytes int64
	MaxAttempts  int
}

// Page is a successfully fetched HTML document.
type Page struct {
	// URL is the final URL after redirects.
	URL        string
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Fetcher performs GET requests for HTML pages.
type Fetcher struct {
	client *http.Client
	cfg    Config
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(f *Fetcher) { f.client = c }
}

// New creates a Fetcher. Zero config values fall back to defaults.
func New(cfg Config, opts ...Option) *Fetcher {
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 20 * time.Second
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = 2 << 20
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 1
	}

	f := &Fetcher{
		cfg: cfg,
		client: &http.Client{
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				DialContext: (&net.Dialer{
					Timeout: 10 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout: 10 * time.Second,
				MaxIdleConnsPerHost: 4,
			},
		},
	}
	for _, o := range opts {
		o(f)
	}
	return f
}

// UserAgent returns the client identifier sent with every request.
func (f *Fetcher) UserAgent() string { return f.cfg.UserAgent }

// Fetch GETs targetURL. Non-2xx responses and blocked pages are errors;
// transient failures are retried up to the configured attempt count.
func (f *Fetcher) Fetch(ctx context.Context, targetURL string) (*Page, error) {
	retry := resilience.FetchRetryConfig(f.cfg.MaxAttempts)
	retry.OnRetry = resilience.RetryLogger("fetch", targetURL)

	return resilience.DoVal(ctx, retry, func(ctx context.Context) (*Page, error) {
		return f.fetchOnce(ctx, targetURL)
	})
}

func (f *Fetcher) fetchOnce(ctx context.Context, targetURL string) (*Page, error) {
	ctx, cancel := context.WithTimeout(ctx, f.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "fetch: create request")
	}
	req.Header.Set("User-Agent", f.cfg.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "fetch: request")
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.cfg.MaxBodyBytes))
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, eris.Wrap(err, "fetch: read body")
	}

	if blocked, blockType := DetectBlock(resp, body); blocked {
		return nil, eris.Wrapf(ErrBlocked, "fetch: %s from %s", blockType, targetURL)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, resilience.StatusError("fetch", resp.StatusCode, targetURL)
	}

	return &Page{
		URL:        resp.Request.URL.String(),
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
	}, nil
}
