package search

import (
	"net"
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// redirectParams are query parameters that redirect wrappers use to carry
// the real target URL.
var redirectParams = []string{"uddg", "u", "url", "q", "target", "dest"}

// redirectPaths are the endpoints redirect wrappers are served from.
var redirectPaths = map[string]bool{
	"/l":        true,
	"/url":      true,
	"/link":     true,
	"/redirect": true,
	"/out":      true,
	"/go":       true,
	"/r":        true,
}

// UnwrapRedirect returns the target of a redirect-wrapper link, or the link
// unchanged. A link is a wrapper when it is served from a known redirect
// endpoint and carries an encoded http(s) target; query parameters on any
// other page are left alone.
func UnwrapRedirect(link string) string {
	u, err := url.Parse(link)
	if err != nil || !isRedirectPath(u.Path) {
		return link
	}
	if target := redirectTarget(u); target != "" {
		return target
	}
	return link
}

func isRedirectPath(p string) bool {
	p = strings.ToLower(strings.TrimSuffix(p, "/"))
	return redirectPaths[p]
}

// redirectTarget returns the first http(s) URL carried in a redirect
// parameter of u, or "".
func redirectTarget(u *url.URL) string {
	query := u.Query()
	for _, key := range redirectParams {
		target := strings.TrimSpace(query.Get(key))
		if isHTTPURL(target) {
			return target
		}
	}
	return ""
}

// sameSite reports whether u is served by the same site as base: the same
// host:port, or a host under the same registrable domain, so
// duckduckgo.com and html.duckduckgo.com are one site. IP hosts only match
// exactly.
func sameSite(u, base *url.URL) bool {
	if strings.EqualFold(u.Host, base.Host) {
		return true
	}
	host, baseHost := strings.ToLower(u.Hostname()), strings.ToLower(base.Hostname())
	if host == "" || baseHost == "" || net.ParseIP(host) != nil || net.ParseIP(baseHost) != nil {
		return false
	}
	site, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return false
	}
	baseSite, err := publicsuffix.EffectiveTLDPlusOne(baseHost)
	if err != nil {
		return false
	}
	return site == baseSite
}

func isHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}
