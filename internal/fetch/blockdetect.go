package fetch

import (
	"net/http"
	"strings"
)

// BlockType describes the kind of anti-bot block detected on a response.
type BlockType string

// Block types.
const (
	BlockNone       BlockType = ""
	BlockCloudflare BlockType = "cloudflare"
	BlockCaptcha    BlockType = "captcha"
	BlockJSShell    BlockType = "js_shell"
)

// challengeBodyLimit bounds the body size at which captcha markers count.
// Full product pages often embed a captcha widget for their review form.
const challengeBodyLimit = 16 << 10

// DetectBlock checks a response for signs of anti-bot protection.
func DetectBlock(resp *http.Response, body []byte) (bool, BlockType) {
	if resp == nil {
		return false, BlockNone
	}

	challengeStatus := resp.StatusCode == http.StatusForbidden ||
		resp.StatusCode == http.StatusTooManyRequests ||
		resp.StatusCode == http.StatusServiceUnavailable

	if challengeStatus {
		if resp.Header.Get("cf-ray") != "" || resp.Header.Get("cf-cache-status") != "" ||
			strings.EqualFold(resp.Header.Get("server"), "cloudflare") {
			return true, BlockCloudflare
		}
	}

	lower := strings.ToLower(string(body))

	if strings.Contains(lower, "checking your browser") ||
		strings.Contains(lower, "cf-browser-verification") ||
		(strings.Contains(lower, "cloudflare") && strings.Contains(lower, "challenge")) {
		return true, BlockCloudflare
	}

	if challengeStatus || len(body) < challengeBodyLimit {
		for _, marker := range []string{"captcha", "robot check", "are you a robot"} {
			if strings.Contains(lower, marker) {
				return true, BlockCaptcha
			}
		}
	}

	// JS-only shell: tiny body that only asks for javascript or redirects.
	if len(body) < 2000 {
		if strings.Contains(lower, "<noscript") && strings.Contains(lower, "javascript") {
			return true, BlockJSShell
		}
		if strings.Contains(lower, `http-equiv="refresh"`) {
			return true, BlockJSShell
		}
	}

	return false, BlockNone
}
