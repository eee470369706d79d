package search

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnwrapRedirect(t *testing.T) {
	tests := []struct {
		name string
		link string
		want string
	}{
		{
			name: "duckduckgo uddg",
			link: "https://duckduckgo.com/l/?uddg=https%3A%2F%2Fwww.amazon.com%2Fdp%2FB000&rut=abc",
			want: "https://www.amazon.com/dp/B000",
		},
		{
			name: "google url q",
			link: "https://www.google.com/url?q=https://iherb.com/pr/123&sa=U",
			want: "https://iherb.com/pr/123",
		},
		{
			name: "generic target",
			link: "https://out.example.net/go?target=http%3A%2F%2Fwell.ca%2Fproducts%2Fx.html",
			want: "http://well.ca/products/x.html",
		},
		{
			name: "plain link unchanged",
			link: "https://www.walmart.com/ip/123",
			want: "https://www.walmart.com/ip/123",
		},
		{
			name: "non url param unchanged",
			link: "https://shop.example.com/search?q=vitamin+c",
			want: "https://shop.example.com/search?q=vitamin+c",
		},
		{
			name: "product page with tracking param unchanged",
			link: "https://shop.example/p/widget?u=https://tracker.example/x",
			want: "https://shop.example/p/widget?u=https://tracker.example/x",
		},
		{
			name: "redirect path with trailing slash",
			link: "https://r.example.com/redirect/?dest=https%3A%2F%2Fwww.target.com%2Fp%2F1",
			want: "https://www.target.com/p/1",
		},
		{
			name: "non http target unchanged",
			link: "https://r.example.com/out?url=javascript%3Aalert(1)",
			want: "https://r.example.com/out?url=javascript%3Aalert(1)",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, UnwrapRedirect(tc.link))
		})
	}
}

func TestSameSite(t *testing.T) {
	tests := []struct {
		link string
		base string
		want bool
	}{
		{link: "https://duckduckgo.com/settings", base: "https://html.duckduckgo.com/html/", want: true},
		{link: "https://html.duckduckgo.com/html/?q=x", base: "https://html.duckduckgo.com/html/", want: true},
		{link: "https://www.bbc.co.uk/a", base: "https://search.bbc.co.uk/", want: true},
		{link: "https://shop.co.uk/a", base: "https://search.bbc.co.uk/", want: false},
		{link: "https://www.amazon.com/dp/1", base: "https://html.duckduckgo.com/html/", want: false},
		{link: "http://127.0.0.1:9001/p", base: "http://127.0.0.1:9000/html/", want: false},
		{link: "http://127.0.0.1:9000/p", base: "http://127.0.0.1:9000/html/", want: true},
		{link: "http://localhost:9001/p", base: "http://localhost:9000/", want: false},
	}

	for _, tc := range tests {
		t.Run(tc.link, func(t *testing.T) {
			link, err := url.Parse(tc.link)
			require.NoError(t, err)
			base, err := url.Parse(tc.base)
			require.NoError(t, err)
			assert.Equal(t, tc.want, sameSite(link, base))
		})
	}
}
