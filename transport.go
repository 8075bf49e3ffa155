package client

import (
	"context"
	"net/http"

	"github.com/dghubble/oauth1"
	"github.com/google/uuid"
)

// RequestIDHeader carries a per-request correlation id.
const RequestIDHeader = "X-Request-ID"

type oauthCredentials struct {
	consumerKey    string
	consumerSecret string
	token          string
	tokenSecret    string
}

// installTransport builds the chain, outermost first:
// decoratingTransport → OAuth 1.0a signer → debugTransport → base.
// The debug transport therefore sees the request exactly as sent.
func (c *Client) installTransport() {
	base := c.http.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	if c.debug {
		base = &debugTransport{base: base}
	}
	if c.oauth != nil {
		cfg := oauth1.NewConfig(c.oauth.consumerKey, c.oauth.consumerSecret)
		token := oauth1.NewToken(c.oauth.token, c.oauth.tokenSecret)
		ctx := context.WithValue(context.Background(), oauth1.HTTPClient, &http.Client{Transport: base})
		base = cfg.Client(ctx, token).Transport
	}
	c.http.Transport = &decoratingTransport{base: base, userAgent: c.userAgent}
}

// decoratingTransport sets User-Agent and X-Request-ID on every request.
type decoratingTransport struct {
	base      http.RoundTripper
	userAgent string
}

func (t *decoratingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// Clone the request to avoid modifying the original
	cloned := req.Clone(req.Context())
	cloned.Header.Set("User-Agent", t.userAgent)
	if cloned.Header.Get(RequestIDHeader) == "" {
		cloned.Header.Set(RequestIDHeader, uuid.NewString())
	}
	return t.base.RoundTrip(cloned)
}
