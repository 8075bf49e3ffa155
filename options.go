package client

// This file defines functional options that configure the Client during
// construction. Options only record settings; New assembles the transport
// chain once all of them have been applied, so their order does not matter.

import (
	"fmt"
	"net/http"
	"time"

	"github.com/fanfou-go/client/internal/shardqueue"
)

// Option configures a Client during construction in New.
type Option func(*Client) error

// WithHTTPTimeout sets the underlying http.Client Timeout.
//
// Prefer per-request context deadlines where possible; this timeout bounds
// the total time spent on a single HTTP request. The value must be greater
// than zero.
func WithHTTPTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return fmt.Errorf("http timeout must be > 0")
		}
		c.http.Timeout = d
		return nil
	}
}

// WithHTTPClient uses a copy of hc as the base client. Its Transport (or
// http.DefaultTransport) ends up at the bottom of the transport chain.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		if hc == nil {
			return fmt.Errorf("nil http client")
		}
		cp := *hc
		c.http = &cp
		return nil
	}
}

// WithDebugLogging logs every request and response at debug level when
// enabled is true. Authorization headers are redacted but bodies are not;
// do not enable this in production.
func WithDebugLogging(enabled bool) Option {
	return func(c *Client) error {
		c.debug = c.debug || enabled
		return nil
	}
}

// WithOAuth1 signs every request with OAuth 1.0a using already issued
// credentials.
func WithOAuth1(consumerKey, consumerSecret, token, tokenSecret string) Option {
	return func(c *Client) error {
		if consumerKey == "" || consumerSecret == "" || token == "" || tokenSecret == "" {
			return fmt.Errorf("oauth1: consumer key/secret and token/secret are required")
		}
		c.oauth = &oauthCredentials{
			consumerKey:    consumerKey,
			consumerSecret: consumerSecret,
			token:          token,
			tokenSecret:    tokenSecret,
		}
		return nil
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) error {
		if ua == "" {
			return fmt.Errorf("user agent cannot be empty")
		}
		c.userAgent = ua
		return nil
	}
}

// WithLookupShards sets how many profile lookups LookupUsers runs in parallel.
func WithLookupShards(n int) Option {
	return func(c *Client) error {
		if n <= 0 {
			return fmt.Errorf("lookup shards must be > 0")
		}
		c.lookupCfg.Shards = n
		return nil
	}
}

// WithLookupRetries sets the maximum attempts per profile in LookupUsers.
// 1 disables retries.
func WithLookupRetries(maxAttempts int) Option {
	return func(c *Client) error {
		if maxAttempts <= 0 {
			return fmt.Errorf("lookup attempts must be > 0")
		}
		c.lookupCfg.MaxAttempts = maxAttempts
		return nil
	}
}

// WithLookupConfigFromEnv replaces the lookup executor settings with values
// from FANFOU_LOOKUP_* environment variables.
func WithLookupConfigFromEnv() Option {
	return func(c *Client) error {
		cfg, err := shardqueue.LoadConfig()
		if err != nil {
			return fmt.Errorf("lookup config: %w", err)
		}
		c.lookupCfg = cfg
		return nil
	}
}

// WithMaxWalkPages bounds how many pages WalkFollowers and WalkFriends fetch.
func WithMaxWalkPages(n int) Option {
	return func(c *Client) error {
		if n <= 0 {
			return fmt.Errorf("max walk pages must be > 0")
		}
		c.maxWalkPages = n
		return nil
	}
}
