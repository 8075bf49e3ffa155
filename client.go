package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/fanfou-go/client/internal/api"
	"github.com/fanfou-go/client/internal/config"
	"github.com/fanfou-go/client/internal/shardqueue"
)

// DefaultBaseURL is the public API endpoint.
const DefaultBaseURL = config.DefaultBaseURL

const defaultUserAgent = "fanfou-go-client/1.0"

// --------------------------------------------------------------------
// Client core
// --------------------------------------------------------------------

// Client is a read-only client for the users resource. It is safe for
// concurrent use.
type Client struct {
	baseURL   string
	http      *http.Client
	userAgent string
	debug     bool
	oauth     *oauthCredentials

	lookupCfg    shardqueue.Config
	maxWalkPages int

	mu     sync.Mutex
	exec   executor // started on first LookupUsers
	closed bool
}

// New constructs a Client for baseURL, e.g. DefaultBaseURL.
// Additional options can be provided via functional arguments.
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("baseURL cannot be empty")
	}
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid baseURL %q", baseURL)
	}

	c := &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		http:         &http.Client{Timeout: 30 * time.Second},
		userAgent:    defaultUserAgent,
		lookupCfg:    shardqueue.Config{Shards: 4, QueueSize: 128, MaxAttempts: 3},
		maxWalkPages: 100,
	}

	// Auto-enable debug via env variable without changing code.
	if debugLoggingRequested() {
		c.debug = true
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	c.installTransport()
	return c, nil
}

// NewFromEnv builds a Client from FANFOU_* environment variables. Explicit
// options are applied after the environment.
func NewFromEnv(opts ...Option) (*Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return New(cfg.BaseURL, append(OptionsFromConfig(cfg), opts...)...)
}

// OptionsFromConfig maps a loaded environment configuration to options.
// The base URL is left to the caller.
func OptionsFromConfig(cfg *config.Config) []Option {
	opts := []Option{WithHTTPTimeout(cfg.HTTPTimeout), WithDebugLogging(cfg.Debug)}
	if cfg.HasOAuth() {
		opts = append(opts, WithOAuth1(cfg.ConsumerKey, cfg.ConsumerSecret, cfg.AccessToken, cfg.AccessSecret))
	}
	if cfg.UserAgent != "" {
		opts = append(opts, WithUserAgent(cfg.UserAgent))
	}
	return opts
}

// BaseURL returns the API root requests are sent to.
func (c *Client) BaseURL() string { return c.baseURL }

// Close stops the lookup executor (if started). Safe to call multiple times.
func (c *Client) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	exec := c.exec
	c.mu.Unlock()

	if exec != nil {
		exec.Stop()
	}
	return nil
}

// --------------------------------------------------------------------
// User operations - delegated to internal/api
// --------------------------------------------------------------------

// GetUserProfile fetches the profile of userID (GET /users/show.json).
func (c *Client) GetUserProfile(ctx context.Context, userID string) (*User, error) {
	return api.ShowUser(ctx, c.http, c.baseURL, userID)
}

// GetUserFollowers fetches one page of the accounts following id
// (GET /users/followers.json).
func (c *Client) GetUserFollowers(ctx context.Context, id string, paging Paging) (*ResponseList, error) {
	return api.UsersFollowers(ctx, c.http, c.baseURL, id, paging)
}

// GetUserFriends fetches one page of the accounts id follows
// (GET /users/friends.json).
func (c *Client) GetUserFriends(ctx context.Context, id string, paging Paging) (*ResponseList, error) {
	return api.UsersFriends(ctx, c.http, c.baseURL, id, paging)
}
