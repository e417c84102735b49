package hcloud

import (
	"github.com/go-logr/logr"
	"github.com/hetznercloud/hcloud-go/v2/hcloud"

	"github.com/imamik/opsretry/internal/config"
	"github.com/imamik/opsretry/internal/util/retry"
)

// Operation names used for retry profiles, logs and metrics.
const (
	OpActionWait   = "hcloud.action.wait"
	OpSSHKeyEnsure = "hcloud.sshkey.ensure"
	OpSSHKeyDelete = "hcloud.sshkey.delete"
)

// Client runs Hetzner Cloud API calls through retry profiles.
type Client struct {
	client  *hcloud.Client
	config  *config.Config
	handler retry.Handler
	logger  logr.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHCloudClient sets a custom hcloud client (useful for testing).
func WithHCloudClient(hc *hcloud.Client) ClientOption {
	return func(c *Client) {
		c.client = hc
	}
}

// WithConfig sets the retry configuration.
func WithConfig(cfg *config.Config) ClientOption {
	return func(c *Client) {
		c.config = cfg
	}
}

// WithHandler adds a handler that runs before the backoff wait of every
// retry, e.g. a metrics recorder.
func WithHandler(h retry.Handler) ClientOption {
	return func(c *Client) {
		c.handler = h
	}
}

// WithLogger sets the logger.
func WithLogger(l logr.Logger) ClientOption {
	return func(c *Client) {
		c.logger = l
	}
}

// NewClient creates a Client for the given API token.
func NewClient(token string, opts ...ClientOption) *Client {
	c := &Client{
		client: hcloud.NewClient(hcloud.WithToken(token), hcloud.WithApplication("opsretry", "")),
		config: config.Default(),
		logger: logr.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// profile returns the retry profile for operation and the handler to run
// between its attempts.
func (c *Client) profile(operation string) (config.Profile, retry.Handler) {
	p := c.config.Profile(operation)
	h := retry.Chain(
		c.handler,
		retry.LogHandler(c.logger.V(1)),
		p.Handler(retry.WithLogger(c.logger)),
	)
	return p, h
}
