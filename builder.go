package goAuthClient

import (
	"context"
	"errors"
	"net/http"
	"net/http/cookiejar"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MrEthical07/goAuthClient/credstore"
	"github.com/MrEthical07/goAuthClient/transport"
)

// Builder assembles a [Client]. Single use; Build fails on reuse.
type Builder struct {
	config     Config
	redis      redis.UniversalClient
	httpClient *http.Client
	nav        Navigator
	auditSink  AuditSink

	sleep func(ctx context.Context, d time.Duration) error

	built bool
}

// New starts a builder seeded with defaults.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig replaces the whole configuration.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithRedis sets the credential store backend. Required.
func (b *Builder) WithRedis(client redis.UniversalClient) *Builder {
	b.redis = client
	return b
}

// WithHTTPClient replaces the default HTTP client. The caller then owns the
// cookie jar and timeout; the CSRF handshake needs a jar to work.
func (b *Builder) WithHTTPClient(client *http.Client) *Builder {
	b.httpClient = client
	return b
}

// WithNavigator sets the host application's navigation hooks. Required.
func (b *Builder) WithNavigator(nav Navigator) *Builder {
	b.nav = nav
	return b
}

// WithAuditSink sets the audit destination and enables the dispatcher.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	b.config.Audit.Enabled = sink != nil
	return b
}

// WithMetricsEnabled toggles the counter set.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// WithLatencyHistograms toggles the request latency histogram.
func (b *Builder) WithLatencyHistograms(enabled bool) *Builder {
	b.config.Metrics.EnableLatencyHistograms = enabled
	return b
}

// withSleep overrides the retry delay primitive. Test seam.
func (b *Builder) withSleep(sleep func(ctx context.Context, d time.Duration) error) *Builder {
	b.sleep = sleep
	return b
}

// Build validates the configuration, wires the store and pipeline, and loads
// any persisted session so the client starts authenticated when a prior run
// left credentials behind.
func (b *Builder) Build() (*Client, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := cloneConfig(b.config)

	if b.redis == nil {
		return nil, errors.New("redis client required")
	}
	if b.nav == nil {
		return nil, errors.New("navigator required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	httpClient := b.httpClient
	if httpClient == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, err
		}
		httpClient = &http.Client{
			Jar:     jar,
			Timeout: cfg.API.RequestTimeout,
		}
	}

	client := &Client{
		cfg:     cfg,
		store:   credstore.NewStore(b.redis, cfg.Storage.Prefix, cfg.Storage.TokenKey, cfg.Storage.UserKey),
		nav:     b.nav,
		metrics: NewMetrics(cfg.Metrics),
		audit:   newAuditDispatcher(cfg.Audit, b.auditSink),
	}

	client.pipeline = transport.New(transport.Params{
		Client: httpClient,
		Config: transport.Config{
			BaseURL:            cfg.API.BaseURL,
			CSRFCookiePath:     cfg.API.CSRFCookiePath,
			MaxRetries:         cfg.Retry.MaxRetries,
			InitialRetryDelay:  cfg.Retry.InitialDelay,
			PublicPaths:        cfg.Routes.PublicPaths,
			AuthRedirectExempt: cfg.Routes.AuthRedirectExempt,
		},
		Tokens:         client,
		Navigator:      b.nav,
		OnUnauthorized: client.handleUnauthorized,
		Sleep:          b.sleep,
		Hooks:          client.pipelineHooks(),
	})

	client.guard = newGuard(client, cfg.Guard)

	client.restoreSession(context.Background())

	b.built = true

	return client, nil
}

// pipelineHooks routes transport events into metrics and audit.
func (c *Client) pipelineHooks() transport.Hooks {
	return transport.Hooks{
		RetryScheduled: func(attempt int, delay time.Duration) {
			c.metrics.Inc(MetricThrottleRetry)
			c.emit(context.Background(), AuditEvent{
				EventType: "throttle_retry",
				Success:   true,
				Metadata: map[string]string{
					"attempt": strconv.Itoa(attempt),
					"delay":   delay.String(),
				},
			})
		},
		RetriesExhausted: func(method, path string) {
			c.metrics.Inc(MetricThrottleExhausted)
			c.emit(context.Background(), AuditEvent{
				EventType: "throttle_exhausted",
				Path:      path,
				Success:   false,
				Metadata:  map[string]string{"method": method},
			})
		},
		AuthRedirect: func(location string, suppressed bool) {
			if suppressed {
				c.metrics.Inc(MetricAuthRedirectSuppressed)
			} else {
				c.metrics.Inc(MetricAuthRedirect)
			}
			c.emit(context.Background(), AuditEvent{
				EventType: "auth_redirect",
				Location:  location,
				Success:   !suppressed,
			})
		},
	}
}

// restoreSession seeds in-memory state from the credential store. Store
// reads fail open, so an unreachable backend starts the client signed out.
func (c *Client) restoreSession(ctx context.Context) {
	token, _ := c.store.LoadToken(ctx)
	user, _ := c.store.LoadUser(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Token = token
	c.state.User = user
	c.state.IsAuthenticated = token != ""
}

