package goAuthClient

import (
	"context"
	"sync"
	"time"
)

// DenyReason explains a guard denial.
type DenyReason int

const (
	// DenyNone means the guard allowed the request.
	DenyNone DenyReason = iota
	// DenyNoCredentials means no session is held locally.
	DenyNoCredentials
	// DenyTokenExpired means the local expiry peek rejected the token.
	DenyTokenExpired
	// DenyValidationFailed means the server refused to vouch for the session.
	DenyValidationFailed
)

func (r DenyReason) String() string {
	switch r {
	case DenyNone:
		return "none"
	case DenyNoCredentials:
		return "no_credentials"
	case DenyTokenExpired:
		return "token_expired"
	case DenyValidationFailed:
		return "validation_failed"
	default:
		return "unknown"
	}
}

// Guard gates protected surfaces. Within the revalidation interval it trusts
// local state; outside it, one server round trip re-confirms the session.
// The interval gate exists so every protected navigation does not become an
// API call.
type Guard struct {
	client   *Client
	interval time.Duration
	expiry   bool
	now      func() time.Time

	mu        sync.Mutex
	lastCheck time.Time
}

func newGuard(client *Client, cfg GuardConfig) *Guard {
	return &Guard{
		client:   client,
		interval: cfg.RevalidateInterval,
		expiry:   cfg.CheckTokenExpiry,
		now:      time.Now,
	}
}

// Check decides whether the caller holds a usable session. A denial comes
// with its reason; an allowed call always returns DenyNone.
func (g *Guard) Check(ctx context.Context) (bool, DenyReason) {
	state := g.client.State()
	if !state.IsAuthenticated || state.Token == "" {
		g.client.metrics.Inc(MetricGuardDeniedNoCredentials)
		return false, DenyNoCredentials
	}

	if g.expiry && tokenExpired(state.Token, g.now()) {
		g.client.metrics.Inc(MetricTokenExpiredLocally)
		g.client.handleUnauthorized(ctx)
		g.client.emit(ctx, AuditEvent{EventType: "guard_denied", Success: false, Error: DenyTokenExpired.String()})
		return false, DenyTokenExpired
	}

	if g.withinCooldown() {
		g.client.metrics.Inc(MetricGuardCooldownSkip)
		g.client.metrics.Inc(MetricGuardAllowed)
		return true, DenyNone
	}

	if _, err := g.client.CurrentUser(ctx); err != nil {
		g.client.metrics.Inc(MetricGuardDeniedValidation)
		g.client.emit(ctx, AuditEvent{EventType: "guard_denied", Success: false, Error: errString(err)})
		return false, DenyValidationFailed
	}

	g.markChecked()
	g.client.metrics.Inc(MetricGuardRevalidate)
	g.client.metrics.Inc(MetricGuardAllowed)
	return true, DenyNone
}

// RequireAuth runs Check and, on denial, sends the navigator to login.
func (g *Guard) RequireAuth(ctx context.Context) bool {
	allowed, _ := g.Check(ctx)
	if !allowed {
		g.client.nav.RedirectToLogin()
	}
	return allowed
}

func (g *Guard) withinCooldown() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.lastCheck.IsZero() {
		return false
	}
	return g.now().Sub(g.lastCheck) < g.interval
}

func (g *Guard) markChecked() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.lastCheck = g.now()
}
