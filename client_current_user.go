package goAuthClient

import (
	"context"
	"net/http"
)

// CurrentUser fetches the account behind the stored token and refreshes the
// cached profile. Any failure evicts the session: a token the server will
// not vouch for is not a session.
func (c *Client) CurrentUser(ctx context.Context) (*Profile, error) {
	c.beginOp()

	var user Profile
	if err := c.do(ctx, http.MethodGet, c.cfg.API.UserPath, nil, &user); err != nil {
		_ = c.store.Clear(ctx)
		c.evictSession(err)
		c.metrics.Inc(MetricCurrentUserFailure)
		c.emit(ctx, AuditEvent{EventType: "current_user", Success: false, Error: errString(err)})
		return nil, err
	}

	token, _ := c.Token(ctx)
	if err := c.establishSession(ctx, token, &user); err != nil {
		c.metrics.Inc(MetricCurrentUserFailure)
		c.emit(ctx, AuditEvent{EventType: "current_user", Success: false, Error: errString(err)})
		return nil, err
	}

	c.metrics.Inc(MetricCurrentUserSuccess)
	c.emit(ctx, AuditEvent{EventType: "current_user", Success: true})
	return user.Clone(), nil
}
