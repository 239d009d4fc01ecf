package goAuthClient

import (
	"context"
	"net/http"
)

// Logout ends the session. The server call is best effort: whatever the
// backend says, local credentials are purged and the call reports success.
func (c *Client) Logout(ctx context.Context) error {
	c.beginOp()

	serverErr := c.bootstrapCSRF(ctx)
	if serverErr == nil {
		serverErr = c.do(ctx, http.MethodPost, c.cfg.API.LogoutPath, nil, nil)
	}
	if serverErr != nil {
		c.metrics.Inc(MetricLogoutServerError)
	}

	// Purge regardless of what the server said.
	_ = c.store.Clear(ctx)
	c.clearSession()

	c.metrics.Inc(MetricLogout)
	c.emit(ctx, AuditEvent{EventType: "logout", Success: true, Error: errString(serverErr)})
	return nil
}
