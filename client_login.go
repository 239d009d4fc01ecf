package goAuthClient

import (
	"context"
	"net/http"
)

// Login authenticates with email and password. The CSRF cookie is primed
// first; the session becomes authenticated only after the credential pair is
// persisted.
func (c *Client) Login(ctx context.Context, email, password string) (*Profile, error) {
	c.beginOp()

	if err := c.bootstrapCSRF(ctx); err != nil {
		c.finishFailure(err)
		c.metrics.Inc(MetricLoginFailure)
		c.emit(ctx, AuditEvent{EventType: "login", Email: email, Success: false, Error: errString(err)})
		return nil, err
	}

	var resp AuthResponse
	if err := c.do(ctx, http.MethodPost, c.cfg.API.LoginPath, loginRequest{Email: email, Password: password}, &resp); err != nil {
		c.finishFailure(err)
		c.metrics.Inc(MetricLoginFailure)
		c.emit(ctx, AuditEvent{EventType: "login", Email: email, Success: false, Error: errString(err)})
		return nil, err
	}

	if err := c.establishSession(ctx, resp.Token, resp.User); err != nil {
		c.metrics.Inc(MetricLoginFailure)
		c.emit(ctx, AuditEvent{EventType: "login", Email: email, Success: false, Error: errString(err)})
		return nil, err
	}

	c.metrics.Inc(MetricLoginSuccess)
	c.emit(ctx, AuditEvent{EventType: "login", Email: email, Success: true})
	return resp.User, nil
}

func (c *Client) bootstrapCSRF(ctx context.Context) error {
	err := c.pipeline.BootstrapCSRF(ctx)
	if err != nil {
		c.metrics.Inc(MetricCSRFBootstrapFailure)
		return err
	}
	c.metrics.Inc(MetricCSRFBootstrap)
	return nil
}
