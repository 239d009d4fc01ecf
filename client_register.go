package goAuthClient

import (
	"context"
	"net/http"
)

// Register creates an account and signs the new user in. A confirmation
// mismatch is rejected locally with a field-level validation error before any
// network traffic.
func (c *Client) Register(ctx context.Context, in RegisterInput) (*Profile, error) {
	c.beginOp()

	if in.Password != in.PasswordConfirmation {
		err := &APIError{
			Status:  http.StatusUnprocessableEntity,
			Message: "The given data was invalid.",
			Errors: map[string][]string{
				"password_confirmation": {"The password confirmation does not match."},
			},
		}
		c.finishFailure(err)
		c.metrics.Inc(MetricRegisterValidationRejected)
		c.emit(ctx, AuditEvent{EventType: "register", Email: in.Email, Success: false, Error: err.Message})
		return nil, err
	}

	if err := c.bootstrapCSRF(ctx); err != nil {
		c.finishFailure(err)
		c.metrics.Inc(MetricRegisterFailure)
		c.emit(ctx, AuditEvent{EventType: "register", Email: in.Email, Success: false, Error: errString(err)})
		return nil, err
	}

	var resp AuthResponse
	if err := c.do(ctx, http.MethodPost, c.cfg.API.RegisterPath, in, &resp); err != nil {
		c.finishFailure(err)
		c.metrics.Inc(MetricRegisterFailure)
		c.emit(ctx, AuditEvent{EventType: "register", Email: in.Email, Success: false, Error: errString(err)})
		return nil, err
	}

	if err := c.establishSession(ctx, resp.Token, resp.User); err != nil {
		c.metrics.Inc(MetricRegisterFailure)
		c.emit(ctx, AuditEvent{EventType: "register", Email: in.Email, Success: false, Error: errString(err)})
		return nil, err
	}

	c.metrics.Inc(MetricRegisterSuccess)
	c.emit(ctx, AuditEvent{EventType: "register", Email: in.Email, Success: true})
	return resp.User, nil
}
