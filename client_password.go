package goAuthClient

import (
	"context"
	"net/http"
)

// ForgotPassword asks the server to email a reset link. The returned message
// is the server's confirmation text.
func (c *Client) ForgotPassword(ctx context.Context, email string) (string, error) {
	c.beginOp()

	if err := c.bootstrapCSRF(ctx); err != nil {
		c.finishFailure(err)
		return "", err
	}

	var resp messageResponse
	if err := c.do(ctx, http.MethodPost, c.cfg.API.ForgotPasswordPath, emailRequest{Email: email}, &resp); err != nil {
		c.finishFailure(err)
		c.emit(ctx, AuditEvent{EventType: "password_forgot", Email: email, Success: false, Error: errString(err)})
		return "", err
	}

	c.finishSuccess()
	c.metrics.Inc(MetricPasswordForgotRequest)
	c.emit(ctx, AuditEvent{EventType: "password_forgot", Email: email, Success: true})
	return resp.Message, nil
}

// ResetPassword completes an emailed reset flow. A confirmation mismatch is
// rejected locally before any network traffic.
func (c *Client) ResetPassword(ctx context.Context, in ResetPasswordInput) (string, error) {
	c.beginOp()

	if err := confirmationError(in.Password, in.PasswordConfirmation); err != nil {
		c.finishFailure(err)
		c.metrics.Inc(MetricPasswordResetFailure)
		return "", err
	}

	if err := c.bootstrapCSRF(ctx); err != nil {
		c.finishFailure(err)
		c.metrics.Inc(MetricPasswordResetFailure)
		return "", err
	}

	var resp messageResponse
	if err := c.do(ctx, http.MethodPost, c.cfg.API.ResetPasswordPath, in, &resp); err != nil {
		c.finishFailure(err)
		c.metrics.Inc(MetricPasswordResetFailure)
		c.emit(ctx, AuditEvent{EventType: "password_reset", Email: in.Email, Success: false, Error: errString(err)})
		return "", err
	}

	c.finishSuccess()
	c.metrics.Inc(MetricPasswordResetSuccess)
	c.emit(ctx, AuditEvent{EventType: "password_reset", Email: in.Email, Success: true})
	return resp.Message, nil
}

// UpdatePassword changes the signed-in user's password.
func (c *Client) UpdatePassword(ctx context.Context, in UpdatePasswordInput) (string, error) {
	c.beginOp()

	if err := confirmationError(in.Password, in.PasswordConfirmation); err != nil {
		c.finishFailure(err)
		c.metrics.Inc(MetricPasswordUpdateFailure)
		return "", err
	}

	if err := c.bootstrapCSRF(ctx); err != nil {
		c.finishFailure(err)
		c.metrics.Inc(MetricPasswordUpdateFailure)
		return "", err
	}

	var resp messageResponse
	if err := c.do(ctx, http.MethodPut, c.cfg.API.UpdatePasswordPath, in, &resp); err != nil {
		c.finishFailure(err)
		c.metrics.Inc(MetricPasswordUpdateFailure)
		c.emit(ctx, AuditEvent{EventType: "password_update", Success: false, Error: errString(err)})
		return "", err
	}

	c.finishSuccess()
	c.metrics.Inc(MetricPasswordUpdateSuccess)
	c.emit(ctx, AuditEvent{EventType: "password_update", Success: true})
	return resp.Message, nil
}

func confirmationError(password, confirmation string) error {
	if password == confirmation {
		return nil
	}
	return &APIError{
		Status:  http.StatusUnprocessableEntity,
		Message: "The given data was invalid.",
		Errors: map[string][]string{
			"password_confirmation": {"The password confirmation does not match."},
		},
	}
}
