package internaldefs

import (
	goAuthClient "github.com/MrEthical07/goAuthClient"
)

// CounterDef binds a metric ID to its stable exported name.
type CounterDef struct {
	ID   goAuthClient.MetricID
	Name string
	Help string
}

// HistogramDef binds a histogram metric ID to its stable exported name.
type HistogramDef struct {
	ID   goAuthClient.MetricID
	Name string
	Help string
}

// CounterDefs enumerates every exported counter.
var CounterDefs = []CounterDef{
	{ID: goAuthClient.MetricLoginSuccess, Name: "goauthclient_login_success_total", Help: "Successful login attempts."},
	{ID: goAuthClient.MetricLoginFailure, Name: "goauthclient_login_failure_total", Help: "Failed login attempts."},
	{ID: goAuthClient.MetricRegisterSuccess, Name: "goauthclient_register_success_total", Help: "Successful registrations."},
	{ID: goAuthClient.MetricRegisterFailure, Name: "goauthclient_register_failure_total", Help: "Registrations rejected by the server."},
	{ID: goAuthClient.MetricRegisterValidationRejected, Name: "goauthclient_register_validation_rejected_total", Help: "Registrations rejected locally before any network traffic."},
	{ID: goAuthClient.MetricLogout, Name: "goauthclient_logout_total", Help: "Logout operations."},
	{ID: goAuthClient.MetricLogoutServerError, Name: "goauthclient_logout_server_error_total", Help: "Logout requests the server rejected."},
	{ID: goAuthClient.MetricCurrentUserSuccess, Name: "goauthclient_current_user_success_total", Help: "Successful profile refreshes."},
	{ID: goAuthClient.MetricCurrentUserFailure, Name: "goauthclient_current_user_failure_total", Help: "Profile refreshes that evicted the session."},
	{ID: goAuthClient.MetricPasswordForgotRequest, Name: "goauthclient_password_forgot_request_total", Help: "Reset-link requests."},
	{ID: goAuthClient.MetricPasswordResetSuccess, Name: "goauthclient_password_reset_success_total", Help: "Completed password resets."},
	{ID: goAuthClient.MetricPasswordResetFailure, Name: "goauthclient_password_reset_failure_total", Help: "Failed password resets."},
	{ID: goAuthClient.MetricPasswordUpdateSuccess, Name: "goauthclient_password_update_success_total", Help: "Authenticated password changes."},
	{ID: goAuthClient.MetricPasswordUpdateFailure, Name: "goauthclient_password_update_failure_total", Help: "Rejected password changes."},
	{ID: goAuthClient.MetricCSRFBootstrap, Name: "goauthclient_csrf_bootstrap_total", Help: "Successful CSRF cookie fetches."},
	{ID: goAuthClient.MetricCSRFBootstrapFailure, Name: "goauthclient_csrf_bootstrap_failure_total", Help: "Failed CSRF cookie fetches."},
	{ID: goAuthClient.MetricThrottleRetry, Name: "goauthclient_throttle_retry_total", Help: "Scheduled retries after 429 responses."},
	{ID: goAuthClient.MetricThrottleExhausted, Name: "goauthclient_throttle_exhausted_total", Help: "Requests that stayed throttled past the retry budget."},
	{ID: goAuthClient.MetricAuthRedirect, Name: "goauthclient_auth_redirect_total", Help: "Session evictions that navigated to login."},
	{ID: goAuthClient.MetricAuthRedirectSuppressed, Name: "goauthclient_auth_redirect_suppressed_total", Help: "Unauthorized responses absorbed on public locations."},
	{ID: goAuthClient.MetricGuardAllowed, Name: "goauthclient_guard_allowed_total", Help: "Guard passes."},
	{ID: goAuthClient.MetricGuardDeniedNoCredentials, Name: "goauthclient_guard_denied_no_credentials_total", Help: "Guard denials with no local session."},
	{ID: goAuthClient.MetricGuardCooldownSkip, Name: "goauthclient_guard_cooldown_skip_total", Help: "Guard passes that trusted local state inside the cool-down."},
	{ID: goAuthClient.MetricGuardRevalidate, Name: "goauthclient_guard_revalidate_total", Help: "Guard passes that revalidated against the server."},
	{ID: goAuthClient.MetricGuardDeniedValidation, Name: "goauthclient_guard_denied_validation_total", Help: "Guard denials after a failed server revalidation."},
	{ID: goAuthClient.MetricTokenExpiredLocally, Name: "goauthclient_token_expired_locally_total", Help: "Sessions evicted by the local token expiry peek."},
}

// HistogramDefs enumerates every exported histogram.
var HistogramDefs = []HistogramDef{
	{ID: goAuthClient.MetricRequestLatency, Name: "goauthclient_request_latency_seconds", Help: "API round-trip latency histogram."},
}

// HistogramBounds are the upper bounds of the latency buckets, in seconds.
var HistogramBounds = []string{
	"0.005",
	"0.01",
	"0.025",
	"0.05",
	"0.1",
	"0.25",
	"0.5",
	"+Inf",
}

// HistogramBoundSuffix mirrors HistogramBounds with names safe for metric
// identifiers.
var HistogramBoundSuffix = []string{
	"0_005",
	"0_01",
	"0_025",
	"0_05",
	"0_1",
	"0_25",
	"0_5",
	"inf",
}

// NormalizeBuckets pads or truncates a raw bucket slice to the fixed width.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets converts per-bucket counts to the cumulative form both
// exposition formats expect.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
