package goAuthClient

import (
	"errors"
	"strings"
	"time"
)

// Config is the complete configuration surface. Zero values are filled from
// defaultConfig by the builder; Validate rejects inconsistent combinations.
type Config struct {
	API     APIConfig
	Retry   RetryConfig
	Guard   GuardConfig
	Routes  RouteConfig
	Storage StorageConfig
	Audit   AuditConfig
	Metrics MetricsConfig
}

/*
====================================
API CONFIG
====================================
*/

// APIConfig locates the backend and its auth endpoints.
type APIConfig struct {
	// BaseURL is the API origin, e.g. "https://api.example.com". No
	// trailing slash.
	BaseURL string

	CSRFCookiePath     string
	LoginPath          string
	RegisterPath       string
	LogoutPath         string
	UserPath           string
	ForgotPasswordPath string
	ResetPasswordPath  string
	UpdatePasswordPath string

	// RequestTimeout bounds each HTTP attempt when the builder constructs
	// the default client. Ignored when a custom *http.Client is supplied.
	RequestTimeout time.Duration
}

/*
====================================
RETRY CONFIG
====================================
*/

// RetryConfig bounds the throttle retry schedule.
type RetryConfig struct {
	// MaxRetries is the number of retries after the initial attempt.
	MaxRetries int
	// InitialDelay seeds the doubling delay schedule.
	InitialDelay time.Duration
}

/*
====================================
GUARD CONFIG
====================================
*/

// GuardConfig tunes the auth guard's revalidation gate.
type GuardConfig struct {
	// RevalidateInterval is the cool-down between server-side session
	// checks. Within the window the guard trusts local state.
	RevalidateInterval time.Duration
	// CheckTokenExpiry enables a local expiry peek on JWT-shaped tokens
	// before any server round trip. Opaque tokens always pass.
	CheckTokenExpiry bool
}

/*
====================================
ROUTE CONFIG
====================================
*/

// RouteConfig describes the host application's route classes.
type RouteConfig struct {
	// PublicPaths are application locations where a 401 must not evict
	// the session or navigate away.
	PublicPaths []string
	// AuthRedirectExempt are request path fragments whose 401 responses
	// never trigger the redirect policy.
	AuthRedirectExempt []string
	// LoginLocation is where the guard middleware sends denied visitors.
	LoginLocation string
}

// StorageConfig names the credential store's key slots.
type StorageConfig struct {
	Prefix   string
	TokenKey string
	UserKey  string
}

// AuditConfig controls the async audit dispatcher.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

// MetricsConfig controls the in-process counters.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

// DefaultConfig returns the stock configuration. Callers set BaseURL and
// whatever else differs, then pass the result to [Builder.WithConfig].
func DefaultConfig() Config {
	return defaultConfig()
}

func defaultConfig() Config {
	return Config{
		API: APIConfig{
			CSRFCookiePath:     "/sanctum/csrf-cookie",
			LoginPath:          "/api/login",
			RegisterPath:       "/api/register",
			LogoutPath:         "/api/logout",
			UserPath:           "/api/user",
			ForgotPasswordPath: "/api/forgot-password",
			ResetPasswordPath:  "/api/reset-password",
			UpdatePasswordPath: "/api/user/password",
			RequestTimeout:     30 * time.Second,
		},
		Retry: RetryConfig{
			MaxRetries:   3,
			InitialDelay: time.Second,
		},
		Guard: GuardConfig{
			RevalidateInterval: time.Minute,
		},
		Routes: RouteConfig{
			PublicPaths:        []string{"/", "/login", "/register", "/forgot-password", "/reset-password"},
			AuthRedirectExempt: []string{"/login", "/register", "/forgot-password", "/reset-password"},
			LoginLocation:      "/login",
		},
		Storage: StorageConfig{
			Prefix:   "acs",
			TokenKey: "token",
			UserKey:  "user",
		},
		Audit: AuditConfig{
			Enabled:    false,
			BufferSize: 256,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled: false,
		},
	}
}

func cloneConfig(cfg Config) Config {
	out := cfg
	out.Routes.PublicPaths = append([]string(nil), cfg.Routes.PublicPaths...)
	out.Routes.AuthRedirectExempt = append([]string(nil), cfg.Routes.AuthRedirectExempt...)
	return out
}

// Validate returns the first configuration violation found, or nil.
func (c Config) Validate() error {
	if c.API.BaseURL == "" {
		return errors.New("API BaseURL is required")
	}
	if strings.HasSuffix(c.API.BaseURL, "/") {
		return errors.New("API BaseURL must not end with a slash")
	}

	endpoints := []struct {
		name string
		path string
	}{
		{"CSRFCookiePath", c.API.CSRFCookiePath},
		{"LoginPath", c.API.LoginPath},
		{"RegisterPath", c.API.RegisterPath},
		{"LogoutPath", c.API.LogoutPath},
		{"UserPath", c.API.UserPath},
		{"ForgotPasswordPath", c.API.ForgotPasswordPath},
		{"ResetPasswordPath", c.API.ResetPasswordPath},
		{"UpdatePasswordPath", c.API.UpdatePasswordPath},
	}
	for _, e := range endpoints {
		if e.path == "" {
			return errors.New("API " + e.name + " is required")
		}
		if !strings.HasPrefix(e.path, "/") {
			return errors.New("API " + e.name + " must start with a slash")
		}
	}

	if c.API.RequestTimeout <= 0 {
		return errors.New("API RequestTimeout must be positive")
	}

	if c.Retry.MaxRetries < 0 {
		return errors.New("Retry MaxRetries cannot be negative")
	}
	if c.Retry.MaxRetries > 0 && c.Retry.InitialDelay <= 0 {
		return errors.New("Retry InitialDelay must be positive when retries are enabled")
	}

	if c.Guard.RevalidateInterval <= 0 {
		return errors.New("Guard RevalidateInterval must be positive")
	}

	if len(c.Routes.PublicPaths) == 0 {
		return errors.New("Routes PublicPaths cannot be empty")
	}
	for _, p := range c.Routes.PublicPaths {
		if !strings.HasPrefix(p, "/") {
			return errors.New("Routes PublicPaths entries must start with a slash")
		}
	}
	if c.Routes.LoginLocation == "" {
		return errors.New("Routes LoginLocation is required")
	}

	if c.Storage.Prefix == "" {
		return errors.New("Storage Prefix is required")
	}
	if c.Storage.TokenKey == "" || c.Storage.UserKey == "" {
		return errors.New("Storage key names are required")
	}
	if c.Storage.TokenKey == c.Storage.UserKey {
		return errors.New("Storage TokenKey and UserKey must differ")
	}

	if c.Audit.Enabled && c.Audit.BufferSize <= 0 {
		return errors.New("Audit BufferSize must be positive when audit is enabled")
	}

	return nil
}
