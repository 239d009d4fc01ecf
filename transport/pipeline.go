package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/MrEthical07/goAuthClient/internal/backoff"
	"github.com/MrEthical07/goAuthClient/internal/paths"
)

// Body reads are capped so a misbehaving server cannot balloon memory.
const maxErrorBodyBytes = 1 << 20

// TokenSource supplies the current bearer token. An empty token means no
// Authorization header is attached.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Navigator abstracts the host application's routing so the redirect policy
// works the same in a browser shell, a TUI, or a test.
type Navigator interface {
	// Location returns the current application location, e.g. "/dashboard".
	Location() string
	// RedirectToLogin navigates the application to its login route.
	RedirectToLogin()
}

// Config carries the pipeline's request policy knobs.
type Config struct {
	// BaseURL is the API origin, without a trailing slash.
	BaseURL string
	// CSRFCookiePath is the cookie-priming endpoint fetched before
	// state-changing calls.
	CSRFCookiePath string
	// MaxRetries bounds throttle retries per request.
	MaxRetries int
	// InitialRetryDelay seeds the doubling retry schedule.
	InitialRetryDelay time.Duration
	// PublicPaths lists application locations where a 401 must not evict
	// the session or navigate away.
	PublicPaths []string
	// AuthRedirectExempt lists request path fragments whose 401 responses
	// never trigger the redirect policy.
	AuthRedirectExempt []string
}

// Params bundles the pipeline's collaborators.
type Params struct {
	Client    *http.Client
	Config    Config
	Tokens    TokenSource
	Navigator Navigator
	// OnUnauthorized purges local credentials when the redirect policy
	// fires on a protected location.
	OnUnauthorized func(ctx context.Context)
	// Sleep is the retry delay primitive. Nil selects a timer that honors
	// context cancellation.
	Sleep func(ctx context.Context, d time.Duration) error
	Hooks Hooks
}

// Pipeline executes JSON API requests with the full response policy applied.
type Pipeline struct {
	client         *http.Client
	cfg            Config
	tokens         TokenSource
	nav            Navigator
	onUnauthorized func(ctx context.Context)
	sleep          func(ctx context.Context, d time.Duration) error
	hooks          Hooks
}

// New assembles a Pipeline from its parts.
func New(p Params) *Pipeline {
	sleep := p.Sleep
	if sleep == nil {
		sleep = sleepContext
	}
	return &Pipeline{
		client:         p.Client,
		cfg:            p.Config,
		tokens:         p.Tokens,
		nav:            p.Navigator,
		onUnauthorized: p.OnUnauthorized,
		sleep:          sleep,
		hooks:          p.Hooks,
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// BootstrapCSRF primes the session's CSRF cookie. The client's cookie jar
// retains whatever the server sets. Failures propagate; callers must not
// proceed to a state-changing request without the cookie.
func (p *Pipeline) BootstrapCSRF(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.cfg.BaseURL+p.cfg.CSRFCookiePath, nil)
	if err != nil {
		p.hooks.csrfBootstrap(err)
		return fmt.Errorf("%w: %v", ErrCSRFBootstrap, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Requested-With", "XMLHttpRequest")

	resp, err := p.client.Do(req)
	if err != nil {
		p.hooks.csrfBootstrap(err)
		return fmt.Errorf("%w: %v", ErrCSRFBootstrap, err)
	}
	defer drainAndClose(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		err := fmt.Errorf("%w: status %d", ErrCSRFBootstrap, resp.StatusCode)
		p.hooks.csrfBootstrap(err)
		return err
	}

	p.hooks.csrfBootstrap(nil)
	return nil
}

// Do issues one logical request. payload is marshaled to JSON when non-nil;
// out, when non-nil, receives the decoded 2xx body. Throttled attempts are
// retried within the configured budget before the call fails.
func (p *Pipeline) Do(ctx context.Context, method, path string, payload, out any) error {
	var body []byte
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = data
	}

	retries := 0
	for {
		resp, err := p.send(ctx, method, path, body)
		if err != nil {
			return err
		}

		switch {
		case resp.StatusCode >= 200 && resp.StatusCode < 300:
			return decodeBody(resp, out)

		case resp.StatusCode == http.StatusTooManyRequests:
			drainAndClose(resp.Body)
			if retries >= p.cfg.MaxRetries {
				p.hooks.retriesExhausted(method, path)
				return fmt.Errorf("%w: %s %s after %d retries", ErrRateLimited, method, path, retries)
			}
			retries++
			delay := backoff.Delay(p.cfg.InitialRetryDelay, retries)
			p.hooks.retryScheduled(retries, delay)
			if err := p.sleep(ctx, delay); err != nil {
				return err
			}

		case resp.StatusCode == http.StatusUnauthorized:
			apiErr := readAPIError(resp)
			if !paths.IsExempt(path, p.cfg.AuthRedirectExempt) {
				p.applyRedirectPolicy(ctx)
			}
			return fmt.Errorf("%w: %v", ErrUnauthenticated, apiErr)

		default:
			return readAPIError(resp)
		}
	}
}

// send builds and performs one attempt. The request is rebuilt each time so
// a retried body reads from the start.
func (p *Pipeline) send(ctx context.Context, method, path string, body []byte) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, p.cfg.BaseURL+path, reader)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	token, err := p.tokens.Token(ctx)
	if err == nil && token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return p.client.Do(req)
}

// applyRedirectPolicy decides what a 401 on a protected request does to the
// session. On a public location both the purge and the navigation are
// suppressed.
func (p *Pipeline) applyRedirectPolicy(ctx context.Context) {
	location, ok := LocationFromContext(ctx)
	if !ok {
		location = p.nav.Location()
	}

	if paths.IsPublic(location, p.cfg.PublicPaths) {
		p.hooks.authRedirect(location, true)
		return
	}

	if p.onUnauthorized != nil {
		p.onUnauthorized(ctx)
	}
	p.nav.RedirectToLogin()
	p.hooks.authRedirect(location, false)
}

func decodeBody(resp *http.Response, out any) error {
	defer drainAndClose(resp.Body)
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxErrorBodyBytes)).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// readAPIError drains the error body into the structured envelope. A body
// that does not parse still yields a usable error with the status text.
func readAPIError(resp *http.Response) *APIError {
	defer drainAndClose(resp.Body)

	apiErr := &APIError{Status: resp.StatusCode}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
	if err == nil && len(data) > 0 {
		_ = json.Unmarshal(data, apiErr)
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}

func drainAndClose(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, io.LimitReader(body, maxErrorBodyBytes))
	_ = body.Close()
}
