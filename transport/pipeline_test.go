package transport

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

type staticTokens struct {
	token string
}

func (s staticTokens) Token(ctx context.Context) (string, error) {
	return s.token, nil
}

type fakeNavigator struct {
	location  string
	redirects int
}

func (n *fakeNavigator) Location() string { return n.location }

func (n *fakeNavigator) RedirectToLogin() { n.redirects++ }

type recordingSleeper struct {
	delays []time.Duration
}

func (r *recordingSleeper) sleep(ctx context.Context, d time.Duration) error {
	r.delays = append(r.delays, d)
	return nil
}

func defaultTestConfig(baseURL string) Config {
	return Config{
		BaseURL:            baseURL,
		CSRFCookiePath:     "/sanctum/csrf-cookie",
		MaxRetries:         3,
		InitialRetryDelay:  time.Second,
		PublicPaths:        []string{"/", "/login", "/register", "/forgot-password", "/reset-password"},
		AuthRedirectExempt: []string{"/login", "/register", "/forgot-password", "/reset-password"},
	}
}

func newTestPipeline(t *testing.T, baseURL, token string, nav *fakeNavigator) (*Pipeline, *recordingSleeper) {
	t.Helper()

	sleeper := &recordingSleeper{}
	p := New(Params{
		Client:    &http.Client{},
		Config:    defaultTestConfig(baseURL),
		Tokens:    staticTokens{token: token},
		Navigator: nav,
		Sleep:     sleeper.sleep,
	})
	return p, sleeper
}

func TestDoAttachesStandardHeaders(t *testing.T) {
	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	nav := &fakeNavigator{location: "/dashboard"}
	p, _ := newTestPipeline(t, srv.URL, "tok-1", nav)

	if err := p.Do(context.Background(), http.MethodPost, "/api/user", map[string]string{"name": "x"}, nil); err != nil {
		t.Fatalf("do failed: %v", err)
	}

	if auth := got.Get("Authorization"); auth != "Bearer tok-1" {
		t.Errorf("Authorization = %q", auth)
	}
	if ct := got.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	if xr := got.Get("X-Requested-With"); xr != "XMLHttpRequest" {
		t.Errorf("X-Requested-With = %q", xr)
	}
	if got.Get("X-Request-ID") == "" {
		t.Error("missing X-Request-ID")
	}
}

func TestDoSkipsBearerWithoutToken(t *testing.T) {
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	p, _ := newTestPipeline(t, srv.URL, "", &fakeNavigator{location: "/dashboard"})

	if err := p.Do(context.Background(), http.MethodGet, "/api/ping", nil, nil); err != nil {
		t.Fatalf("do failed: %v", err)
	}
	if auth != "" {
		t.Errorf("unexpected Authorization header %q", auth)
	}
}

func TestDoDecodesSuccessBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message":"ok"}`))
	}))
	defer srv.Close()

	p, _ := newTestPipeline(t, srv.URL, "tok", &fakeNavigator{location: "/dashboard"})

	var out struct {
		Message string `json:"message"`
	}
	if err := p.Do(context.Background(), http.MethodGet, "/api/thing", nil, &out); err != nil {
		t.Fatalf("do failed: %v", err)
	}
	if out.Message != "ok" {
		t.Fatalf("decoded %q", out.Message)
	}
}

func TestThrottledRequestRetriesThenSucceeds(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) < 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	p, sleeper := newTestPipeline(t, srv.URL, "tok", &fakeNavigator{location: "/dashboard"})

	if err := p.Do(context.Background(), http.MethodGet, "/api/user", nil, nil); err != nil {
		t.Fatalf("do failed: %v", err)
	}
	if got := hits.Load(); got != 3 {
		t.Fatalf("expected 3 attempts, got %d", got)
	}

	want := []time.Duration{time.Second, 2 * time.Second}
	if len(sleeper.delays) != len(want) {
		t.Fatalf("delays %v, want %v", sleeper.delays, want)
	}
	for i := range want {
		if sleeper.delays[i] != want[i] {
			t.Fatalf("delay[%d] = %v, want %v", i, sleeper.delays[i], want[i])
		}
	}
}

func TestThrottledRequestExhaustsBudget(t *testing.T) {
	var hits atomic.Int64
	var exhausted bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	sleeper := &recordingSleeper{}
	p := New(Params{
		Client:    &http.Client{},
		Config:    defaultTestConfig(srv.URL),
		Tokens:    staticTokens{token: "tok"},
		Navigator: &fakeNavigator{location: "/dashboard"},
		Sleep:     sleeper.sleep,
		Hooks: Hooks{
			RetriesExhausted: func(method, path string) { exhausted = true },
		},
	})

	err := p.Do(context.Background(), http.MethodGet, "/api/user", nil, nil)
	if !errors.Is(err, ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}
	if got := hits.Load(); got != 4 {
		t.Fatalf("expected initial attempt plus 3 retries, got %d attempts", got)
	}

	want := []time.Duration{time.Second, 2 * time.Second, 4 * time.Second}
	if len(sleeper.delays) != len(want) {
		t.Fatalf("delays %v, want %v", sleeper.delays, want)
	}
	for i := range want {
		if sleeper.delays[i] != want[i] {
			t.Fatalf("delay[%d] = %v, want %v", i, sleeper.delays[i], want[i])
		}
	}
	if !exhausted {
		t.Fatal("RetriesExhausted hook did not fire")
	}
}

func TestUnauthorizedOnProtectedLocationRedirects(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	nav := &fakeNavigator{location: "/dashboard"}
	purged := 0
	sleeper := &recordingSleeper{}
	p := New(Params{
		Client:         &http.Client{},
		Config:         defaultTestConfig(srv.URL),
		Tokens:         staticTokens{token: "tok"},
		Navigator:      nav,
		OnUnauthorized: func(ctx context.Context) { purged++ },
		Sleep:          sleeper.sleep,
	})

	err := p.Do(context.Background(), http.MethodGet, "/api/user", nil, nil)
	if !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
	if nav.redirects != 1 {
		t.Fatalf("expected 1 redirect, got %d", nav.redirects)
	}
	if purged != 1 {
		t.Fatalf("expected 1 credential purge, got %d", purged)
	}
}

func TestUnauthorizedOnPublicLocationIsSuppressed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	for _, location := range []string{"/", "/login", "/reset-password/tok-abc"} {
		nav := &fakeNavigator{location: location}
		purged := 0
		sleeper := &recordingSleeper{}
		p := New(Params{
			Client:         &http.Client{},
			Config:         defaultTestConfig(srv.URL),
			Tokens:         staticTokens{token: "tok"},
			Navigator:      nav,
			OnUnauthorized: func(ctx context.Context) { purged++ },
			Sleep:          sleeper.sleep,
		})

		err := p.Do(context.Background(), http.MethodGet, "/api/user", nil, nil)
		if !errors.Is(err, ErrUnauthenticated) {
			t.Fatalf("location %q: expected ErrUnauthenticated, got %v", location, err)
		}
		if nav.redirects != 0 {
			t.Errorf("location %q: unexpected redirect", location)
		}
		if purged != 0 {
			t.Errorf("location %q: credentials purged on public location", location)
		}
	}
}

func TestUnauthorizedOnExemptRequestSkipsPolicy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"bad credentials"}`))
	}))
	defer srv.Close()

	nav := &fakeNavigator{location: "/dashboard"}
	purged := 0
	sleeper := &recordingSleeper{}
	p := New(Params{
		Client:         &http.Client{},
		Config:         defaultTestConfig(srv.URL),
		Tokens:         staticTokens{},
		Navigator:      nav,
		OnUnauthorized: func(ctx context.Context) { purged++ },
		Sleep:          sleeper.sleep,
	})

	err := p.Do(context.Background(), http.MethodPost, "/api/login", map[string]string{"email": "a"}, nil)
	if !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
	if nav.redirects != 0 || purged != 0 {
		t.Fatalf("redirect policy fired on an exempt request (redirects=%d purged=%d)", nav.redirects, purged)
	}
}

func TestLocationOverrideWinsOverNavigator(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	// Navigator says public, context says protected. The override governs.
	nav := &fakeNavigator{location: "/login"}
	p, _ := newTestPipeline(t, srv.URL, "tok", nav)

	ctx := WithLocation(context.Background(), "/settings")
	err := p.Do(ctx, http.MethodGet, "/api/user", nil, nil)
	if !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
	if nav.redirects != 1 {
		t.Fatalf("expected redirect with protected override, got %d", nav.redirects)
	}
}

func TestErrorEnvelopeDecoding(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"The given data was invalid.","errors":{"email":["The email field is required."]}}`))
	}))
	defer srv.Close()

	p, _ := newTestPipeline(t, srv.URL, "tok", &fakeNavigator{location: "/dashboard"})

	err := p.Do(context.Background(), http.MethodPost, "/api/register", map[string]string{}, nil)
	apiErr, ok := AsAPIError(err)
	if !ok {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Status != http.StatusUnprocessableEntity {
		t.Errorf("status = %d", apiErr.Status)
	}
	if apiErr.Message != "The given data was invalid." {
		t.Errorf("message = %q", apiErr.Message)
	}
	if msgs := apiErr.FieldErrors("email"); len(msgs) != 1 {
		t.Errorf("field errors = %v", msgs)
	}
}

func TestErrorEnvelopeFallsBackToStatusText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("boom"))
	}))
	defer srv.Close()

	p, _ := newTestPipeline(t, srv.URL, "tok", &fakeNavigator{location: "/dashboard"})

	err := p.Do(context.Background(), http.MethodGet, "/api/user", nil, nil)
	apiErr, ok := AsAPIError(err)
	if !ok {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Message != http.StatusText(http.StatusInternalServerError) {
		t.Errorf("message = %q", apiErr.Message)
	}
}

func TestBootstrapCSRF(t *testing.T) {
	var hitPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hitPath = r.URL.Path
		http.SetCookie(w, &http.Cookie{Name: "XSRF-TOKEN", Value: "abc"})
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	p, _ := newTestPipeline(t, srv.URL, "", &fakeNavigator{location: "/login"})

	if err := p.BootstrapCSRF(context.Background()); err != nil {
		t.Fatalf("bootstrap failed: %v", err)
	}
	if hitPath != "/sanctum/csrf-cookie" {
		t.Fatalf("hit %q", hitPath)
	}
}

func TestBootstrapCSRFFailurePropagates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	p, _ := newTestPipeline(t, srv.URL, "", &fakeNavigator{location: "/login"})

	err := p.BootstrapCSRF(context.Background())
	if !errors.Is(err, ErrCSRFBootstrap) {
		t.Fatalf("expected ErrCSRFBootstrap, got %v", err)
	}
}

func TestRetryHookReceivesSchedule(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	var attempts []int
	var delays []time.Duration
	sleeper := &recordingSleeper{}
	p := New(Params{
		Client:    &http.Client{},
		Config:    defaultTestConfig(srv.URL),
		Tokens:    staticTokens{token: "tok"},
		Navigator: &fakeNavigator{location: "/dashboard"},
		Sleep:     sleeper.sleep,
		Hooks: Hooks{
			RetryScheduled: func(attempt int, delay time.Duration) {
				attempts = append(attempts, attempt)
				delays = append(delays, delay)
			},
		},
	})

	if err := p.Do(context.Background(), http.MethodGet, "/api/user", nil, nil); err != nil {
		t.Fatalf("do failed: %v", err)
	}
	if len(attempts) != 1 || attempts[0] != 1 || delays[0] != time.Second {
		t.Fatalf("hook saw attempts=%v delays=%v", attempts, delays)
	}
}
