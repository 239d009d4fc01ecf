package goAuthClient

import (
	"context"
	"errors"
	"net/http"
	"testing"
)

func TestCurrentUserRefreshesProfile(t *testing.T) {
	env := newTestEnv(t)
	signIn(t, env)

	env.api.handle(http.MethodGet, "/api/user", jsonResponse(t, &Profile{
		ID: 1, Name: "Alice Updated", Email: "alice@example.com",
	}))

	user, err := env.client.CurrentUser(context.Background())
	if err != nil {
		t.Fatalf("current user failed: %v", err)
	}
	if user.Name != "Alice Updated" {
		t.Fatalf("user = %+v", user)
	}

	state := env.client.State()
	if !state.IsAuthenticated || state.User.Name != "Alice Updated" {
		t.Fatalf("state = %+v", state)
	}
	if state.Token != "tok" {
		t.Fatalf("token changed during refresh: %q", state.Token)
	}
}

func TestCurrentUserSendsBearer(t *testing.T) {
	env := newTestEnv(t)
	signIn(t, env)

	var auth string
	env.api.handle(http.MethodGet, "/api/user", func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		jsonResponse(t, testUser())(w, r)
	})

	if _, err := env.client.CurrentUser(context.Background()); err != nil {
		t.Fatalf("current user failed: %v", err)
	}
	if auth != "Bearer tok" {
		t.Fatalf("Authorization = %q", auth)
	}
}

func TestCurrentUserFailureEvictsSession(t *testing.T) {
	env := newTestEnv(t)
	signIn(t, env)

	env.api.handle(http.MethodGet, "/api/user", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := env.client.CurrentUser(context.Background())
	if !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}

	state := env.client.State()
	if state.IsAuthenticated || state.Token != "" || state.User != nil {
		t.Fatalf("session survived failed validation: %+v", state)
	}
	if state.LastError == nil {
		t.Fatal("expected recorded error")
	}

	if env.mr.Exists("acs:token") {
		t.Fatal("stored token survived eviction")
	}

	// Eviction on a protected location also navigates to login.
	if env.nav.redirects != 1 {
		t.Fatalf("redirects = %d", env.nav.redirects)
	}
}

func TestCurrentUserFailureOnPublicLocationKeepsQuiet(t *testing.T) {
	env := newTestEnv(t)
	signIn(t, env)
	env.nav.location = "/login"

	env.api.handle(http.MethodGet, "/api/user", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	if _, err := env.client.CurrentUser(context.Background()); err == nil {
		t.Fatal("expected failure")
	}

	if env.nav.redirects != 0 {
		t.Fatal("navigated to login from a public location")
	}
	// The redirect stays suppressed, but a failed validation still ends
	// the session.
	if env.client.State().IsAuthenticated {
		t.Fatal("in-memory session survived failed validation")
	}
}
