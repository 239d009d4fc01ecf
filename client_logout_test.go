package goAuthClient

import (
	"context"
	"net/http"
	"testing"
)

func signIn(t *testing.T, env *testEnv) {
	t.Helper()
	env.api.handle(http.MethodPost, "/api/login", jsonResponse(t, AuthResponse{User: testUser(), Token: "tok"}))
	if _, err := env.client.Login(context.Background(), "alice@example.com", "pw"); err != nil {
		t.Fatalf("login failed: %v", err)
	}
}

func TestLogoutClearsEverything(t *testing.T) {
	env := newTestEnv(t)
	signIn(t, env)

	var logoutHit bool
	env.api.handle(http.MethodPost, "/api/logout", func(w http.ResponseWriter, r *http.Request) {
		logoutHit = true
		_, _ = w.Write([]byte(`{"message":"Logged out"}`))
	})

	if err := env.client.Logout(context.Background()); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if !logoutHit {
		t.Fatal("server logout was not called")
	}

	state := env.client.State()
	if state.IsAuthenticated || state.Token != "" || state.User != nil || state.LastError != nil {
		t.Fatalf("state after logout = %+v", state)
	}

	if env.mr.Exists("acs:token") || env.mr.Exists("acs:user") {
		t.Fatal("credentials survived logout in the store")
	}
}

func TestLogoutSwallowsServerErrors(t *testing.T) {
	env := newTestEnv(t)
	signIn(t, env)

	env.api.handle(http.MethodPost, "/api/logout", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	if err := env.client.Logout(context.Background()); err != nil {
		t.Fatalf("logout must succeed despite server error, got %v", err)
	}

	state := env.client.State()
	if state.IsAuthenticated || state.Token != "" {
		t.Fatalf("local session survived logout: %+v", state)
	}
	if env.client.metrics.Value(MetricLogoutServerError) != 1 {
		t.Fatal("server error counter not bumped")
	}
	if env.client.metrics.Value(MetricLogout) != 1 {
		t.Fatal("logout counter not bumped")
	}
}

func TestLogoutSwallowsCSRFFailure(t *testing.T) {
	env := newTestEnv(t)
	signIn(t, env)

	env.api.handle(http.MethodGet, "/sanctum/csrf-cookie", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	if err := env.client.Logout(context.Background()); err != nil {
		t.Fatalf("logout must succeed despite bootstrap failure, got %v", err)
	}
	if env.client.State().IsAuthenticated {
		t.Fatal("local session survived logout")
	}
}
