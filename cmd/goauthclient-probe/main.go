// Command goauthclient-probe exercises a live auth backend end to end:
// CSRF bootstrap, login, profile fetch, guard check, logout. It prints the
// resulting metrics in Prometheus text form so a deploy can be smoke-tested
// from a shell.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	goAuthClient "github.com/MrEthical07/goAuthClient"
	promexport "github.com/MrEthical07/goAuthClient/metrics/export/prometheus"
)

type headlessNavigator struct {
	location string
}

func (n *headlessNavigator) Location() string { return n.location }

func (n *headlessNavigator) RedirectToLogin() {
	fmt.Println("navigator: redirect to /login")
	n.location = "/login"
}

func main() {
	// .env is optional; flags and the environment win.
	_ = godotenv.Load()

	var (
		baseURL   = flag.String("base-url", os.Getenv("API_BASE_URL"), "API origin, e.g. https://api.example.com")
		email     = flag.String("email", os.Getenv("PROBE_EMAIL"), "account email")
		password  = flag.String("password", os.Getenv("PROBE_PASSWORD"), "account password")
		redisAddr = flag.String("redis-addr", os.Getenv("REDIS_ADDR"), "redis address; empty starts an in-process miniredis")
		timeout   = flag.Duration("timeout", 30*time.Second, "per-request timeout")
	)
	flag.Parse()

	if *baseURL == "" || *email == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "base-url, email, and password are required")
		os.Exit(2)
	}

	var (
		rdb     redis.UniversalClient
		cleanup func()
	)
	if *redisAddr == "" {
		mr, err := miniredis.Run()
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to start miniredis: %v\n", err)
			os.Exit(1)
		}
		rdb = redis.NewUniversalClient(&redis.UniversalOptions{Addrs: []string{mr.Addr()}})
		cleanup = func() {
			_ = rdb.Close()
			mr.Close()
		}
		fmt.Printf("using miniredis at %s\n", mr.Addr())
	} else {
		rdb = redis.NewUniversalClient(&redis.UniversalOptions{Addrs: []string{*redisAddr}})
		cleanup = func() { _ = rdb.Close() }
		fmt.Printf("using redis at %s\n", *redisAddr)
	}
	defer cleanup()

	cfg := goAuthClient.DefaultConfig()
	cfg.API.BaseURL = *baseURL
	cfg.API.RequestTimeout = *timeout

	nav := &headlessNavigator{location: "/dashboard"}

	client, err := goAuthClient.New().
		WithConfig(cfg).
		WithRedis(rdb).
		WithNavigator(nav).
		WithAuditSink(goAuthClient.NewJSONWriterSink(os.Stderr)).
		WithMetricsEnabled(true).
		WithLatencyHistograms(true).
		Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "build failed: %v\n", err)
		os.Exit(1)
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := run(ctx, client, *email, *password); err != nil {
		fmt.Fprintf(os.Stderr, "probe failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("---- metrics ----")
	fmt.Print(promexport.NewPrometheusExporter(client).Render())
}

func run(ctx context.Context, client *goAuthClient.Client, email, password string) error {
	start := time.Now()

	user, err := client.Login(ctx, email, password)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	fmt.Printf("logged in as %s (id %d) in %s\n", user.Email, user.ID, time.Since(start).Round(time.Millisecond))

	if allowed, reason := client.Guard().Check(ctx); !allowed {
		return fmt.Errorf("guard denied a fresh session: %s", reason)
	}
	fmt.Println("guard: allowed")

	profile, err := client.CurrentUser(ctx)
	if err != nil {
		return fmt.Errorf("current user: %w", err)
	}
	fmt.Printf("profile refresh ok: %s\n", profile.Name)

	if err := client.Logout(ctx); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	if client.State().IsAuthenticated {
		return fmt.Errorf("still authenticated after logout")
	}
	fmt.Println("logged out")

	return nil
}
