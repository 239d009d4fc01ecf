// Package goAuthClient is the client-side auth and session layer for a JSON
// API that uses bearer tokens plus a CSRF cookie handshake.
//
// A [Client] owns the session state machine (loading, authenticated, last
// error), persists credentials through a Redis-backed store, and issues all
// API calls through a pipeline that handles CSRF bootstrap, throttle retries,
// and the unauthenticated-redirect policy. A [Guard] sits in front of
// protected surfaces and revalidates the session against the server on a
// cool-down interval.
//
// Construction goes through the fluent builder:
//
//	client, err := goAuthClient.New().
//		WithConfig(cfg).
//		WithRedis(redisClient).
//		WithNavigator(nav).
//		Build()
//
// The builder is single use. All Client methods are safe for concurrent use.
package goAuthClient
