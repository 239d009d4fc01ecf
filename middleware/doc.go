// Package middleware exposes an HTTP adapter for the auth guard, for hosts
// that render the front-end server side.
//
// [Guard] pins the redirect policy's location to the inbound request path,
// asks the client's guard for a decision, and either forwards the request
// with the session state in context or issues an HTTP redirect to login.
//
// # What this package must NOT do
//
//   - Talk to the API or Redis directly (the client owns all I/O).
//   - Make auth decisions beyond pass/redirect from the guard.
package middleware
