// Package transport implements the JSON request pipeline shared by every
// authenticated call: header decoration, bearer attachment, CSRF cookie
// bootstrap, throttle retries, and the unauthenticated-redirect policy.
//
// # Request lifecycle
//
// Do builds a fresh request per attempt (the body is re-readable because the
// payload is marshaled once and re-wrapped), decorates it, and classifies the
// response:
//
//   - 2xx decodes the body into the caller's value.
//   - 429 retries on a doubling delay schedule until the retry budget is
//     spent, then fails with [ErrRateLimited].
//   - 401 on a non-exempt request triggers the redirect policy and fails
//     with [ErrUnauthenticated].
//   - any other 4xx/5xx decodes the server's error envelope into [*APIError].
//
// # Redirect policy
//
// On 401 the pipeline consults the current application location (an explicit
// [WithLocation] override wins over the navigator's answer). If the location
// is public, both the credential purge and the navigation are suppressed; a
// visitor reading the landing page is not bounced to a login form. The
// request still fails either way.
//
// # Dependencies
//
// The pipeline owns no state. Tokens come from a [TokenSource], navigation
// goes through a [Navigator], and credential purging is a callback, so the
// package stays import-free of the client layer above it.
package transport
