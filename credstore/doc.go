// Package credstore provides Redis-backed persistence for the bearer token and cached
// user profile that back a client session.
//
// # Storage layout
//
// Two keys under a configurable prefix: the token as a plain string, the profile as
// JSON. Both are written in a single transactional pipeline so a reader never observes
// a token without its matching profile slot.
//
// # Failure semantics
//
// Reads fail open: an unavailable backend or a corrupt profile blob reads as "no
// credential" rather than an error, so callers degrade to the unauthenticated path.
// Writes report [ErrRedisUnavailable] so callers can decide whether a login that
// cannot be persisted should count as a login at all.
//
// # What this package must NOT do
//
//   - Interpret the token (it is an opaque bearer credential).
//   - Decide authentication state; that belongs to the client state container.
//   - Import goAuthClient or transport (no upward imports).
package credstore
