package transport

import "context"

type contextKey string

const locationKey contextKey = "goauthclient.location"

// WithLocation overrides the application location used by the redirect
// policy for requests issued with the returned context. Server-side callers
// use this to pin the location to the inbound request path.
func WithLocation(ctx context.Context, location string) context.Context {
	return context.WithValue(ctx, locationKey, location)
}

// LocationFromContext returns the location override, if any.
func LocationFromContext(ctx context.Context) (string, bool) {
	loc, ok := ctx.Value(locationKey).(string)
	return loc, ok
}
