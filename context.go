package goAuthClient

import (
	"context"

	"github.com/MrEthical07/goAuthClient/transport"
)

// WithLocation pins the application location the redirect policy sees for
// requests issued with the returned context.
func WithLocation(ctx context.Context, location string) context.Context {
	return transport.WithLocation(ctx, location)
}

// LocationFromContext returns the pinned location, if any.
func LocationFromContext(ctx context.Context) (string, bool) {
	return transport.LocationFromContext(ctx)
}
