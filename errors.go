package goAuthClient

import (
	"github.com/MrEthical07/goAuthClient/credstore"
	"github.com/MrEthical07/goAuthClient/transport"
)

// Sentinel errors surfaced by Client operations. The transport and store
// variants are re-exported so callers match with errors.Is against a single
// package.
var (
	ErrRateLimited      = transport.ErrRateLimited
	ErrUnauthenticated  = transport.ErrUnauthenticated
	ErrCSRFBootstrap    = transport.ErrCSRFBootstrap
	ErrStoreUnavailable = credstore.ErrRedisUnavailable
)

// APIError is the server's structured error envelope, including per-field
// validation messages.
type APIError = transport.APIError

// AsAPIError unwraps err into an [*APIError] if one is in the chain.
func AsAPIError(err error) (*APIError, bool) {
	return transport.AsAPIError(err)
}
