package middleware

import (
	"context"
	"net/http"

	goAuthClient "github.com/MrEthical07/goAuthClient"
)

type stateContextKey struct{}

// StateFromContext returns the session snapshot injected by [Guard].
func StateFromContext(ctx context.Context) (goAuthClient.State, bool) {
	state, ok := ctx.Value(stateContextKey{}).(goAuthClient.State)
	return state, ok
}

// Guard protects a handler behind the client's auth guard. Denied requests
// get an HTTP redirect to loginLocation; allowed ones proceed with the
// session state in the request context.
func Guard(client *goAuthClient.Client, loginLocation string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if client == nil {
				http.Redirect(w, r, loginLocation, http.StatusFound)
				return
			}

			// The inbound path is the location the redirect policy judges.
			ctx := goAuthClient.WithLocation(r.Context(), r.URL.Path)

			allowed, _ := client.Guard().Check(ctx)
			if !allowed {
				http.Redirect(w, r, loginLocation, http.StatusFound)
				return
			}

			ctx = context.WithValue(ctx, stateContextKey{}, client.State())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
