// Package prometheus renders client metrics in Prometheus text exposition
// format.
//
// [NewPrometheusExporter] accepts a [goAuthClient.Client] and exposes an
// [net/http.Handler] that renders all counters and the latency histogram.
// Counter names are prefixed goauthclient_*_total; the single histogram is
// goauthclient_request_latency_seconds.
//
// # What this package must NOT do
//
//   - Register metrics in a global Prometheus registry; callers mount the Handler.
//   - Mutate client state.
package prometheus
