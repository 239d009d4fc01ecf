package goAuthClient

import (
	"sync/atomic"
	"time"
)

// MetricID identifies one in-process counter or histogram.
type MetricID uint16

const (
	// MetricLoginSuccess counts completed logins.
	MetricLoginSuccess MetricID = iota
	// MetricLoginFailure counts rejected or failed logins.
	MetricLoginFailure
	// MetricRegisterSuccess counts completed registrations.
	MetricRegisterSuccess
	// MetricRegisterFailure counts server-rejected registrations.
	MetricRegisterFailure
	// MetricRegisterValidationRejected counts registrations stopped locally
	// before any network traffic.
	MetricRegisterValidationRejected
	// MetricLogout counts logouts, including ones where the server call failed.
	MetricLogout
	// MetricLogoutServerError counts logout requests the server rejected.
	MetricLogoutServerError
	// MetricCurrentUserSuccess counts successful profile refreshes.
	MetricCurrentUserSuccess
	// MetricCurrentUserFailure counts profile refreshes that evicted the session.
	MetricCurrentUserFailure
	// MetricPasswordForgotRequest counts reset-link requests.
	MetricPasswordForgotRequest
	// MetricPasswordResetSuccess counts completed password resets.
	MetricPasswordResetSuccess
	// MetricPasswordResetFailure counts failed password resets.
	MetricPasswordResetFailure
	// MetricPasswordUpdateSuccess counts authenticated password changes.
	MetricPasswordUpdateSuccess
	// MetricPasswordUpdateFailure counts rejected password changes.
	MetricPasswordUpdateFailure
	// MetricCSRFBootstrap counts successful CSRF cookie fetches.
	MetricCSRFBootstrap
	// MetricCSRFBootstrapFailure counts failed CSRF cookie fetches.
	MetricCSRFBootstrapFailure
	// MetricThrottleRetry counts scheduled 429 retries.
	MetricThrottleRetry
	// MetricThrottleExhausted counts requests that stayed throttled past the budget.
	MetricThrottleExhausted
	// MetricAuthRedirect counts 401 evictions that navigated to login.
	MetricAuthRedirect
	// MetricAuthRedirectSuppressed counts 401s absorbed on public locations.
	MetricAuthRedirectSuppressed
	// MetricGuardAllowed counts guard passes.
	MetricGuardAllowed
	// MetricGuardDeniedNoCredentials counts guard denials with no session.
	MetricGuardDeniedNoCredentials
	// MetricGuardCooldownSkip counts guard passes that trusted local state.
	MetricGuardCooldownSkip
	// MetricGuardRevalidate counts guard passes that hit the server.
	MetricGuardRevalidate
	// MetricGuardDeniedValidation counts guard denials after a failed revalidation.
	MetricGuardDeniedValidation
	// MetricTokenExpiredLocally counts sessions evicted by the local expiry peek.
	MetricTokenExpiredLocally
	// MetricRequestLatency is the API round-trip latency histogram.
	MetricRequestLatency
	metricIDCount
)

const (
	histBucketCount = 8
	cacheLineSize   = 64
)

type metricHistogram struct {
	buckets [histBucketCount]uint64
}

// Counters get their own cache line so hot increments do not false-share.
type paddedCounter struct {
	value uint64
	_     [cacheLineSize - 8]byte
}

// Metrics is a fixed-size set of atomic counters plus one latency histogram.
// A nil or disabled Metrics accepts all calls as no-ops.
type Metrics struct {
	enabled       bool
	enableLatency bool
	counters      [metricIDCount]paddedCounter
	histograms    [metricIDCount]metricHistogram
}

// MetricsSnapshot is a point-in-time copy of all counters and histograms.
type MetricsSnapshot struct {
	Counters   map[MetricID]uint64
	Histograms map[MetricID][]uint64
}

// NewMetrics creates a metrics set per the given config.
func NewMetrics(cfg MetricsConfig) *Metrics {
	return &Metrics{
		enabled:       cfg.Enabled,
		enableLatency: cfg.Enabled && cfg.EnableLatencyHistograms,
	}
}

// Enabled reports whether counters are being recorded.
func (m *Metrics) Enabled() bool {
	return m != nil && m.enabled
}

// LatencyEnabled reports whether the latency histogram is being recorded.
func (m *Metrics) LatencyEnabled() bool {
	return m != nil && m.enableLatency
}

// Inc adds one to the counter.
func (m *Metrics) Inc(id MetricID) {
	if m == nil || !m.enabled || id >= metricIDCount {
		return
	}
	atomic.AddUint64(&m.counters[id].value, 1)
}

// Observe records one latency sample. Only MetricRequestLatency carries a
// histogram.
func (m *Metrics) Observe(id MetricID, d time.Duration) {
	if m == nil || !m.enabled || !m.enableLatency || id >= metricIDCount {
		return
	}
	if id != MetricRequestLatency {
		return
	}

	b := bucketIndex(d)
	atomic.AddUint64(&m.histograms[id].buckets[b], 1)
}

// Value reads one counter.
func (m *Metrics) Value(id MetricID) uint64 {
	if m == nil || id >= metricIDCount {
		return 0
	}
	return atomic.LoadUint64(&m.counters[id].value)
}

// Snapshot copies every counter and, when enabled, the latency histogram.
func (m *Metrics) Snapshot() MetricsSnapshot {
	if m == nil || !m.enabled {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}

	s := MetricsSnapshot{
		Counters:   make(map[MetricID]uint64, int(metricIDCount)),
		Histograms: make(map[MetricID][]uint64, 1),
	}

	for id := MetricID(0); id < metricIDCount; id++ {
		s.Counters[id] = atomic.LoadUint64(&m.counters[id].value)
	}

	if m.enableLatency {
		buckets := make([]uint64, histBucketCount)
		for i := 0; i < histBucketCount; i++ {
			buckets[i] = atomic.LoadUint64(&m.histograms[MetricRequestLatency].buckets[i])
		}
		s.Histograms[MetricRequestLatency] = buckets
	}

	return s
}

func bucketIndex(d time.Duration) int {
	ms := d.Milliseconds()

	switch {
	case ms <= 5:
		return 0
	case ms <= 10:
		return 1
	case ms <= 25:
		return 2
	case ms <= 50:
		return 3
	case ms <= 100:
		return 4
	case ms <= 250:
		return 5
	case ms <= 500:
		return 6
	default:
		return 7
	}
}
