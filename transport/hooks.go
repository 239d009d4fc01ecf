package transport

import "time"

// Hooks receives pipeline events for metrics and audit. Nil members are
// skipped, so callers wire only what they observe.
type Hooks struct {
	// RetryScheduled fires before each throttle retry sleep.
	RetryScheduled func(attempt int, delay time.Duration)
	// RetriesExhausted fires when a request stays throttled past the budget.
	RetriesExhausted func(method, path string)
	// AuthRedirect fires on every 401 policy decision. suppressed is true
	// when the public-location rule kept the session intact.
	AuthRedirect func(location string, suppressed bool)
	// CSRFBootstrap fires after each bootstrap attempt with its outcome.
	CSRFBootstrap func(err error)
}

func (h Hooks) retryScheduled(attempt int, delay time.Duration) {
	if h.RetryScheduled != nil {
		h.RetryScheduled(attempt, delay)
	}
}

func (h Hooks) retriesExhausted(method, path string) {
	if h.RetriesExhausted != nil {
		h.RetriesExhausted(method, path)
	}
}

func (h Hooks) authRedirect(location string, suppressed bool) {
	if h.AuthRedirect != nil {
		h.AuthRedirect(location, suppressed)
	}
}

func (h Hooks) csrfBootstrap(err error) {
	if h.CSRFBootstrap != nil {
		h.CSRFBootstrap(err)
	}
}
