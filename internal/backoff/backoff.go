// Package backoff computes retry delays for throttled requests.
package backoff

import "time"

// Delay returns the wait before retry number attempt (1-based). The schedule
// doubles per attempt starting from initial: initial, 2*initial, 4*initial.
func Delay(initial time.Duration, attempt int) time.Duration {
	if initial <= 0 {
		return 0
	}
	if attempt < 1 {
		attempt = 1
	}
	// Cap the shift so pathological attempt counts cannot overflow.
	shift := uint(attempt - 1)
	if shift > 30 {
		shift = 30
	}
	return initial << shift
}
