// ABOUTME: Backoff calculation for retried gateway calls
// ABOUTME: Exponential growth with jitter, capped to keep waits bounded
package util

import (
	"math/rand/v2"
	"time"
)

const maxBackoff = 30 * time.Second

// Backoff returns how long to wait before retry number attempt: the base
// delay doubled each attempt, capped at 30 seconds, with random jitter in
// the -25% to +25% band so concurrent workers do not retry in lockstep.
// Attempts at or below zero wait nothing.
func Backoff(base time.Duration, attempt int) time.Duration {
	if attempt <= 0 || base <= 0 {
		return 0
	}
	// Shift cap keeps 1<<attempt inside int64 range.
	if attempt > 30 {
		attempt = 30
	}
	d := base * time.Duration(1<<uint(attempt))
	if d > maxBackoff || d < 0 {
		d = maxBackoff
	}
	if half := int64(d) / 2; half > 0 {
		d += time.Duration(rand.Int64N(half)) - d/4
	}
	return d
}
