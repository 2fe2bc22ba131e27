package utils

import (
	"time"

	"github.com/cenkalti/backoff/v4"
)

// NewFetchBackoff creates the retry policy for outbound news fetches.
// Kept short: the fetch has a hard deadline and a built-in fallback,
// so retries only need to ride out transient hiccups.
func NewFetchBackoff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	b.MaxInterval = 2 * time.Second
	b.MaxElapsedTime = 8 * time.Second
	b.Multiplier = 2.0
	b.RandomizationFactor = 0.1
	return b
}
