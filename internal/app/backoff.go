package app

import (
	"context"
	"math/rand"
	"time"
)

// Default cycle-error cooldown bounds for the pipeline loop.
const (
	DefaultCooldownInitial = time.Second
	DefaultCooldownMax     = 10 * time.Second
)

// backoff implements exponential backoff with jitter. It paces the
// pipeline loop after unexpected cycle errors; the dispatcher's retry
// delays are deterministic and live in RetryDelay instead.
type backoff struct {
	initial time.Duration
	max     time.Duration
	current time.Duration
}

// newBackoff creates a backoff with the given initial and max durations.
func newBackoff(initial, max time.Duration) *backoff {
	return &backoff{
		initial: initial,
		max:     max,
		current: initial,
	}
}

// Sleep waits for the current backoff duration, or until ctx is done,
// and increases the duration for next time.
func (b *backoff) Sleep(ctx context.Context) {
	// Add jitter: ±20%
	jitter := float64(b.current) * 0.2 * (rand.Float64()*2 - 1)
	sleep := time.Duration(float64(b.current) + jitter)

	select {
	case <-ctx.Done():
	case <-time.After(sleep):
	}

	b.current *= 2
	if b.current > b.max {
		b.current = b.max
	}
}

// Reset resets the backoff to the initial duration.
func (b *backoff) Reset() {
	b.current = b.initial
}
