package domain

import "errors"

// Domain errors returned by the public API. Check with errors.Is.
var (
	// ErrQueueClosed is returned when operating on a closed frame queue.
	ErrQueueClosed = errors.New("framegate: queue closed")

	// ErrDispatchExhausted is returned when a batch is abandoned after the
	// maximum number of delivery attempts.
	ErrDispatchExhausted = errors.New("framegate: dispatch retries exhausted")

	// ErrAlreadyRunning is returned when Start() is called on a running gateway.
	ErrAlreadyRunning = errors.New("framegate: already running")

	// ErrNotRunning is returned when Stop() is called on a stopped gateway.
	ErrNotRunning = errors.New("framegate: not running")

	// ErrShutdownTimeout is returned when graceful shutdown times out.
	ErrShutdownTimeout = errors.New("framegate: shutdown timeout")

	// ErrInvalidConfig is returned when configuration validation fails.
	ErrInvalidConfig = errors.New("framegate: invalid configuration")
)
