package app

import (
	"context"
	"fmt"
	"time"

	"github.com/vigil-labs/framegate/internal/domain"
	"github.com/vigil-labs/framegate/internal/ports"
)

// Default retry parameters.
const (
	DefaultMaxAttempts = 3
	DefaultBaseDelay   = time.Second
)

// Dispatcher delivers batches to the inference service with bounded,
// exponentially backed-off retries. After the final attempt the batch is
// abandoned: one warning with size, attempts, and job IDs, then the
// pipeline moves on. There is no dead-letter store.
type Dispatcher struct {
	submitter   ports.BatchSubmitter
	maxAttempts int
	baseDelay   time.Duration
	logger      ports.Logger
	observer    ports.DispatchObserver
}

// NewDispatcher creates a dispatcher sending through the given submitter.
// observer may be nil. Non-positive parameters fall back to defaults.
func NewDispatcher(submitter ports.BatchSubmitter, maxAttempts int, baseDelay time.Duration, logger ports.Logger, observer ports.DispatchObserver) *Dispatcher {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	if baseDelay <= 0 {
		baseDelay = DefaultBaseDelay
	}
	return &Dispatcher{
		submitter:   submitter,
		maxAttempts: maxAttempts,
		baseDelay:   baseDelay,
		logger:      logger,
		observer:    observer,
	}
}

// RetryDelay returns the wait before the next attempt after the given
// 1-based failed attempt number: baseDelay * 2^attempt.
func RetryDelay(baseDelay time.Duration, attempt int) time.Duration {
	return baseDelay * (1 << attempt)
}

// Dispatch sends the batch, retrying on failure up to the attempt limit.
// Returns nil once the service acknowledges, ctx.Err() if cancelled during
// a backoff wait, and an error wrapping domain.ErrDispatchExhausted when
// the batch is abandoned.
func (d *Dispatcher) Dispatch(ctx context.Context, batch *domain.Batch) error {
	if batch.Empty() {
		return nil
	}

	var lastErr error
	for attempt := 1; attempt <= d.maxAttempts; attempt++ {
		start := time.Now()
		res, err := d.submitter.Submit(ctx, batch)
		duration := time.Since(start)

		if err == nil {
			if got := len(res.Results); got < batch.Size() {
				// Shape mismatch from the service is a partial failure to
				// log, not to crash on.
				d.logger.Warn("inference response short on results",
					ports.Int("submitted", batch.Size()),
					ports.Int("returned", got),
				)
			}
			d.logger.Info("batch dispatched",
				ports.Int("frames", batch.Size()),
				ports.Int("bytes", batch.TotalBytes),
				ports.Int("attempt", attempt),
				ports.Duration("duration", duration),
			)
			if d.observer != nil {
				d.observer.OnDispatchSuccess(batch.Size(), attempt, duration)
			}
			return nil
		}

		lastErr = err
		d.logger.Error("dispatch attempt failed",
			ports.Err(err),
			ports.Int("frames", batch.Size()),
			ports.Int("attempt", attempt),
			ports.Int("max_attempts", d.maxAttempts),
		)
		if d.observer != nil {
			d.observer.OnDispatchError(err, batch.Size(), attempt)
		}

		if attempt == d.maxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(RetryDelay(d.baseDelay, attempt)):
		}
	}

	d.logger.Warn("batch abandoned after retry exhaustion",
		ports.Int("frames", batch.Size()),
		ports.Int("attempts", d.maxAttempts),
		ports.Strings("job_ids", batch.IDs()),
	)
	if d.observer != nil {
		d.observer.OnDispatchExhausted(batch.IDs(), d.maxAttempts)
	}

	return fmt.Errorf("%w after %d attempts: %v", domain.ErrDispatchExhausted, d.maxAttempts, lastErr)
}
