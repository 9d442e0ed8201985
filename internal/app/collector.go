package app

import (
	"context"
	"errors"
	"time"

	"github.com/vigil-labs/framegate/internal/domain"
	"github.com/vigil-labs/framegate/internal/ports"
)

// Default collection parameters.
const (
	DefaultMaxBatchSize   = 10
	DefaultCollectTimeout = 100 * time.Millisecond
)

// Collector drains the frame queue into bounded batches.
//
// A batch closes as soon as it is full or a dequeue times out, so batch
// size adapts to load: saturated under heavy traffic, small and quick
// under light traffic.
type Collector struct {
	queue          ports.FrameQueue
	maxBatchSize   int
	collectTimeout time.Duration
	logger         ports.Logger
}

// NewCollector creates a collector reading from the given queue.
// Non-positive parameters fall back to defaults.
func NewCollector(queue ports.FrameQueue, maxBatchSize int, collectTimeout time.Duration, logger ports.Logger) *Collector {
	if maxBatchSize <= 0 {
		maxBatchSize = DefaultMaxBatchSize
	}
	if collectTimeout <= 0 {
		collectTimeout = DefaultCollectTimeout
	}
	return &Collector{
		queue:          queue,
		maxBatchSize:   maxBatchSize,
		collectTimeout: collectTimeout,
		logger:         logger,
	}
}

// Collect gathers up to maxBatchSize jobs, closing the batch early when a
// dequeue times out. The returned batch may be empty. Jobs already
// collected always count, even if a later slot times out.
//
// An unexpected dequeue error abandons that slot but collection continues;
// cancellation and queue closure abort immediately and propagate.
func (c *Collector) Collect(ctx context.Context) (*domain.Batch, error) {
	batch := domain.NewBatch(c.maxBatchSize)

	for slot := 0; slot < c.maxBatchSize; slot++ {
		job, ok, err := c.queue.Dequeue(ctx, c.collectTimeout)
		if err != nil {
			if errors.Is(err, context.Canceled) ||
				errors.Is(err, context.DeadlineExceeded) ||
				errors.Is(err, domain.ErrQueueClosed) {
				return nil, err
			}
			c.logger.Error("dequeue failed, skipping slot",
				ports.Err(err),
				ports.Int("slot", slot),
				ports.Int("collected", batch.Size()),
			)
			continue
		}
		if !ok {
			// Producers are quiet; close the batch with what we have.
			break
		}
		batch.Add(job)
	}

	return batch, nil
}
