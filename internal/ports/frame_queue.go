package ports

import (
	"context"
	"time"

	"github.com/vigil-labs/framegate/internal/domain"
)

// FrameQueue is the bounded admission buffer between frame producers and
// the single pipeline consumer.
//
// Many goroutines may call TryEnqueue concurrently; exactly one consumer
// calls Dequeue. Delivery order is FIFO over the jobs that were admitted
// and not evicted.
type FrameQueue interface {
	// TryEnqueue admits a job without blocking. When the queue is at
	// capacity the oldest resident job is evicted to make room; admission
	// still succeeds. Returns false only if the queue is closed.
	TryEnqueue(job domain.FrameJob) bool

	// Dequeue blocks until a job is available, the timeout elapses, or ctx
	// is cancelled. A timeout is an expected condition, not an error: it
	// returns ok=false with a nil error. Cancellation returns ctx.Err();
	// a closed and drained queue returns domain.ErrQueueClosed.
	Dequeue(ctx context.Context, timeout time.Duration) (job domain.FrameJob, ok bool, err error)

	// Size returns the current queue depth.
	Size() int

	// Stats returns a snapshot of queue counters.
	Stats() QueueStats

	// Close marks the queue closed and wakes any blocked consumer.
	Close()
}

// QueueStats is a point-in-time snapshot of queue counters, exposed for
// health reporting. It plays no part in pipeline control flow.
type QueueStats struct {
	Depth    int    `json:"depth"`
	Capacity int    `json:"capacity"`
	Admitted uint64 `json:"admitted"`
	Evicted  uint64 `json:"evicted"`
}
