// Package queue implements the bounded frame queue: a fixed-capacity,
// multi-producer single-consumer buffer with drop-oldest admission.
//
// For a live camera feed freshness beats completeness, so when the queue
// is full the oldest resident frame is evicted in favor of the newest one.
// Internals are a mutex-and-condition-variable ring buffer; callers see
// only the FrameQueue operations, never the lock or the buffer.
package queue

import (
	"context"
	"sync"
	"time"

	"github.com/vigil-labs/framegate/internal/domain"
	"github.com/vigil-labs/framegate/internal/ports"
)

// DefaultCapacity is used when no capacity is configured.
const DefaultCapacity = 200

// Queue is a bounded MPSC frame buffer. Safe for concurrent TryEnqueue
// from any number of producers; Dequeue must be called by one consumer.
type Queue struct {
	mu       sync.Mutex
	notEmpty *sync.Cond

	buf      []domain.FrameJob
	head     int
	count    int
	capacity int
	closed   bool

	admitted uint64
	evicted  uint64
}

var _ ports.FrameQueue = (*Queue)(nil)

// New creates a queue with the given capacity.
// A non-positive capacity falls back to DefaultCapacity.
func New(capacity int) *Queue {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	q := &Queue{
		buf:      make([]domain.FrameJob, capacity),
		capacity: capacity,
	}
	q.notEmpty = sync.NewCond(&q.mu)
	return q
}

// TryEnqueue admits a job without blocking. At capacity the oldest resident
// job is evicted and the new job admitted; the call still returns true.
// Returns false only if the queue is closed.
func (q *Queue) TryEnqueue(job domain.FrameJob) bool {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return false
	}

	if q.count == q.capacity {
		// Drop-oldest: free the head slot for the incoming job.
		q.buf[q.head] = domain.FrameJob{}
		q.head = (q.head + 1) % q.capacity
		q.count--
		q.evicted++
	}

	q.buf[(q.head+q.count)%q.capacity] = job
	q.count++
	q.admitted++

	q.notEmpty.Signal()
	q.mu.Unlock()
	return true
}

// Dequeue removes and returns the oldest job. It blocks until a job is
// available, the timeout elapses (ok=false, nil error), or ctx is
// cancelled (ctx.Err()). A closed and drained queue returns
// domain.ErrQueueClosed.
func (q *Queue) Dequeue(ctx context.Context, timeout time.Duration) (domain.FrameJob, bool, error) {
	deadline := time.Now().Add(timeout)

	// The condition variable cannot wait with a deadline, so a timer and
	// the context wake the waiter via Broadcast.
	timer := time.AfterFunc(timeout, func() {
		q.mu.Lock()
		q.notEmpty.Broadcast()
		q.mu.Unlock()
	})
	defer timer.Stop()

	stop := context.AfterFunc(ctx, func() {
		q.mu.Lock()
		q.notEmpty.Broadcast()
		q.mu.Unlock()
	})
	defer stop()

	q.mu.Lock()
	defer q.mu.Unlock()

	for {
		if err := ctx.Err(); err != nil {
			return domain.FrameJob{}, false, err
		}
		if q.count > 0 {
			job := q.buf[q.head]
			q.buf[q.head] = domain.FrameJob{}
			q.head = (q.head + 1) % q.capacity
			q.count--
			return job, true, nil
		}
		if q.closed {
			return domain.FrameJob{}, false, domain.ErrQueueClosed
		}
		if !time.Now().Before(deadline) {
			return domain.FrameJob{}, false, nil
		}
		q.notEmpty.Wait()
	}
}

// Size returns the current queue depth.
func (q *Queue) Size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.count
}

// Stats returns a snapshot of queue counters.
func (q *Queue) Stats() ports.QueueStats {
	q.mu.Lock()
	defer q.mu.Unlock()
	return ports.QueueStats{
		Depth:    q.count,
		Capacity: q.capacity,
		Admitted: q.admitted,
		Evicted:  q.evicted,
	}
}

// Close marks the queue closed and wakes any blocked consumer. Jobs still
// resident remain dequeuable; new admissions are refused.
func (q *Queue) Close() {
	q.mu.Lock()
	q.closed = true
	q.notEmpty.Broadcast()
	q.mu.Unlock()
}
