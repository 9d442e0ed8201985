package queue

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/vigil-labs/framegate/internal/domain"
)

func job(id string) domain.FrameJob {
	return domain.FrameJob{ID: id, Payload: []byte(id), EnqueuedAt: time.Now()}
}

func mustDequeue(t *testing.T, q *Queue) domain.FrameJob {
	t.Helper()
	j, ok, err := q.Dequeue(context.Background(), 100*time.Millisecond)
	if err != nil {
		t.Fatalf("Dequeue returned error: %v", err)
	}
	if !ok {
		t.Fatal("Dequeue timed out, want job")
	}
	return j
}

func TestQueue_DropOldest(t *testing.T) {
	q := New(3)

	for _, id := range []string{"A", "B", "C", "D"} {
		if !q.TryEnqueue(job(id)) {
			t.Fatalf("TryEnqueue(%s) = false, want true", id)
		}
	}

	if got := q.Size(); got != 3 {
		t.Fatalf("Size() = %d, want 3", got)
	}

	for _, want := range []string{"B", "C", "D"} {
		if got := mustDequeue(t, q).ID; got != want {
			t.Errorf("Dequeue = %s, want %s", got, want)
		}
	}
	if got := q.Size(); got != 0 {
		t.Errorf("Size() = %d after draining, want 0", got)
	}
}

func TestQueue_SizeNeverExceedsCapacity(t *testing.T) {
	const capacity = 5
	q := New(capacity)

	for i := 0; i < 50; i++ {
		q.TryEnqueue(job(fmt.Sprintf("j%d", i)))
		if got := q.Size(); got > capacity {
			t.Fatalf("Size() = %d exceeds capacity %d", got, capacity)
		}
	}

	st := q.Stats()
	if st.Admitted != 50 {
		t.Errorf("Stats().Admitted = %d, want 50", st.Admitted)
	}
	if st.Evicted != 45 {
		t.Errorf("Stats().Evicted = %d, want 45", st.Evicted)
	}
}

func TestQueue_FIFOAcrossConcurrentProducers(t *testing.T) {
	const producers = 8
	const perProducer = 50
	q := New(producers * perProducer)

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				q.TryEnqueue(job(fmt.Sprintf("p%d-%d", p, i)))
			}
		}(p)
	}
	wg.Wait()

	// Admission is serialized, so each producer's jobs must come out in
	// its own submission order.
	lastSeen := make(map[string]int)
	for p := 0; p < producers; p++ {
		lastSeen[fmt.Sprintf("p%d", p)] = -1
	}

	total := 0
	for q.Size() > 0 {
		j := mustDequeue(t, q)
		var p, i int
		if _, err := fmt.Sscanf(j.ID, "p%d-%d", &p, &i); err != nil {
			t.Fatalf("unexpected job ID %q", j.ID)
		}
		key := fmt.Sprintf("p%d", p)
		if i <= lastSeen[key] {
			t.Fatalf("producer %d order violated: got %d after %d", p, i, lastSeen[key])
		}
		lastSeen[key] = i
		total++
	}
	if total != producers*perProducer {
		t.Errorf("dequeued %d jobs, want %d", total, producers*perProducer)
	}
}

func TestQueue_DequeueTimeout(t *testing.T) {
	q := New(4)

	start := time.Now()
	_, ok, err := q.Dequeue(context.Background(), 50*time.Millisecond)
	elapsed := time.Since(start)

	if err != nil {
		t.Fatalf("Dequeue returned error: %v", err)
	}
	if ok {
		t.Fatal("Dequeue returned a job from an empty queue")
	}
	if elapsed < 40*time.Millisecond {
		t.Errorf("Dequeue returned after %v, want ~50ms wait", elapsed)
	}
	if elapsed > 500*time.Millisecond {
		t.Errorf("Dequeue took %v, way past the timeout", elapsed)
	}
}

func TestQueue_DequeueWakesOnEnqueue(t *testing.T) {
	q := New(4)

	go func() {
		time.Sleep(20 * time.Millisecond)
		q.TryEnqueue(job("late"))
	}()

	j, ok, err := q.Dequeue(context.Background(), 2*time.Second)
	if err != nil || !ok {
		t.Fatalf("Dequeue = (%v, %v), want job", ok, err)
	}
	if j.ID != "late" {
		t.Errorf("Dequeue = %s, want late", j.ID)
	}
}

func TestQueue_CancelWhileBlocked(t *testing.T) {
	q := New(4)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		_, _, err := q.Dequeue(ctx, 10*time.Second)
		done <- err
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Dequeue error = %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Dequeue did not return after cancellation")
	}

	// Queue must remain usable and consistent after the aborted wait.
	if got := q.Size(); got != 0 {
		t.Errorf("Size() = %d after cancelled wait, want 0", got)
	}
	if !q.TryEnqueue(job("after")) {
		t.Error("TryEnqueue failed after cancelled wait")
	}
	if got := q.Size(); got != 1 {
		t.Errorf("Size() = %d, want 1", got)
	}
}

func TestQueue_Close(t *testing.T) {
	q := New(4)
	q.TryEnqueue(job("resident"))
	q.Close()

	if q.TryEnqueue(job("refused")) {
		t.Error("TryEnqueue succeeded on closed queue")
	}

	// Resident jobs drain first, then the closed signal surfaces.
	j, ok, err := q.Dequeue(context.Background(), 50*time.Millisecond)
	if err != nil || !ok || j.ID != "resident" {
		t.Fatalf("Dequeue = (%s, %v, %v), want resident job", j.ID, ok, err)
	}

	_, ok, err = q.Dequeue(context.Background(), 50*time.Millisecond)
	if ok {
		t.Error("Dequeue returned a job from a drained closed queue")
	}
	if !errors.Is(err, domain.ErrQueueClosed) {
		t.Errorf("Dequeue error = %v, want ErrQueueClosed", err)
	}
}

func TestQueue_CloseWakesBlockedConsumer(t *testing.T) {
	q := New(4)

	done := make(chan error, 1)
	go func() {
		_, _, err := q.Dequeue(context.Background(), 10*time.Second)
		done <- err
	}()

	time.Sleep(20 * time.Millisecond)
	q.Close()

	select {
	case err := <-done:
		if !errors.Is(err, domain.ErrQueueClosed) {
			t.Errorf("Dequeue error = %v, want ErrQueueClosed", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Dequeue did not return after Close")
	}
}
