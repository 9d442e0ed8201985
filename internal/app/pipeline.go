package app

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/vigil-labs/framegate/internal/domain"
	"github.com/vigil-labs/framegate/internal/ports"
)

// DefaultIdleSleep is the pause after an empty collection round.
const DefaultIdleSleep = 50 * time.Millisecond

// PipelineState is the pipeline loop's current phase.
type PipelineState int32

const (
	PipelineIdle PipelineState = iota
	PipelineCollecting
	PipelineDispatching
	PipelineStopped
)

// String returns a human-readable representation of the state.
func (s PipelineState) String() string {
	switch s {
	case PipelineIdle:
		return "Idle"
	case PipelineCollecting:
		return "Collecting"
	case PipelineDispatching:
		return "Dispatching"
	case PipelineStopped:
		return "Stopped"
	default:
		return "Unknown"
	}
}

// Pipeline ties the collector and dispatcher into the long-running
// consume loop: collect a batch, dispatch it to completion, repeat.
// One batch is in flight at a time; new frames keep accumulating in the
// queue meanwhile, bounded by capacity and drop-oldest.
type Pipeline struct {
	collector  *Collector
	dispatcher *Dispatcher
	idleSleep  time.Duration
	logger     ports.Logger

	state atomic.Int32
}

// NewPipeline creates a pipeline from the given collector and dispatcher.
// A non-positive idleSleep falls back to DefaultIdleSleep.
func NewPipeline(collector *Collector, dispatcher *Dispatcher, idleSleep time.Duration, logger ports.Logger) *Pipeline {
	if idleSleep <= 0 {
		idleSleep = DefaultIdleSleep
	}
	return &Pipeline{
		collector:  collector,
		dispatcher: dispatcher,
		idleSleep:  idleSleep,
		logger:     logger,
	}
}

// State returns the current pipeline phase. Safe from any goroutine.
func (p *Pipeline) State() PipelineState {
	return PipelineState(p.state.Load())
}

// Run executes the pipeline loop until ctx is cancelled or the queue is
// closed. Transient failures are logged and followed by a cooldown; they
// never terminate the loop.
func (p *Pipeline) Run(ctx context.Context) error {
	defer p.state.Store(int32(PipelineStopped))

	cooldown := newBackoff(DefaultCooldownInitial, DefaultCooldownMax)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		p.state.Store(int32(PipelineCollecting))
		batch, err := p.collector.Collect(ctx)
		if err != nil {
			if isShutdown(err) {
				return err
			}
			p.logger.Error("collection cycle failed", ports.Err(err))
			cooldown.Sleep(ctx)
			continue
		}

		if batch.Empty() {
			p.state.Store(int32(PipelineIdle))
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(p.idleSleep):
			}
			continue
		}

		p.state.Store(int32(PipelineDispatching))
		if err := p.dispatcher.Dispatch(ctx, batch); err != nil {
			if isShutdown(err) {
				return err
			}
			// Exhaustion is terminal for the batch and already logged by
			// the dispatcher; anything else gets the cooldown treatment.
			if !errors.Is(err, domain.ErrDispatchExhausted) {
				p.logger.Error("dispatch cycle failed", ports.Err(err))
				cooldown.Sleep(ctx)
			}
			continue
		}

		cooldown.Reset()
	}
}

// isShutdown reports whether err should unwind the pipeline loop rather
// than be treated as a cycle failure.
func isShutdown(err error) bool {
	return errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, domain.ErrQueueClosed)
}
