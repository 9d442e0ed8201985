package framegate

import (
	"time"

	"github.com/vigil-labs/framegate/internal/app"
)

// State represents the lifecycle state of a Gateway.
type State int

const (
	StateStopped State = iota
	StateStarting
	StateRunning
	StateStopping
	StateCrashed
)

// String returns a human-readable representation of the state.
func (s State) String() string {
	switch s {
	case StateStopped:
		return "Stopped"
	case StateStarting:
		return "Starting"
	case StateRunning:
		return "Running"
	case StateStopping:
		return "Stopping"
	case StateCrashed:
		return "Crashed"
	default:
		return "Unknown"
	}
}

// StateChangeEvent is emitted when the gateway transitions between
// lifecycle states.
type StateChangeEvent struct {
	Previous State
	Current  State
	Reason   string
}

// DispatchSuccessEvent is emitted after a batch is accepted by the
// inference service.
type DispatchSuccessEvent struct {
	FrameCount int
	Attempt    int
	Duration   time.Duration
}

// DispatchErrorEvent is emitted after a failed delivery attempt. The
// batch may still be retried.
type DispatchErrorEvent struct {
	Error      error
	FrameCount int
	Attempt    int
}

// DispatchExhaustedEvent is emitted when a batch is abandoned after the
// final delivery attempt failed. JobIDs identifies the lost frames.
type DispatchExhaustedEvent struct {
	JobIDs   []string
	Attempts int
}

// EventHandler receives gateway events. Handlers are called
// synchronously from gateway goroutines and must not block.
// Embed BaseEventHandler for no-op defaults.
type EventHandler interface {
	OnStateChange(event StateChangeEvent)
	OnDispatchSuccess(event DispatchSuccessEvent)
	OnDispatchError(event DispatchErrorEvent)
	OnDispatchExhausted(event DispatchExhaustedEvent)
}

// BaseEventHandler provides no-op implementations of all EventHandler
// methods. Embed it to implement only the events you care about.
type BaseEventHandler struct{}

func (BaseEventHandler) OnStateChange(event StateChangeEvent)             {}
func (BaseEventHandler) OnDispatchSuccess(event DispatchSuccessEvent)     {}
func (BaseEventHandler) OnDispatchError(event DispatchErrorEvent)         {}
func (BaseEventHandler) OnDispatchExhausted(event DispatchExhaustedEvent) {}

func convertState(s app.State) State {
	switch s {
	case app.StateStopped:
		return StateStopped
	case app.StateStarting:
		return StateStarting
	case app.StateRunning:
		return StateRunning
	case app.StateStopping:
		return StateStopping
	case app.StateCrashed:
		return StateCrashed
	default:
		return StateStopped
	}
}

// eventEmitterWrapper adapts EventHandler to the internal emitter and
// observer interfaces. A nil handler makes every callback a no-op.
type eventEmitterWrapper struct {
	handler EventHandler
}

func (e *eventEmitterWrapper) OnStateChange(previous, current app.State, reason string) {
	if e.handler == nil {
		return
	}
	e.handler.OnStateChange(StateChangeEvent{
		Previous: convertState(previous),
		Current:  convertState(current),
		Reason:   reason,
	})
}

func (e *eventEmitterWrapper) OnDispatchSuccess(frames, attempt int, duration time.Duration) {
	if e.handler == nil {
		return
	}
	e.handler.OnDispatchSuccess(DispatchSuccessEvent{
		FrameCount: frames,
		Attempt:    attempt,
		Duration:   duration,
	})
}

func (e *eventEmitterWrapper) OnDispatchError(err error, frames, attempt int) {
	if e.handler == nil {
		return
	}
	e.handler.OnDispatchError(DispatchErrorEvent{
		Error:      err,
		FrameCount: frames,
		Attempt:    attempt,
	})
}

func (e *eventEmitterWrapper) OnDispatchExhausted(jobIDs []string, attempts int) {
	if e.handler == nil {
		return
	}
	e.handler.OnDispatchExhausted(DispatchExhaustedEvent{
		JobIDs:   jobIDs,
		Attempts: attempts,
	})
}
