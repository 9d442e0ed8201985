package ports

import "time"

// DispatchObserver receives dispatch outcome events for metrics and
// alerting. All methods must be cheap and non-blocking; they are called
// inline from the pipeline goroutine.
//
// A dead-letter sink, if one is ever added, hangs off OnDispatchExhausted.
type DispatchObserver interface {
	// OnDispatchSuccess is called once per successfully delivered batch.
	OnDispatchSuccess(frames int, attempt int, duration time.Duration)

	// OnDispatchError is called after each failed delivery attempt.
	OnDispatchError(err error, frames int, attempt int)

	// OnDispatchExhausted is called exactly once when a batch is abandoned
	// after the final attempt.
	OnDispatchExhausted(jobIDs []string, attempts int)
}
