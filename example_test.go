package framegate_test

import (
	"context"
	"fmt"

	"github.com/vigil-labs/framegate"
)

// ExampleNew demonstrates how to embed the gateway in your application.
func ExampleNew() {
	cfg := framegate.Config{
		ServiceURL: "http://inference:8000",
		AuthKey:    "your-api-key",
		ListenAddr: "", // no HTTP surface, frames come from EnqueueFrame
	}

	gw, err := framegate.New(cfg)
	if err != nil {
		fmt.Printf("failed to create gateway: %v\n", err)
		return
	}

	ctx := context.Background()
	if err := gw.Start(ctx); err != nil {
		fmt.Printf("failed to start: %v\n", err)
		return
	}

	// Admit a frame; the returned ID correlates dispatch events.
	id, err := gw.EnqueueFrame([]byte("jpeg bytes"), "cam-entrance")
	if err != nil {
		fmt.Printf("failed to enqueue: %v\n", err)
		return
	}
	fmt.Printf("frame accepted: %v\n", id != "")

	_ = gw.Stop()

	// Output: frame accepted: true
}

// Example_withEventHandler demonstrates how to receive gateway events.
func Example_withEventHandler() {
	handler := &myEventHandler{}

	cfg := framegate.Config{
		ServiceURL: "http://inference:8000",
	}

	gw, err := framegate.New(cfg, framegate.WithEventHandler(handler))
	if err != nil {
		fmt.Printf("failed to create gateway: %v\n", err)
		return
	}

	_ = gw // Use gateway instance...
}

// myEventHandler implements framegate.EventHandler.
type myEventHandler struct {
	framegate.BaseEventHandler // Embed for no-op defaults
}

func (h *myEventHandler) OnDispatchSuccess(event framegate.DispatchSuccessEvent) {
	fmt.Printf("Dispatched %d frames on attempt %d in %v\n",
		event.FrameCount, event.Attempt, event.Duration)
}

func (h *myEventHandler) OnDispatchExhausted(event framegate.DispatchExhaustedEvent) {
	fmt.Printf("Dropped %d frames after %d attempts\n",
		len(event.JobIDs), event.Attempts)
}
