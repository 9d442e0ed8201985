// Package framegate ingests camera frames, groups them into bounded
// batches, and dispatches the batches to a fall-detection inference
// service over HTTP with bounded retries.
//
// # Basic usage
//
//	cfg := framegate.Config{
//		ServiceURL: "http://inference:8000",
//	}
//
//	gw, err := framegate.New(cfg)
//	if err != nil {
//		return err
//	}
//
//	if err := gw.Start(ctx); err != nil {
//		return err
//	}
//	defer gw.Stop()
//
//	id, err := gw.EnqueueFrame(jpegBytes, "cam-entrance")
//
// Frames are buffered in a bounded queue. When the queue is full the
// oldest frame is evicted so the newest is always admitted; a stale
// camera frame is worth less than a fresh one. A background loop
// drains the queue into batches of at most MaxBatchSize frames,
// closing a batch early when no frame arrives within CollectTimeout.
// Each batch is delivered with up to MaxAttempts attempts and
// exponential backoff between them; a batch that exhausts its attempts
// is dropped and reported via the event handler.
//
// # Events
//
// To observe state changes and dispatch outcomes, implement
// [EventHandler] and pass it via [WithEventHandler]:
//
//	handler := &myHandler{}
//	gw, err := framegate.New(cfg, framegate.WithEventHandler(handler))
//
// Embed [BaseEventHandler] for no-op defaults.
//
// # HTTP surface
//
// When ListenAddr is set the gateway exposes a small HTTP API:
// POST /frames admits a frame, GET /healthz reports gateway and
// inference service health, and GET /statistics proxies the inference
// service's statistics endpoint.
package framegate
