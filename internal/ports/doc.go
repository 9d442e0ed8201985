// Package ports defines the interfaces that connect the application layer
// to infrastructure adapters.
//
// Ports are the boundaries between the pipeline core and the outside world:
// they state what the core needs without fixing how it is provided.
//
// # Port Interfaces
//
//   - [FrameQueue]: bounded admission buffer between producers and the collector
//   - [BatchSubmitter]: delivers a batch to the inference service
//   - [DispatchObserver]: receives dispatch outcome events
//   - [HTTPClient]: HTTP request abstraction for dependency injection
//   - [Logger]: structured logging abstraction
//
// The application layer (internal/app) depends only on these interfaces;
// adapters (internal/adapters) implement them. This keeps the pipeline
// testable with in-memory fakes and the dependency direction inward.
package ports
