// Package domain contains the core entities of the frame gateway.
//
// This package is the innermost layer: it has no dependencies on
// infrastructure concerns (HTTP, file system, logging) and carries only
// the data invariants of the pipeline.
//
// # Entities
//
//   - [FrameJob]: one captured camera frame with identity and timing metadata
//   - [Batch]: an ordered group of frame jobs dispatched together
//   - [DetectionResult]: one per-image result returned by the inference service
package domain
