package domain

import (
	"time"

	"github.com/google/uuid"
)

// FrameJob is one captured camera frame queued for inference.
// A job is immutable once created: the queue owns it from admission until
// dequeue, after which it belongs to exactly one batch and is read-only.
type FrameJob struct {
	// ID uniquely identifies the job. Assigned at admission time.
	ID string

	// Source identifies the producer that submitted the frame
	// (camera name, spool directory, upload endpoint). May be empty.
	Source string

	// Payload is the encoded image. Opaque to the gateway.
	Payload []byte

	// EnqueuedAt is the admission timestamp.
	EnqueuedAt time.Time
}

// NewFrameJob creates a frame job for the given payload, assigning a fresh
// ID and the current time.
func NewFrameJob(payload []byte, source string) FrameJob {
	return FrameJob{
		ID:         uuid.NewString(),
		Source:     source,
		Payload:    payload,
		EnqueuedAt: time.Now(),
	}
}

// DetectionResult is one per-image entry from the inference service's batch
// response. The gateway forwards these verbatim and only counts them; the
// structured contents are owned by the downstream service.
type DetectionResult struct {
	Filename         string   `json:"filename,omitempty"`
	ImageHash        string   `json:"image_hash,omitempty"`
	Result           string   `json:"result,omitempty"`
	Confidence       *float64 `json:"confidence,omitempty"`
	ImageSize        string   `json:"image_size,omitempty"`
	ProcessingTimeMs int      `json:"processing_time_ms,omitempty"`
	Cached           bool     `json:"cached,omitempty"`
	Error            string   `json:"error,omitempty"`
}
