package ports

import (
	"context"

	"github.com/vigil-labs/framegate/internal/domain"
)

// BatchSubmitter delivers one batch of frames to the inference service.
// Implementations handle serialization and transport; retries belong to
// the dispatcher, not the submitter.
type BatchSubmitter interface {
	// Submit sends the batch and returns the parsed response.
	// A nil error means the service acknowledged the batch; the gateway's
	// obligation ends there.
	Submit(ctx context.Context, batch *domain.Batch) (SubmitResult, error)
}

// SubmitResult is the acknowledged outcome of a batch submission.
// Results are order-correlated with the submitted frames. The core only
// counts them; interpretation belongs downstream.
type SubmitResult struct {
	Results []domain.DetectionResult
}
