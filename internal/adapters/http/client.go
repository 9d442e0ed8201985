// Package http implements the outbound adapter for the fall-detection
// inference service.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"

	"github.com/vigil-labs/framegate/internal/domain"
	"github.com/vigil-labs/framegate/internal/ports"
)

// Inference service endpoints.
const (
	detectBatchEndpoint = "/detect-fall-batch/"
	healthEndpoint      = "/health"
	statisticsEndpoint  = "/statistics"
)

// InferenceClient implements ports.BatchSubmitter against the inference
// service's HTTP API. One Submit call maps to one batch detection request.
type InferenceClient struct {
	client     ports.HTTPClient
	logger     ports.Logger
	serviceURL string
	authKey    string
}

var _ ports.BatchSubmitter = (*InferenceClient)(nil)

// NewInferenceClient creates a client for the service at serviceURL.
// authKey may be empty when the service is unauthenticated.
func NewInferenceClient(client ports.HTTPClient, logger ports.Logger, serviceURL, authKey string) *InferenceClient {
	return &InferenceClient{
		client:     client,
		logger:     logger,
		serviceURL: serviceURL,
		authKey:    authKey,
	}
}

// batchResponse is the service's batch detection reply: one entry per
// submitted image, order-correlated with the request.
type batchResponse struct {
	Results []domain.DetectionResult `json:"results"`
}

// Submit sends the batch as one multipart request, one image part per
// frame, and parses the per-image results.
func (c *InferenceClient) Submit(ctx context.Context, batch *domain.Batch) (ports.SubmitResult, error) {
	if batch.Empty() {
		return ports.SubmitResult{}, nil
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	for _, job := range batch.Jobs {
		// The service rejects parts without an image content type, so the
		// default octet-stream from CreateFormFile won't do.
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition",
			fmt.Sprintf(`form-data; name="files"; filename="%s.jpg"`, job.ID))
		h.Set("Content-Type", "image/jpeg")

		part, err := writer.CreatePart(h)
		if err != nil {
			return ports.SubmitResult{}, fmt.Errorf("create image part: %w", err)
		}
		if _, err := part.Write(job.Payload); err != nil {
			return ports.SubmitResult{}, fmt.Errorf("write image payload: %w", err)
		}
	}

	if err := writer.Close(); err != nil {
		return ports.SubmitResult{}, fmt.Errorf("finalize multipart: %w", err)
	}

	url := c.serviceURL + detectBatchEndpoint
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return ports.SubmitResult{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if c.authKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.authKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return ports.SubmitResult{}, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		respBody, _ := io.ReadAll(resp.Body)
		return ports.SubmitResult{}, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(respBody))
	}

	var parsed batchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return ports.SubmitResult{}, fmt.Errorf("decode response: %w", err)
	}

	return ports.SubmitResult{Results: parsed.Results}, nil
}

// Health probes the service's health endpoint. Returns nil if the service
// answers 2xx.
func (c *InferenceClient) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.serviceURL+healthEndpoint, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("server returned %d", resp.StatusCode)
	}
	return nil
}

// Statistics fetches the service's statistics endpoint and returns the
// status code and body verbatim for proxying.
func (c *InferenceClient) Statistics(ctx context.Context) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.serviceURL+statisticsEndpoint, nil)
	if err != nil {
		return 0, nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("read response: %w", err)
	}
	return resp.StatusCode, body, nil
}
