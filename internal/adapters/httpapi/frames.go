package httpapi

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/vigil-labs/framegate/internal/domain"
	"github.com/vigil-labs/framegate/internal/ports"
)

// frameAccepted is the 202 reply to a frame upload.
type frameAccepted struct {
	ID         string `json:"id"`
	QueueDepth int    `json:"queue_depth"`
}

// handleFrames accepts one frame per request, multipart ("file" field) or
// raw image body, and admits it to the queue. Producers are fire-and-forget:
// the reply acknowledges admission, not inference.
func (s *Server) handleFrames(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxFrameBytes)

	payload, source, err := readFramePayload(r)
	if err != nil {
		s.logger.Warn("rejected frame upload", ports.Err(err))
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if len(payload) == 0 {
		http.Error(w, "empty frame payload", http.StatusBadRequest)
		return
	}

	job := domain.NewFrameJob(payload, source)
	if !s.queue.TryEnqueue(job) {
		http.Error(w, "gateway shutting down", http.StatusServiceUnavailable)
		return
	}

	s.logger.Debug("frame admitted",
		ports.String("id", job.ID),
		ports.String("source", job.Source),
		ports.Int("bytes", len(job.Payload)),
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	if err := json.NewEncoder(w).Encode(frameAccepted{ID: job.ID, QueueDepth: s.queue.Size()}); err != nil {
		s.logger.Error("failed to encode frame response", ports.Err(err))
	}
}

// readFramePayload extracts the image bytes and a source label from
// either a multipart form or a raw body.
func readFramePayload(r *http.Request) ([]byte, string, error) {
	contentType := r.Header.Get("Content-Type")

	if strings.HasPrefix(contentType, "multipart/form-data") {
		file, header, err := r.FormFile("file")
		if err != nil {
			return nil, "", err
		}
		defer file.Close()

		payload, err := io.ReadAll(file)
		if err != nil {
			return nil, "", err
		}
		return payload, header.Filename, nil
	}

	payload, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, "", err
	}
	return payload, r.Header.Get("X-Frame-Source"), nil
}
