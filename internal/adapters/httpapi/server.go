// Package httpapi exposes the gateway's thin REST surface: frame upload,
// health, and a verbatim statistics proxy. It contains no pipeline logic;
// everything here is a wrapper around the queue and the inference client.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/vigil-labs/framegate/internal/ports"
)

// maxFrameBytes caps an uploaded frame body.
const maxFrameBytes = 10 << 20 // 10MB

// InferenceProbe is the read-only view of the inference service the API
// needs for health and statistics reporting.
type InferenceProbe interface {
	Health(ctx context.Context) error
	Statistics(ctx context.Context) (status int, body []byte, err error)
}

// Server serves the gateway HTTP API.
type Server struct {
	queue         ports.FrameQueue
	probe         InferenceProbe
	pipelineState func() string
	logger        ports.Logger
	startTime     time.Time
}

// NewServer creates the API server. pipelineState reports the pipeline
// loop's current phase for health output.
func NewServer(queue ports.FrameQueue, probe InferenceProbe, pipelineState func() string, logger ports.Logger) *Server {
	return &Server{
		queue:         queue,
		probe:         probe,
		pipelineState: pipelineState,
		logger:        logger,
		startTime:     time.Now(),
	}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/frames", s.handleFrames)
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/statistics", s.handleStatistics)
	return mux
}
