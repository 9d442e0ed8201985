package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/vigil-labs/framegate/internal/ports"
)

// healthProbeTimeout bounds the downstream health check so a hung
// inference service cannot hang our health endpoint.
const healthProbeTimeout = 2 * time.Second

// HealthResponse is the gateway health report.
type HealthResponse struct {
	Status        string           `json:"status"`
	Uptime        string           `json:"uptime"`
	PipelineState string           `json:"pipeline_state"`
	Queue         ports.QueueStats `json:"queue"`
	Inference     string           `json:"inference"`
}

// formatUptime formats a duration into days, hours, minutes, seconds.
func formatUptime(d time.Duration) string {
	days := int(d.Hours() / 24)
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dd %dh %dm %ds", days, hours, minutes, seconds)
}

// handleHealth reports gateway liveness, queue depth, pipeline phase, and
// downstream reachability. The gateway itself is healthy as long as the
// pipeline runs; an unreachable inference service degrades the status but
// does not fail the endpoint.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	inference := "healthy"
	status := "healthy"

	ctx, cancel := context.WithTimeout(r.Context(), healthProbeTimeout)
	defer cancel()
	if err := s.probe.Health(ctx); err != nil {
		s.logger.Debug("inference health probe failed", ports.Err(err))
		inference = "unreachable"
		status = "degraded"
	}

	response := HealthResponse{
		Status:        status,
		Uptime:        formatUptime(time.Since(s.startTime)),
		PipelineState: s.pipelineState(),
		Queue:         s.queue.Stats(),
		Inference:     inference,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		s.logger.Error("failed to encode health response", ports.Err(err))
	}
}
