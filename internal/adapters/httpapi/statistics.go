package httpapi

import (
	"net/http"

	"github.com/vigil-labs/framegate/internal/ports"
)

// handleStatistics proxies the inference service's statistics endpoint.
// Status code and body are forwarded untouched; the gateway neither owns
// nor interprets result statistics.
func (s *Server) handleStatistics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	status, body, err := s.probe.Statistics(r.Context())
	if err != nil {
		s.logger.Error("statistics proxy failed", ports.Err(err))
		http.Error(w, "inference service unreachable", http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		s.logger.Error("failed to write statistics response", ports.Err(err))
	}
}
