package api

import (
	"net/http"
)

// handleHealth responds with 200 OK to indicate the service is running
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"status": "ok",
		"services": map[string]string{
			"riot": "unknown",
		},
	}

	if s.client.Healthy() {
		status["services"].(map[string]string)["riot"] = "up"
	}

	s.sendJSONResponse(w, status)
}

// handleStats reports cache statistics and rate limiter window usage
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	s.sendJSONResponse(w, s.client.Stats())
}
