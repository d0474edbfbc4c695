package handler

import (
	"net/http"
	"time"
)

// healthResponse is the body of GET /health.
type healthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// GetHealth handles GET /health. It returns HTTP 200 with the current server
// time so callers can also spot clock skew.
func (s *Server) GetHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, healthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
