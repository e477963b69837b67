package api

import (
	"net/http"
	"time"

	"github.com/birthdaywisher/wisher-server/internal/http/response"
)

// HealthStatus is the health check payload.
type HealthStatus struct {
	Status string    `json:"status"`
	Time   time.Time `json:"time"`
}

// handleHealthCheck reports server liveness.
func (s *Server) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	response.Success(w, HealthStatus{
		Status: "ok",
		Time:   time.Now(),
	}, s.logger)
}
