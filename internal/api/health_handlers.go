package api

import (
	"context"
	"net/http"
	"time"
)

type HealthResponse struct {
	Status  string `json:"status" example:"ok"`
	Backend string `json:"backend" example:"postgres"`
}

// @Summary      Health check
// @Description  Reports whether the database answers.
// @Tags         health
// @Produce      json
// @Success      200  {object}  HealthResponse
// @Failure      503  {object}  HealthResponse
// @Router       /health [get]
func (s *Server) HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	resp := HealthResponse{Status: "ok", Backend: s.users.Backend()}
	if err := s.users.Ping(ctx); err != nil {
		s.log.WarnContext(ctx, "health check failed", "error", err)
		resp.Status = "unavailable"
		writeJSON(w, http.StatusServiceUnavailable, resp)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
