package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5/middleware"

	"user-management/internal/apperr"
)

type ErrorResponse struct {
	Error string `json:"error" example:"Both full name and username are required"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError turns err into a JSON error body. Backend details are logged and
// never sent to the client.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := apperr.StatusCode(err)

	message := "Internal server error"
	if e, ok := apperr.As(err); ok {
		message = e.Message
	}

	if status >= http.StatusInternalServerError {
		s.log.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", middleware.GetReqID(r.Context()),
			"error", err,
		)
	}

	writeJSON(w, status, ErrorResponse{Error: message})
}

// parseID reads an integer id. An empty string means the id was not given.
func parseID(raw string) (*int64, error) {
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, apperr.Validation("Invalid id, must be a number")
	}
	return &id, nil
}

// optional treats an empty query value the same as a missing one.
func optional(r *http.Request, key string) *string {
	v := r.URL.Query().Get(key)
	if v == "" {
		return nil
	}
	return &v
}
