package web

// errors.go provides unified error response handling for the web layer.
//
// Two error kinds reach a client: configuration errors (no token, no
// register id — caught before any upstream call) and upstream errors (a
// failed page fetch, surfaced with the upstream's own status code and raw
// body). Both are logged with the request ID for correlation and returned
// as JSON.

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/ryanpedersen42/risk-report-generator/internal/drata"
	"github.com/ryanpedersen42/risk-report-generator/internal/logging"
)

// ErrorResponse is the JSON structure for API error responses.
// Body carries the raw upstream response body when an upstream call failed.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
	Body    string `json:"body,omitempty"`
}

// respondError logs the failure server-side and writes the JSON error.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, status int, resp ErrorResponse) {
	logging.FromContext(r.Context()).Error("request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", status,
		"error", resp.Error,
		"details", resp.Details,
		"request_id", middleware.GetReqID(r.Context()),
	)

	respondJSON(w, status, resp)
}

// respondAggregationError maps an aggregation failure to a response.
// An upstream failure keeps the upstream's status code; anything else
// (network error, malformed page) becomes a 500.
func (s *Server) respondAggregationError(w http.ResponseWriter, r *http.Request, err error) {
	s.metrics.upstreamErrors.Inc()

	var ue *drata.UpstreamError
	if errors.As(err, &ue) {
		s.respondError(w, r, ue.Status, ErrorResponse{
			Error:   "Upstream error",
			Details: err.Error(),
			Body:    ue.Body,
		})
		return
	}

	s.respondError(w, r, http.StatusInternalServerError, ErrorResponse{
		Error:   "Server error",
		Details: err.Error(),
	})
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
