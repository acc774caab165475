package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/ladle-cloud/ladle/internal/domain"
)

// errorResponse is the error envelope on every failed request.
type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// statusFor maps a domain error to an HTTP status. Ownership denials are
// business-rule failures, not auth failures, so they map to 400.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrConflict),
		errors.Is(err, domain.ErrMissingGroup),
		errors.Is(err, domain.ErrAccessDenied):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUpstream):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// handleError writes the domain error as the error envelope. Mapped
// sentinels carry actionable messages; everything else stays opaque.
func (s *Server) handleError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("internal error", zap.Error(err))
		writeError(w, status, "internal error")
		return
	}

	s.logger.Warn("request failed", zap.Int("status", status), zap.Error(err))
	writeError(w, status, err.Error())
}
