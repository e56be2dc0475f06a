package httpadapter

import (
	"net/http"

	"github.com/Piyush-6177/Exam-Pilot/internal/core/domain"
)

func mapErrorToHTTPStatus(err error) int {
	if _, ok := domain.AsInvalidDocument(err); ok {
		return http.StatusUnprocessableEntity
	}
	switch {
	case domain.IsKind(err, domain.ErrMissingInput),
		domain.IsKind(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case domain.IsKind(err, domain.ErrJobNotFound):
		return http.StatusNotFound
	case domain.IsKind(err, domain.ErrModelTimeout):
		return http.StatusGatewayTimeout
	case domain.IsKind(err, domain.ErrBadModelRequest),
		domain.IsKind(err, domain.ErrMalformedResponse):
		return http.StatusBadGateway
	case domain.IsKind(err, domain.ErrAllModelsUnavailable),
		domain.IsKind(err, domain.ErrQuotaExhausted),
		domain.IsKind(err, domain.ErrTemporary):
		return http.StatusServiceUnavailable
	default:
		// A rejected credential is the operator's problem, not the caller's.
		return http.StatusInternalServerError
	}
}

// writeError renders a classified error. The message is always the funnel's
// user-facing string; raw provider text never leaves the server.
func writeError(w http.ResponseWriter, err error) {
	payload := map[string]string{
		"error":      domain.UserMessage(err),
		"error_kind": domain.ErrorKind(err),
	}
	if invalid, ok := domain.AsInvalidDocument(err); ok && invalid.DetectedType != "" {
		payload["detected_type"] = invalid.DetectedType
	}
	status := mapErrorToHTTPStatus(err)
	if status == http.StatusServiceUnavailable {
		w.Header().Set("Retry-After", "30")
	}
	writeJSON(w, status, payload)
}
