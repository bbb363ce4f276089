package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/clutch-swap/clutch-api/internal/domain"
)

// MessageEnvelope is the generic response wrapper.
type MessageEnvelope struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// AuthEnvelope wraps verify responses.
type AuthEnvelope struct {
	Bearer   string           `json:"bearer,omitempty"`
	Identity *domain.Identity `json:"identity,omitempty"`
}

// CodeEnvelope wraps send-code responses. Code is only set when delivery is
// disclosed, which never happens in production.
type CodeEnvelope struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, MessageEnvelope{Error: msg})
}

// respondError maps domain errors to HTTP statuses. Verification-flow errors
// keep their sentinel string as the wire error code; everything else gets a
// generic message so internals never leak.
func respondError(w http.ResponseWriter, err error) {
	for _, sentinel := range []error{
		domain.ErrInvalidDomain,
		domain.ErrNoPendingCode,
		domain.ErrCodeExpired,
		domain.ErrCodeMismatch,
	} {
		if errors.Is(err, sentinel) {
			writeError(w, http.StatusBadRequest, sentinel.Error())
			return
		}
	}

	switch {
	case errors.Is(err, domain.ErrDeliveryFailed):
		writeError(w, http.StatusServiceUnavailable, domain.ErrDeliveryFailed.Error())
	case errors.Is(err, domain.ErrBadRequest):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, "conflict")
	default:
		slog.Error("request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
