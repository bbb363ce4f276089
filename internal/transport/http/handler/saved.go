package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/clutch-swap/clutch-api/internal/application/saved"
	"github.com/clutch-swap/clutch-api/internal/transport/http/middleware"
)

type SavedHandler struct {
	svc saved.Service
}

func NewSavedHandler(svc saved.Service) *SavedHandler {
	return &SavedHandler{svc: svc}
}

// Toggle flips the saved state of a listing for the caller.
func (h *SavedHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	savedNow, err := h.svc.Toggle(r.Context(), sess.IdentityID, chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"saved": savedNow})
}

func (h *SavedHandler) List(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	out, err := h.svc.List(r.Context(), sess.IdentityID)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}
