package handler

import (
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/clutch-swap/clutch-api/internal/application/photo"
	s3infra "github.com/clutch-swap/clutch-api/internal/infrastructure/s3"
	"github.com/clutch-swap/clutch-api/internal/transport/http/middleware"
)

const maxUploadMemory = 8 << 20

type PhotoHandler struct {
	svc photo.Service
}

func NewPhotoHandler(svc photo.Service) *PhotoHandler {
	return &PhotoHandler{svc: svc}
}

// Upload accepts a multipart form with a "photo" file field and attaches it
// to the listing in the path.
func (h *PhotoHandler) Upload(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("photo")
	if err != nil {
		writeError(w, http.StatusBadRequest, "photo file required")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = s3infra.DetectContentType(header.Filename)
	}

	p, err := h.svc.Upload(r.Context(), sess.Identity, chi.URLParam(r, "id"), header.Filename, file, header.Size, contentType)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

// Download streams the photo bytes back to the client.
func (h *PhotoHandler) Download(w http.ResponseWriter, r *http.Request) {
	p, rc, err := h.svc.Open(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", p.ContentType)
	if p.Size > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(p.Size, 10))
	}
	_, _ = io.Copy(w, rc)
}

func (h *PhotoHandler) ListByListing(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.ListByListing(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *PhotoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if err := h.svc.Delete(r.Context(), sess.Identity, chi.URLParam(r, "id")); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "photo deleted"})
}
