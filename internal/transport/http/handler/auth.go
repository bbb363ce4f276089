package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/clutch-swap/clutch-api/internal/application/auth"
	"github.com/clutch-swap/clutch-api/internal/application/identity"
	"github.com/clutch-swap/clutch-api/internal/application/session"
	"github.com/clutch-swap/clutch-api/internal/domain"
	"github.com/clutch-swap/clutch-api/internal/transport/http/middleware"
)

// AuthHandler handles the code flow and the authenticated profile endpoints.
type AuthHandler struct {
	auth       auth.Service
	sessions   session.Service
	identities identity.Service

	cookieTTL    time.Duration
	secureCookie bool
}

func NewAuthHandler(authSvc auth.Service, sessions session.Service, identities identity.Service, cookieTTL time.Duration, secureCookie bool) *AuthHandler {
	return &AuthHandler{
		auth:         authSvc,
		sessions:     sessions,
		identities:   identities,
		cookieTTL:    cookieTTL,
		secureCookie: secureCookie,
	}
}

func (h *AuthHandler) SendCode(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		writeError(w, http.StatusBadRequest, "email required")
		return
	}

	d, err := h.auth.RequestCode(r.Context(), req.Email)
	if err != nil {
		respondError(w, err)
		return
	}
	env := CodeEnvelope{Message: "code sent"}
	if d.Disclosed {
		env.Message = "code issued"
		env.Code = d.Code
	}
	writeJSON(w, http.StatusOK, env)
}

func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
		Code  string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Code == "" {
		writeError(w, http.StatusBadRequest, "email and code required")
		return
	}

	sess, token, err := h.auth.SubmitCode(r.Context(), req.Email, req.Code)
	if err != nil {
		respondError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.cookieTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, AuthEnvelope{Bearer: token, Identity: sess.Identity})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	writeJSON(w, http.StatusOK, sess.Identity)
}

func (h *AuthHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req domain.UpdateContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ident, err := h.identities.UpdateContact(r.Context(), sess.Identity, req)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ident)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if err := h.sessions.Logout(r.Context(), sess.SessionID); err != nil {
		respondError(w, err)
		return
	}
	middleware.ClearSessionCookie(w)
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "logged out"})
}
