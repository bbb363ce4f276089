package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/clutch-swap/clutch-api/internal/application/exchange"
	"github.com/clutch-swap/clutch-api/internal/domain"
	"github.com/clutch-swap/clutch-api/internal/transport/http/middleware"
)

type ExchangeHandler struct {
	svc exchange.Service
}

func NewExchangeHandler(svc exchange.Service) *ExchangeHandler {
	return &ExchangeHandler{svc: svc}
}

// ExchangesEnvelope groups the caller's exchanges by direction.
type ExchangesEnvelope struct {
	Incoming []domain.Exchange `json:"incoming"`
	Outgoing []domain.Exchange `json:"outgoing"`
}

func (h *ExchangeHandler) Create(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req domain.CreateExchangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	e, err := h.svc.Create(r.Context(), sess.Identity, req)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

func (h *ExchangeHandler) List(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	incoming, err := h.svc.Inbox(r.Context(), sess.IdentityID)
	if err != nil {
		respondError(w, err)
		return
	}
	outgoing, err := h.svc.Outbox(r.Context(), sess.IdentityID)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ExchangesEnvelope{Incoming: incoming, Outgoing: outgoing})
}

func (h *ExchangeHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.svc.Approve)
}

func (h *ExchangeHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.svc.Reject)
}

func (h *ExchangeHandler) decide(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, actor *domain.Identity, exchangeID string) (*domain.Exchange, error)) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	e, err := fn(r.Context(), sess.Identity, chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}
