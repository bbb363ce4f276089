package handler

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/clutch-swap/clutch-api/internal/application/listing"
	"github.com/clutch-swap/clutch-api/internal/application/seed"
	"github.com/clutch-swap/clutch-api/internal/domain"
)

// AdminHandler handles moderation and bootstrap endpoints. Routing guards
// these behind the admin middleware.
type AdminHandler struct {
	listings listing.Service
	seeder   *seed.Seeder
}

func NewAdminHandler(listings listing.Service, seeder *seed.Seeder) *AdminHandler {
	return &AdminHandler{listings: listings, seeder: seeder}
}

// adminListing adds the owner email to the public listing shape for
// moderation.
type adminListing struct {
	domain.Listing
	OwnerEmail string `json:"user_email"`
}

func (h *AdminHandler) ListListings(w http.ResponseWriter, r *http.Request) {
	all, err := h.listings.Browse(r.Context(), domain.ListingFilter{})
	if err != nil {
		respondError(w, err)
		return
	}
	out := make([]adminListing, 0, len(all))
	for _, l := range all {
		out = append(out, adminListing{Listing: l, OwnerEmail: l.OwnerEmail})
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *AdminHandler) DeleteListing(w http.ResponseWriter, r *http.Request) {
	if err := h.listings.AdminDelete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "listing removed"})
}

func (h *AdminHandler) Seed(w http.ResponseWriter, r *http.Request) {
	n, err := h.seeder.Run(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, MessageEnvelope{Message: fmt.Sprintf("seeded %d listings", n)})
}
