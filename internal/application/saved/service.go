package saved

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/clutch-swap/clutch-api/internal/domain"
)

type Service interface {
	// Toggle flips the saved state of listingID for the identity and reports
	// the new state.
	Toggle(ctx context.Context, identityID, listingID string) (saved bool, err error)
	// List returns the identity's saved listings, skipping ids whose listing
	// was deleted since it was saved.
	List(ctx context.Context, identityID string) ([]domain.Listing, error)
}

type savedStore interface {
	Add(ctx context.Context, identityID, listingID string) error
	Remove(ctx context.Context, identityID, listingID string) error
	Has(ctx context.Context, identityID, listingID string) (bool, error)
	ListIDs(ctx context.Context, identityID string) ([]string, error)
}

type listingStore interface {
	Get(ctx context.Context, listingID string) (*domain.Listing, error)
}

type service struct {
	saved    savedStore
	listings listingStore
}

func NewService(saved savedStore, listings listingStore) Service {
	return &service{saved: saved, listings: listings}
}

func (s *service) Toggle(ctx context.Context, identityID, listingID string) (bool, error) {
	if _, err := s.listings.Get(ctx, listingID); err != nil {
		return false, err
	}

	has, err := s.saved.Has(ctx, identityID, listingID)
	if err != nil {
		return false, err
	}
	if has {
		if err := s.saved.Remove(ctx, identityID, listingID); err != nil {
			return false, fmt.Errorf("unsave listing: %w", err)
		}
		return false, nil
	}
	if err := s.saved.Add(ctx, identityID, listingID); err != nil {
		return false, fmt.Errorf("save listing: %w", err)
	}
	return true, nil
}

func (s *service) List(ctx context.Context, identityID string) ([]domain.Listing, error) {
	ids, err := s.saved.ListIDs(ctx, identityID)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Listing, 0, len(ids))
	for _, id := range ids {
		l, err := s.listings.Get(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				// Stale reference, drop it so it stops showing up.
				if rerr := s.saved.Remove(ctx, identityID, id); rerr != nil {
					slog.Warn("prune stale saved listing", "error", rerr)
				}
				continue
			}
			return nil, err
		}
		out = append(out, *l)
	}
	return out, nil
}
