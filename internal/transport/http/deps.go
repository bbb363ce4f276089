package http

import (
	"context"
	"io"

	"github.com/clutch-swap/clutch-api/internal/domain"
)

// IdentityRepository is the minimal interface the router requires from an identity store.
type IdentityRepository interface {
	Create(ctx context.Context, ident *domain.Identity) error
	GetByEmail(ctx context.Context, email string) (*domain.Identity, error)
	GetByID(ctx context.Context, identityID string) (*domain.Identity, error)
	Update(ctx context.Context, email string, updates map[string]interface{}) error
}

// SessionRepository is the minimal interface the router requires from a session store.
type SessionRepository interface {
	Put(ctx context.Context, s *domain.Session) error
	Get(ctx context.Context, sessionID string) (*domain.Session, error)
	Revoke(ctx context.Context, sessionID string) error
	RevokeByIdentity(ctx context.Context, identityID string) error
}

// VerificationRepository is the minimal interface the router requires from a pending-code store.
type VerificationRepository interface {
	Put(ctx context.Context, v *domain.PendingVerification) error
	Get(ctx context.Context, email string) (*domain.PendingVerification, error)
	Delete(ctx context.Context, email string) error
}

// ListingRepository is the minimal interface the router requires from a listing store.
type ListingRepository interface {
	Put(ctx context.Context, l *domain.Listing) error
	Get(ctx context.Context, listingID string) (*domain.Listing, error)
	List(ctx context.Context) ([]domain.Listing, error)
	Delete(ctx context.Context, listingID string) error
}

// SavedRepository is the minimal interface the router requires from a saved-listing store.
type SavedRepository interface {
	Add(ctx context.Context, identityID, listingID string) error
	Remove(ctx context.Context, identityID, listingID string) error
	Has(ctx context.Context, identityID, listingID string) (bool, error)
	ListIDs(ctx context.Context, identityID string) ([]string, error)
}

// ExchangeRepository is the minimal interface the router requires from an exchange store.
type ExchangeRepository interface {
	Put(ctx context.Context, e *domain.Exchange) error
	Get(ctx context.Context, exchangeID string) (*domain.Exchange, error)
	SetStatus(ctx context.Context, exchangeID, status string) error
	ListByFrom(ctx context.Context, identityID string) ([]domain.Exchange, error)
	ListByTo(ctx context.Context, identityID string) ([]domain.Exchange, error)
}

// PhotoRepository is the minimal interface the router requires from a photo store.
type PhotoRepository interface {
	Put(ctx context.Context, p *domain.Photo) error
	Get(ctx context.Context, photoID string) (*domain.Photo, error)
	ListByListing(ctx context.Context, listingID string) ([]domain.Photo, error)
	Delete(ctx context.Context, photoID string) error
}

// ObjectStore is the minimal interface the router requires from an object storage backend.
type ObjectStore interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}
