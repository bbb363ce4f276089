package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/clutch-swap/clutch-api/internal/domain"
	"github.com/clutch-swap/clutch-api/internal/pkg/id"
)

// DynamoDB attribute names used in partial update maps.
const (
	fieldVerified = "verified"
	fieldContact  = "contact"
)

type Service interface {
	// Resolve returns the identity for email, creating it on first
	// verification. Concurrent resolves for a new email converge on one record.
	Resolve(ctx context.Context, email string) (*domain.Identity, error)
	Get(ctx context.Context, identityID string) (*domain.Identity, error)
	UpdateContact(ctx context.Context, ident *domain.Identity, req domain.UpdateContactRequest) (*domain.Identity, error)
}

type identityStore interface {
	Create(ctx context.Context, ident *domain.Identity) error
	GetByEmail(ctx context.Context, email string) (*domain.Identity, error)
	GetByID(ctx context.Context, identityID string) (*domain.Identity, error)
	Update(ctx context.Context, email string, updates map[string]interface{}) error
}

type service struct {
	repo identityStore
}

func NewService(repo identityStore) Service {
	return &service{repo: repo}
}

func (s *service) Resolve(ctx context.Context, email string) (*domain.Identity, error) {
	existing, err := s.repo.GetByEmail(ctx, email)
	if err == nil {
		if !existing.Verified {
			if uerr := s.repo.Update(ctx, email, map[string]interface{}{
				fieldVerified: true,
			}); uerr != nil {
				return nil, fmt.Errorf("mark verified: %w", uerr)
			}
			existing.Verified = true
		}
		return existing, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	ident := &domain.Identity{
		IdentityID:  id.New(),
		Email:       email,
		DisplayName: DisplayName(email),
		Verified:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err = s.repo.Create(ctx, ident)
	if err == nil {
		return ident, nil
	}
	if errors.Is(err, domain.ErrConflict) {
		// Lost the race to a concurrent first verification; use the winner.
		return s.repo.GetByEmail(ctx, email)
	}
	return nil, err
}

func (s *service) Get(ctx context.Context, identityID string) (*domain.Identity, error) {
	return s.repo.GetByID(ctx, identityID)
}

func (s *service) UpdateContact(ctx context.Context, ident *domain.Identity, req domain.UpdateContactRequest) (*domain.Identity, error) {
	contact := ident.Contact
	if contact == nil {
		contact = &domain.ContactInfo{}
	}
	if req.FullName != nil {
		contact.FullName = strings.TrimSpace(*req.FullName)
	}
	if req.Phone != nil {
		contact.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Instagram != nil {
		contact.Instagram = strings.TrimSpace(strings.TrimPrefix(*req.Instagram, "@"))
	}
	// The contact email is not caller-settable; it always mirrors the
	// verified address.
	contact.Email = ident.Email

	now := time.Now().UTC()
	if err := s.repo.Update(ctx, ident.Email, map[string]interface{}{
		fieldContact: contact,
	}); err != nil {
		return nil, fmt.Errorf("update contact: %w", err)
	}
	ident.Contact = contact
	ident.UpdatedAt = now
	return ident, nil
}

// DisplayName derives the public pseudonym for an address. Only the first two
// characters of the local part are ever exposed.
func DisplayName(email string) string {
	local := email
	if at := strings.IndexByte(email, '@'); at >= 0 {
		local = email[:at]
	}
	prefix := local
	if len(prefix) > 2 {
		prefix = prefix[:2]
	}
	return "Student " + strings.ToUpper(prefix)
}
