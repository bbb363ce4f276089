package exchange

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/clutch-swap/clutch-api/internal/domain"
	"github.com/clutch-swap/clutch-api/internal/pkg/id"
	"github.com/clutch-swap/clutch-api/internal/pkg/validate"
)

type Service interface {
	// Create opens a pending exchange from actor against a listing. Owners
	// cannot open exchanges on their own listings.
	Create(ctx context.Context, actor *domain.Identity, req domain.CreateExchangeRequest) (*domain.Exchange, error)
	// Inbox returns exchanges where the identity is the listing owner,
	// Outbox those the identity opened. Contact details are attached to
	// approved entries only.
	Inbox(ctx context.Context, identityID string) ([]domain.Exchange, error)
	Outbox(ctx context.Context, identityID string) ([]domain.Exchange, error)
	// Approve and Reject are recipient-only transitions out of pending.
	Approve(ctx context.Context, actor *domain.Identity, exchangeID string) (*domain.Exchange, error)
	Reject(ctx context.Context, actor *domain.Identity, exchangeID string) (*domain.Exchange, error)
}

type exchangeStore interface {
	Put(ctx context.Context, e *domain.Exchange) error
	Get(ctx context.Context, exchangeID string) (*domain.Exchange, error)
	SetStatus(ctx context.Context, exchangeID, status string) error
	ListByFrom(ctx context.Context, identityID string) ([]domain.Exchange, error)
	ListByTo(ctx context.Context, identityID string) ([]domain.Exchange, error)
}

type listingStore interface {
	Get(ctx context.Context, listingID string) (*domain.Listing, error)
}

type identityStore interface {
	GetByID(ctx context.Context, identityID string) (*domain.Identity, error)
}

type smsSender interface {
	SendSMS(ctx context.Context, to, message string) error
}

type service struct {
	exchanges  exchangeStore
	listings   listingStore
	identities identityStore
	sms        smsSender // nil when SMS pings are disabled
}

func NewService(exchanges exchangeStore, listings listingStore, identities identityStore, sms smsSender) Service {
	return &service{exchanges: exchanges, listings: listings, identities: identities, sms: sms}
}

func (s *service) Create(ctx context.Context, actor *domain.Identity, req domain.CreateExchangeRequest) (*domain.Exchange, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrBadRequest, err)
	}

	l, err := s.listings.Get(ctx, req.ListingID)
	if err != nil {
		return nil, err
	}
	if l.OwnerID == actor.IdentityID {
		return nil, fmt.Errorf("cannot exchange on own listing: %w", domain.ErrBadRequest)
	}

	now := time.Now().UTC()
	e := &domain.Exchange{
		ExchangeID:      id.New(),
		ListingID:       l.ListingID,
		ListingTitle:    l.Title,
		ListingCategory: l.Category,
		FromID:          actor.IdentityID,
		FromName:        actor.DisplayName,
		ToID:            l.OwnerID,
		ToName:          l.OwnerName,
		Message:         req.Message,
		Status:          domain.ExchangePending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.exchanges.Put(ctx, e); err != nil {
		return nil, fmt.Errorf("store exchange: %w", err)
	}
	return e, nil
}

func (s *service) Inbox(ctx context.Context, identityID string) ([]domain.Exchange, error) {
	out, err := s.exchanges.ListByTo(ctx, identityID)
	if err != nil {
		return nil, err
	}
	s.attachContacts(ctx, out)
	return out, nil
}

func (s *service) Outbox(ctx context.Context, identityID string) ([]domain.Exchange, error) {
	out, err := s.exchanges.ListByFrom(ctx, identityID)
	if err != nil {
		return nil, err
	}
	s.attachContacts(ctx, out)
	return out, nil
}

func (s *service) Approve(ctx context.Context, actor *domain.Identity, exchangeID string) (*domain.Exchange, error) {
	e, err := s.transition(ctx, actor, exchangeID, domain.ExchangeApproved)
	if err != nil {
		return nil, err
	}
	s.notifyApproval(ctx, e)
	s.attachContact(ctx, e)
	return e, nil
}

func (s *service) Reject(ctx context.Context, actor *domain.Identity, exchangeID string) (*domain.Exchange, error) {
	return s.transition(ctx, actor, exchangeID, domain.ExchangeRejected)
}

func (s *service) transition(ctx context.Context, actor *domain.Identity, exchangeID, status string) (*domain.Exchange, error) {
	e, err := s.exchanges.Get(ctx, exchangeID)
	if err != nil {
		return nil, err
	}
	if e.ToID != actor.IdentityID {
		return nil, fmt.Errorf("only the recipient may decide: %w", domain.ErrForbidden)
	}
	if e.Status != domain.ExchangePending {
		return nil, fmt.Errorf("exchange already %s: %w", e.Status, domain.ErrConflict)
	}
	if err := s.exchanges.SetStatus(ctx, exchangeID, status); err != nil {
		return nil, fmt.Errorf("update exchange status: %w", err)
	}
	e.Status = status
	e.UpdatedAt = time.Now().UTC()
	return e, nil
}

// notifyApproval pings the requester over SMS when they shared a phone
// number. Failures are logged and swallowed; approval must not depend on a
// carrier.
func (s *service) notifyApproval(ctx context.Context, e *domain.Exchange) {
	if s.sms == nil {
		return
	}
	from, err := s.identities.GetByID(ctx, e.FromID)
	if err != nil || from.Contact == nil || from.Contact.Phone == "" {
		return
	}
	msg := fmt.Sprintf("Clutch: your exchange request for %q was approved. Check the app for contact details.", e.ListingTitle)
	if err := s.sms.SendSMS(ctx, from.Contact.Phone, msg); err != nil {
		slog.Warn("approval sms failed", "error", err)
	}
}

func (s *service) attachContacts(ctx context.Context, list []domain.Exchange) {
	for i := range list {
		s.attachContact(ctx, &list[i])
	}
}

// attachContact fills both parties' contact details on an approved exchange.
// The contact email always falls back to the verified address so approval is
// never a dead end for someone who filled nothing in.
func (s *service) attachContact(ctx context.Context, e *domain.Exchange) {
	if e.Status != domain.ExchangeApproved {
		return
	}
	e.FromContact = s.contactFor(ctx, e.FromID)
	e.ToContact = s.contactFor(ctx, e.ToID)
}

func (s *service) contactFor(ctx context.Context, identityID string) *domain.ContactInfo {
	ident, err := s.identities.GetByID(ctx, identityID)
	if err != nil {
		slog.Warn("resolve exchange party", "error", err)
		return nil
	}
	contact := &domain.ContactInfo{Email: ident.Email}
	if ident.Contact != nil {
		c := *ident.Contact
		if c.Email == "" {
			c.Email = ident.Email
		}
		contact = &c
	}
	return contact
}
