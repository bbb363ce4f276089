package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/clutch-swap/clutch-api/internal/domain"
	"github.com/clutch-swap/clutch-api/internal/pkg/otp"
)

type Service interface {
	// RequestCode issues a fresh one-time code for email, replacing any code
	// already pending for that address.
	RequestCode(ctx context.Context, email string) (*Delivery, error)
	// SubmitCode checks code against the pending entry and, on a match, opens
	// a session for the address's identity. The entry is consumed on success,
	// on expiry, and when the attempt cap is hit.
	SubmitCode(ctx context.Context, email, code string) (*domain.Session, string, error)
}

type verificationStore interface {
	Put(ctx context.Context, v *domain.PendingVerification) error
	Get(ctx context.Context, email string) (*domain.PendingVerification, error)
	Delete(ctx context.Context, email string) error
}

type identityResolver interface {
	Resolve(ctx context.Context, email string) (*domain.Identity, error)
}

type sessionIssuer interface {
	Issue(ctx context.Context, identityID string) (*domain.Session, string, error)
}

type codeNotifier interface {
	Send(email, code string) (*Delivery, error)
}

type service struct {
	store       verificationStore
	identities  identityResolver
	sessions    sessionIssuer
	notifier    codeNotifier
	emailDomain string
	codeTTL     time.Duration
	maxAttempts int
}

type ServiceDeps struct {
	Store       verificationStore
	Identities  identityResolver
	Sessions    sessionIssuer
	Notifier    codeNotifier
	EmailDomain string
	CodeTTL     time.Duration
	MaxAttempts int
}

func NewService(deps ServiceDeps) Service {
	return &service{
		store:       deps.Store,
		identities:  deps.Identities,
		sessions:    deps.Sessions,
		notifier:    deps.Notifier,
		emailDomain: strings.ToLower(deps.EmailDomain),
		codeTTL:     deps.CodeTTL,
		maxAttempts: deps.MaxAttempts,
	}
}

func (s *service) RequestCode(ctx context.Context, email string) (*Delivery, error) {
	email, err := s.normalize(email)
	if err != nil {
		return nil, err
	}

	code, err := otp.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate code: %w", err)
	}

	if err := s.store.Put(ctx, &domain.PendingVerification{
		Email:     email,
		Code:      code,
		ExpiresAt: time.Now().Add(s.codeTTL).Unix(),
	}); err != nil {
		return nil, fmt.Errorf("store pending code: %w", err)
	}

	return s.notifier.Send(email, code)
}

func (s *service) SubmitCode(ctx context.Context, email, code string) (*domain.Session, string, error) {
	email, err := s.normalize(email)
	if err != nil {
		return nil, "", err
	}

	pending, err := s.store.Get(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", domain.ErrNoPendingCode
		}
		return nil, "", err
	}

	if pending.Expired(time.Now()) {
		_ = s.store.Delete(ctx, email)
		return nil, "", domain.ErrCodeExpired
	}

	if strings.TrimSpace(code) != pending.Code {
		pending.Attempts++
		if pending.Attempts >= s.maxAttempts {
			_ = s.store.Delete(ctx, email)
		} else if err := s.store.Put(ctx, pending); err != nil {
			return nil, "", fmt.Errorf("record failed attempt: %w", err)
		}
		return nil, "", domain.ErrCodeMismatch
	}

	if err := s.store.Delete(ctx, email); err != nil {
		return nil, "", fmt.Errorf("consume code: %w", err)
	}

	ident, err := s.identities.Resolve(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("resolve identity: %w", err)
	}
	sess, token, err := s.sessions.Issue(ctx, ident.IdentityID)
	if err != nil {
		return nil, "", err
	}
	sess.Identity = ident
	return sess, token, nil
}

func (s *service) normalize(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	suffix := "@" + s.emailDomain
	if !strings.HasSuffix(email, suffix) || len(email) == len(suffix) {
		return "", domain.ErrInvalidDomain
	}
	return email, nil
}
