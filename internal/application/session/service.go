package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/clutch-swap/clutch-api/internal/domain"
	"github.com/clutch-swap/clutch-api/internal/pkg/id"
)

type Service interface {
	// Issue revokes any live sessions for the identity and opens a fresh one,
	// returning the signed token the client presents on later requests.
	Issue(ctx context.Context, identityID string) (*domain.Session, string, error)
	// Resolve validates token against the stored session record. The record is
	// authoritative: a token that parses but points at a revoked or expired
	// session is rejected.
	Resolve(ctx context.Context, token string) (*domain.Session, error)
	// Revoke ends the session behind token. Unparseable or unknown tokens are
	// a no-op so logout never fails.
	Revoke(ctx context.Context, token string) error
	// Logout ends a session already resolved by middleware.
	Logout(ctx context.Context, sessionID string) error
}

type sessionStore interface {
	Put(ctx context.Context, s *domain.Session) error
	Get(ctx context.Context, sessionID string) (*domain.Session, error)
	Revoke(ctx context.Context, sessionID string) error
	RevokeByIdentity(ctx context.Context, identityID string) error
}

type identityStore interface {
	GetByID(ctx context.Context, identityID string) (*domain.Identity, error)
}

type tokenProvider interface {
	Sign(sessionID, identityID string) (string, error)
	VerifySession(token string) (sessionID, identityID string, err error)
}

type service struct {
	sessions   sessionStore
	identities identityStore
	tokens     tokenProvider
	ttl        time.Duration
}

func NewService(sessions sessionStore, identities identityStore, tokens tokenProvider, ttl time.Duration) Service {
	return &service{sessions: sessions, identities: identities, tokens: tokens, ttl: ttl}
}

func (s *service) Issue(ctx context.Context, identityID string) (*domain.Session, string, error) {
	if err := s.sessions.RevokeByIdentity(ctx, identityID); err != nil {
		return nil, "", fmt.Errorf("revoke prior sessions: %w", err)
	}

	now := time.Now().UTC()
	sess := &domain.Session{
		SessionID:  id.New(),
		IdentityID: identityID,
		IssuedAt:   now,
		ExpiresAt:  now.Add(s.ttl).Unix(),
	}
	if err := s.sessions.Put(ctx, sess); err != nil {
		return nil, "", fmt.Errorf("store session: %w", err)
	}

	token, err := s.tokens.Sign(sess.SessionID, identityID)
	if err != nil {
		return nil, "", fmt.Errorf("sign session token: %w", err)
	}
	return sess, token, nil
}

func (s *service) Resolve(ctx context.Context, token string) (*domain.Session, error) {
	sessionID, identityID, err := s.tokens.VerifySession(token)
	if err != nil {
		return nil, fmt.Errorf("verify token: %w", domain.ErrUnauthorized)
	}

	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("unknown session: %w", domain.ErrUnauthorized)
		}
		return nil, err
	}
	if sess.Revoked || sess.IdentityID != identityID {
		return nil, fmt.Errorf("revoked session: %w", domain.ErrUnauthorized)
	}
	if time.Now().Unix() > sess.ExpiresAt {
		return nil, fmt.Errorf("expired session: %w", domain.ErrUnauthorized)
	}

	ident, err := s.identities.GetByID(ctx, sess.IdentityID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("identity gone: %w", domain.ErrUnauthorized)
		}
		return nil, err
	}
	sess.Identity = ident
	return sess, nil
}

func (s *service) Revoke(ctx context.Context, token string) error {
	sessionID, _, err := s.tokens.VerifySession(token)
	if err != nil {
		return nil
	}
	return s.sessions.Revoke(ctx, sessionID)
}

func (s *service) Logout(ctx context.Context, sessionID string) error {
	return s.sessions.Revoke(ctx, sessionID)
}
