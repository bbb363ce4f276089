package jwtinfra

import (
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims holds the session token payload. The token only names a session;
// revocation and expiry are authoritative in the server-side session record.
type Claims struct {
	SessionID  string `json:"session_id"`
	IdentityID string `json:"identity_id"`
	jwt.RegisteredClaims
}

// Provider signs and verifies HS256 session tokens.
type Provider struct {
	secret []byte
	expiry time.Duration
}

// NewProvider builds a Provider from the configured secret. When the secret
// is empty a random per-process secret is generated, which means sessions do
// not survive a restart; fine for development, never set in production.
func NewProvider(secret string, expiry time.Duration) (*Provider, error) {
	key := []byte(secret)
	if len(key) == 0 {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("generate session secret: %w", err)
		}
	}
	return &Provider{secret: key, expiry: expiry}, nil
}

func (p *Provider) Sign(sessionID, identityID string) (string, error) {
	claims := Claims{
		SessionID:  sessionID,
		IdentityID: identityID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(p.expiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(p.secret)
}

// Verify parses and checks the token signature and embedded expiry. A
// malformed or tampered token is an error, never a panic.
func (p *Provider) Verify(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return p.secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

// VerifySession returns the session and identity ids carried by a valid token.
func (p *Provider) VerifySession(tokenStr string) (string, string, error) {
	claims, err := p.Verify(tokenStr)
	if err != nil {
		return "", "", err
	}
	return claims.SessionID, claims.IdentityID, nil
}
