package jwtinfra

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignAndVerify(t *testing.T) {
	p, err := NewProvider("test-secret", time.Hour)
	require.NoError(t, err)

	tok, err := p.Sign("sess-1", "ident-1")
	require.NoError(t, err)

	claims, err := p.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "sess-1", claims.SessionID)
	assert.Equal(t, "ident-1", claims.IdentityID)
}

func TestVerify_Malformed(t *testing.T) {
	p, err := NewProvider("test-secret", time.Hour)
	require.NoError(t, err)

	_, err = p.Verify("not-a-token")
	assert.Error(t, err)
}

func TestVerify_WrongSecret(t *testing.T) {
	a, err := NewProvider("secret-a", time.Hour)
	require.NoError(t, err)
	b, err := NewProvider("secret-b", time.Hour)
	require.NoError(t, err)

	tok, err := a.Sign("sess-1", "ident-1")
	require.NoError(t, err)

	_, err = b.Verify(tok)
	assert.Error(t, err)
}

func TestVerify_Expired(t *testing.T) {
	p, err := NewProvider("test-secret", -time.Minute)
	require.NoError(t, err)

	tok, err := p.Sign("sess-1", "ident-1")
	require.NoError(t, err)

	_, err = p.Verify(tok)
	assert.Error(t, err)
}

func TestNewProvider_RandomSecretWhenUnset(t *testing.T) {
	a, err := NewProvider("", time.Hour)
	require.NoError(t, err)
	b, err := NewProvider("", time.Hour)
	require.NoError(t, err)

	tok, err := a.Sign("sess-1", "ident-1")
	require.NoError(t, err)

	// Distinct random secrets must not verify each other's tokens.
	_, err = b.Verify(tok)
	assert.Error(t, err)
}
