package auth

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clutch-swap/clutch-api/internal/application/identity"
	"github.com/clutch-swap/clutch-api/internal/application/session"
	"github.com/clutch-swap/clutch-api/internal/domain"
	jwtinfra "github.com/clutch-swap/clutch-api/internal/infrastructure/jwt"
	"github.com/clutch-swap/clutch-api/internal/infrastructure/memstore"
)

type stubMailer struct {
	configured bool
	fail       bool
	sentTo     []string
	sentCodes  []string
}

func (m *stubMailer) Configured() bool { return m.configured }

func (m *stubMailer) SendCode(to, code string) error {
	if m.fail {
		return errors.New("smtp: connection refused")
	}
	m.sentTo = append(m.sentTo, to)
	m.sentCodes = append(m.sentCodes, code)
	return nil
}

type harness struct {
	svc        Service
	mailer     *stubMailer
	identities identity.Service
}

func newHarness(t *testing.T, mailer *stubMailer, production bool, ttl time.Duration) *harness {
	t.Helper()
	provider, err := jwtinfra.NewProvider("test-secret", time.Hour)
	require.NoError(t, err)

	store := memstore.NewVerificationStore()
	identStore := memstore.NewIdentityStore()
	identSvc := identity.NewService(identStore)
	sessSvc := session.NewService(memstore.NewSessionStore(), identStore, provider, time.Hour)

	svc := NewService(ServiceDeps{
		Store:       store,
		Identities:  identSvc,
		Sessions:    sessSvc,
		Notifier:    NewNotifier(mailer, production),
		EmailDomain: "essex.ac.uk",
		CodeTTL:     ttl,
		MaxAttempts: 5,
	})
	return &harness{svc: svc, mailer: mailer, identities: identSvc}
}

func TestRequestCodeRejectsForeignDomain(t *testing.T) {
	h := newHarness(t, &stubMailer{}, false, 10*time.Minute)

	_, err := h.svc.RequestCode(context.Background(), "someone@gmail.com")
	assert.ErrorIs(t, err, domain.ErrInvalidDomain)

	_, err = h.svc.RequestCode(context.Background(), "@essex.ac.uk")
	assert.ErrorIs(t, err, domain.ErrInvalidDomain)
}

func TestRequestCodeDisclosesWithoutMailer(t *testing.T) {
	h := newHarness(t, &stubMailer{configured: false}, false, 10*time.Minute)

	d, err := h.svc.RequestCode(context.Background(), "ab12345@essex.ac.uk")
	require.NoError(t, err)
	assert.False(t, d.Delivered)
	assert.True(t, d.Disclosed)
	assert.Regexp(t, regexp.MustCompile(`^\d{6}$`), d.Code)
}

func TestRequestCodeDeliversWhenConfigured(t *testing.T) {
	mailer := &stubMailer{configured: true}
	h := newHarness(t, mailer, false, 10*time.Minute)

	d, err := h.svc.RequestCode(context.Background(), "ab12345@essex.ac.uk")
	require.NoError(t, err)
	assert.True(t, d.Delivered)
	assert.False(t, d.Disclosed)
	assert.Empty(t, d.Code)
	require.Len(t, mailer.sentTo, 1)
	assert.Equal(t, "ab12345@essex.ac.uk", mailer.sentTo[0])
}

func TestRequestCodeSendFailureFallsBackInDev(t *testing.T) {
	h := newHarness(t, &stubMailer{configured: true, fail: true}, false, 10*time.Minute)

	d, err := h.svc.RequestCode(context.Background(), "ab12345@essex.ac.uk")
	require.NoError(t, err)
	assert.True(t, d.Disclosed)
	assert.NotEmpty(t, d.Code)
}

func TestRequestCodeSendFailureFailsInProduction(t *testing.T) {
	h := newHarness(t, &stubMailer{configured: true, fail: true}, true, 10*time.Minute)

	_, err := h.svc.RequestCode(context.Background(), "ab12345@essex.ac.uk")
	assert.ErrorIs(t, err, domain.ErrDeliveryFailed)
}

func TestRequestCodeNoMailerFailsInProduction(t *testing.T) {
	h := newHarness(t, &stubMailer{configured: false}, true, 10*time.Minute)

	_, err := h.svc.RequestCode(context.Background(), "ab12345@essex.ac.uk")
	assert.ErrorIs(t, err, domain.ErrDeliveryFailed)
}

func TestSubmitCodeHappyPath(t *testing.T) {
	h := newHarness(t, &stubMailer{}, false, 10*time.Minute)
	ctx := context.Background()

	d, err := h.svc.RequestCode(ctx, "  AB12345@ESSEX.AC.UK  ")
	require.NoError(t, err)

	sess, token, err := h.svc.SubmitCode(ctx, "ab12345@essex.ac.uk", d.Code)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.NotNil(t, sess)

	ident, err := h.identities.Get(ctx, sess.IdentityID)
	require.NoError(t, err)
	assert.Equal(t, "ab12345@essex.ac.uk", ident.Email)
	assert.Equal(t, "Student AB", ident.DisplayName)
	assert.True(t, ident.Verified)
}

func TestSubmitCodeSameIdentityAcrossLogins(t *testing.T) {
	h := newHarness(t, &stubMailer{}, false, 10*time.Minute)
	ctx := context.Background()

	d, err := h.svc.RequestCode(ctx, "cd9@essex.ac.uk")
	require.NoError(t, err)
	first, _, err := h.svc.SubmitCode(ctx, "cd9@essex.ac.uk", d.Code)
	require.NoError(t, err)

	d, err = h.svc.RequestCode(ctx, "CD9@essex.ac.uk")
	require.NoError(t, err)
	second, _, err := h.svc.SubmitCode(ctx, "cd9@essex.ac.uk", d.Code)
	require.NoError(t, err)

	assert.Equal(t, first.IdentityID, second.IdentityID)
}

func TestSubmitCodeNoPending(t *testing.T) {
	h := newHarness(t, &stubMailer{}, false, 10*time.Minute)

	_, _, err := h.svc.SubmitCode(context.Background(), "ab12345@essex.ac.uk", "123456")
	assert.ErrorIs(t, err, domain.ErrNoPendingCode)
}

func TestSubmitCodeConsumedOnSuccess(t *testing.T) {
	h := newHarness(t, &stubMailer{}, false, 10*time.Minute)
	ctx := context.Background()

	d, err := h.svc.RequestCode(ctx, "ab12345@essex.ac.uk")
	require.NoError(t, err)
	_, _, err = h.svc.SubmitCode(ctx, "ab12345@essex.ac.uk", d.Code)
	require.NoError(t, err)

	_, _, err = h.svc.SubmitCode(ctx, "ab12345@essex.ac.uk", d.Code)
	assert.ErrorIs(t, err, domain.ErrNoPendingCode)
}

func TestSubmitCodeMismatchThenSuccess(t *testing.T) {
	h := newHarness(t, &stubMailer{}, false, 10*time.Minute)
	ctx := context.Background()

	d, err := h.svc.RequestCode(ctx, "ab12345@essex.ac.uk")
	require.NoError(t, err)

	wrong := "000000"
	if wrong == d.Code {
		wrong = "000001"
	}
	_, _, err = h.svc.SubmitCode(ctx, "ab12345@essex.ac.uk", wrong)
	assert.ErrorIs(t, err, domain.ErrCodeMismatch)

	_, _, err = h.svc.SubmitCode(ctx, "ab12345@essex.ac.uk", d.Code)
	assert.NoError(t, err)
}

func TestSubmitCodeAttemptCap(t *testing.T) {
	h := newHarness(t, &stubMailer{}, false, 10*time.Minute)
	ctx := context.Background()

	d, err := h.svc.RequestCode(ctx, "ab12345@essex.ac.uk")
	require.NoError(t, err)

	wrong := "000000"
	if wrong == d.Code {
		wrong = "000001"
	}
	for i := 0; i < 5; i++ {
		_, _, err = h.svc.SubmitCode(ctx, "ab12345@essex.ac.uk", wrong)
		assert.ErrorIs(t, err, domain.ErrCodeMismatch)
	}

	// Entry is burned after the cap even with the right code.
	_, _, err = h.svc.SubmitCode(ctx, "ab12345@essex.ac.uk", d.Code)
	assert.ErrorIs(t, err, domain.ErrNoPendingCode)
}

func TestSubmitCodeExpired(t *testing.T) {
	h := newHarness(t, &stubMailer{}, false, -time.Minute)
	ctx := context.Background()

	d, err := h.svc.RequestCode(ctx, "ab12345@essex.ac.uk")
	require.NoError(t, err)

	_, _, err = h.svc.SubmitCode(ctx, "ab12345@essex.ac.uk", d.Code)
	assert.ErrorIs(t, err, domain.ErrCodeExpired)

	// Expiry consumes the entry.
	_, _, err = h.svc.SubmitCode(ctx, "ab12345@essex.ac.uk", d.Code)
	assert.ErrorIs(t, err, domain.ErrNoPendingCode)
}

func TestRequestCodeReplacesPending(t *testing.T) {
	h := newHarness(t, &stubMailer{}, false, 10*time.Minute)
	ctx := context.Background()

	first, err := h.svc.RequestCode(ctx, "ab12345@essex.ac.uk")
	require.NoError(t, err)
	second, err := h.svc.RequestCode(ctx, "ab12345@essex.ac.uk")
	require.NoError(t, err)

	if first.Code != second.Code {
		_, _, err = h.svc.SubmitCode(ctx, "ab12345@essex.ac.uk", first.Code)
		assert.ErrorIs(t, err, domain.ErrCodeMismatch)
	}
	_, _, err = h.svc.SubmitCode(ctx, "ab12345@essex.ac.uk", second.Code)
	assert.NoError(t, err)
}
