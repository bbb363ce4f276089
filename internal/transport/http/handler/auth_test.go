package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/clutch-swap/clutch-api/internal/application/auth"
	"github.com/clutch-swap/clutch-api/internal/domain"
	"github.com/clutch-swap/clutch-api/internal/transport/http/middleware"
)

// --- mock ---

type mockAuthSvc struct{ mock.Mock }

func (m *mockAuthSvc) RequestCode(ctx context.Context, email string) (*auth.Delivery, error) {
	args := m.Called(ctx, email)
	if d, _ := args.Get(0).(*auth.Delivery); d != nil {
		return d, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAuthSvc) SubmitCode(ctx context.Context, email, code string) (*domain.Session, string, error) {
	args := m.Called(ctx, email, code)
	if s, _ := args.Get(0).(*domain.Session); s != nil {
		return s, args.String(1), args.Error(2)
	}
	return nil, "", args.Error(2)
}

// --- helpers ---

func postJSON(t *testing.T, h http.HandlerFunc, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h(rr, req)
	return rr
}

func newHandler(svc auth.Service) *AuthHandler {
	return NewAuthHandler(svc, nil, nil, 30*24*time.Hour, false)
}

// --- tests ---

func TestSendCode_Delivered(t *testing.T) {
	svc := new(mockAuthSvc)
	svc.On("RequestCode", mock.Anything, "ab1@essex.ac.uk").
		Return(&auth.Delivery{Delivered: true}, nil)

	rr := postJSON(t, newHandler(svc).SendCode, map[string]string{"email": "ab1@essex.ac.uk"})

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "code sent")
	assert.NotContains(t, rr.Body.String(), `"code"`)
	svc.AssertExpectations(t)
}

func TestSendCode_Disclosed(t *testing.T) {
	svc := new(mockAuthSvc)
	svc.On("RequestCode", mock.Anything, "ab1@essex.ac.uk").
		Return(&auth.Delivery{Disclosed: true, Code: "123456"}, nil)

	rr := postJSON(t, newHandler(svc).SendCode, map[string]string{"email": "ab1@essex.ac.uk"})

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "123456")
}

func TestSendCode_MissingEmail(t *testing.T) {
	svc := new(mockAuthSvc)

	rr := postJSON(t, newHandler(svc).SendCode, map[string]string{})

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	svc.AssertNotCalled(t, "RequestCode")
}

func TestSendCode_DeliveryFailed(t *testing.T) {
	svc := new(mockAuthSvc)
	svc.On("RequestCode", mock.Anything, "ab1@essex.ac.uk").
		Return(nil, domain.ErrDeliveryFailed)

	rr := postJSON(t, newHandler(svc).SendCode, map[string]string{"email": "ab1@essex.ac.uk"})

	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.Contains(t, rr.Body.String(), "DeliveryFailed")
}

func TestVerify_SetsCookie(t *testing.T) {
	svc := new(mockAuthSvc)
	sess := &domain.Session{
		SessionID:  "sess-1",
		IdentityID: "id-1",
		Identity:   &domain.Identity{IdentityID: "id-1", Email: "ab1@essex.ac.uk", DisplayName: "Student AB"},
	}
	svc.On("SubmitCode", mock.Anything, "ab1@essex.ac.uk", "123456").
		Return(sess, "signed-token", nil)

	rr := postJSON(t, newHandler(svc).Verify, map[string]string{"email": "ab1@essex.ac.uk", "code": "123456"})

	require.Equal(t, http.StatusOK, rr.Code)
	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, middleware.SessionCookie, cookies[0].Name)
	assert.Equal(t, "signed-token", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
	assert.False(t, cookies[0].Secure)
	assert.Contains(t, rr.Body.String(), "Student AB")
}

func TestVerify_NoPendingCode(t *testing.T) {
	svc := new(mockAuthSvc)
	svc.On("SubmitCode", mock.Anything, "ab1@essex.ac.uk", "123456").
		Return(nil, "", domain.ErrNoPendingCode)

	rr := postJSON(t, newHandler(svc).Verify, map[string]string{"email": "ab1@essex.ac.uk", "code": "123456"})

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "NoPendingCode")
}

func TestVerify_MissingFields(t *testing.T) {
	svc := new(mockAuthSvc)

	rr := postJSON(t, newHandler(svc).Verify, map[string]string{"email": "ab1@essex.ac.uk"})

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	svc.AssertNotCalled(t, "SubmitCode")
}
