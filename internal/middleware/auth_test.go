package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/AnshRaj112/aed-backend/internal/models"
	"github.com/AnshRaj112/aed-backend/internal/services"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAuthenticator struct {
	mock.Mock
}

func (m *MockAuthenticator) Authenticate(ctx context.Context, token string) (*models.User, error) {
	args := m.Called(token)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func protected(auth Authenticator) http.Handler {
	return RequireAuth(auth, zerolog.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			w.WriteHeader(http.StatusTeapot)
			return
		}
		_, _ = w.Write([]byte(user.ID))
	}))
}

func decodeMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	msg, _ := body["message"].(string)
	return msg
}

func TestRequireAuthNoToken(t *testing.T) {
	auth := new(MockAuthenticator)
	rec := httptest.NewRecorder()
	protected(auth).ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/aed/1", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Unauthorized: No token provided", decodeMessage(t, rec))
	auth.AssertNotCalled(t, "Authenticate", mock.Anything)
}

func TestRequireAuthPrefersCookie(t *testing.T) {
	auth := new(MockAuthenticator)
	auth.On("Authenticate", "cookie-token").Return(&models.User{ID: "u1"}, nil).Once()

	req := httptest.NewRequest(http.MethodPut, "/api/aed/1", nil)
	req.AddCookie(&http.Cookie{Name: TokenCookieName, Value: "cookie-token"})
	req.Header.Set("Authorization", "Bearer header-token")
	rec := httptest.NewRecorder()
	protected(auth).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u1", rec.Body.String())
	auth.AssertExpectations(t)
}

func TestRequireAuthBearerFallback(t *testing.T) {
	auth := new(MockAuthenticator)
	auth.On("Authenticate", "header-token").Return(&models.User{ID: "u2"}, nil).Once()

	req := httptest.NewRequest(http.MethodPut, "/api/aed/1", nil)
	req.Header.Set("Authorization", "Bearer header-token")
	rec := httptest.NewRecorder()
	protected(auth).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u2", rec.Body.String())
}

func TestRequireAuthFailures(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"invalid token", services.ErrInvalidToken, http.StatusUnauthorized, "Unauthorized: Invalid token"},
		{"store down", errors.New("connection refused"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := new(MockAuthenticator)
			auth.On("Authenticate", "tok").Return(nil, tt.err)

			req := httptest.NewRequest(http.MethodDelete, "/api/aed/1", nil)
			req.Header.Set("Authorization", "bearer tok")
			rec := httptest.NewRecorder()
			protected(auth).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantMsg, decodeMessage(t, rec))
		})
	}
}

func TestRequireAuthWithAccountService(t *testing.T) {
	accounts := newTestAccounts(t)
	summary, err := accounts.Register(context.Background(), "Ada", "ada@example.com", "pw")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPut, "/api/aed/1", nil)
	req.AddCookie(&http.Cookie{Name: TokenCookieName, Value: summary.Token})
	rec := httptest.NewRecorder()
	protected(accounts).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, summary.ID, rec.Body.String())
}
