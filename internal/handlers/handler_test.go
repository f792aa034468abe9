package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/AnshRaj112/aed-backend/internal/middleware"
	"github.com/AnshRaj112/aed-backend/internal/models"
	"github.com/AnshRaj112/aed-backend/internal/services"
	"github.com/AnshRaj112/aed-backend/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockUploader struct {
	mock.Mock
}

func (m *MockUploader) Upload(ctx context.Context, r io.Reader, filename string) (string, error) {
	data, _ := io.ReadAll(r)
	args := m.Called(filename, string(data))
	return args.String(0), args.Error(1)
}

type testServer struct {
	router   *chi.Mux
	accounts *services.AccountService
}

func newTestServer(t *testing.T, uploader services.Uploader) *testServer {
	t.Helper()
	log := zerolog.Nop()
	accounts := services.NewAccountService(store.NewMemoryUserStore(), services.NewTokenIssuer("test-secret"), log)
	aeds := services.NewAEDService(store.NewMemoryAEDStore(), uploader, services.AEDOptions{}, log)
	h := New(aeds, accounts, true, log)

	r := chi.NewRouter()
	r.Post("/api/auth/register", h.Register)
	r.Post("/api/auth/login", h.Login)
	r.Post("/api/auth/logout", h.Logout)
	r.Post("/api/aed/register-aed", h.RegisterAED)
	r.Get("/api/aed/aed-list", h.ListAEDs)
	r.Post("/api/aed/fetchnearby", h.FetchNearby)
	r.Get("/api/aed/{id}", h.GetAED)
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(accounts, log))
		r.Put("/api/aed/{id}", h.UpdateAED)
		r.Delete("/api/aed/{id}", h.DeleteAED)
	})

	return &testServer{router: r, accounts: accounts}
}

func (s *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) token(t *testing.T) string {
	t.Helper()
	summary, err := s.accounts.Register(context.Background(), "Tester", "tester@example.com", "pw")
	require.NoError(t, err)
	return summary.Token
}

func jsonRequest(method, target string, body any) *http.Request {
	b, _ := json.Marshal(body)
	req := httptest.NewRequest(method, target, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func formRequest(method, target string, values url.Values) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func multipartRequest(t *testing.T, method, target string, values map[string]string, filename, content string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range values {
		require.NoError(t, mw.WriteField(k, v))
	}
	if filename != "" {
		fw, err := mw.CreateFormFile(imageField, filename)
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func (s *testServer) registerAED(t *testing.T, values url.Values) models.AED {
	t.Helper()
	rec := s.do(formRequest(http.MethodPost, "/api/aed/register-aed", values))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return *decode[AEDResponse](t, rec).AED
}
