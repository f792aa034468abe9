package routes

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/AnshRaj112/aed-backend/internal/handlers"
	"github.com/AnshRaj112/aed-backend/internal/middleware"
	"github.com/AnshRaj112/aed-backend/internal/services"
	"github.com/AnshRaj112/aed-backend/internal/store"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func newRouter(opts Options) http.Handler {
	log := zerolog.Nop()
	accounts := services.NewAccountService(store.NewMemoryUserStore(), services.NewTokenIssuer("secret"), log)
	aeds := services.NewAEDService(store.NewMemoryAEDStore(), nil, services.AEDOptions{}, log)
	opts.Log = log
	return NewRouter(handlers.New(aeds, accounts, opts.Production, log), accounts, opts)
}

func TestHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter(Options{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestRouteTable(t *testing.T) {
	r := newRouter(Options{})

	tests := []struct {
		method, path string
		want         int
	}{
		{http.MethodGet, "/api/aed/aed-list", http.StatusOK},
		{http.MethodGet, "/api/aed/000000000000000000000000", http.StatusNotFound},
		{http.MethodPut, "/api/aed/000000000000000000000000", http.StatusUnauthorized},
		{http.MethodDelete, "/api/aed/000000000000000000000000", http.StatusUnauthorized},
		{http.MethodPost, "/api/aed/fetchnearby", http.StatusBadRequest},
		{http.MethodPost, "/api/auth/logout", http.StatusOK},
		{http.MethodGet, "/api/unknown", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader("{}"))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestProductionStack(t *testing.T) {
	r := newRouter(Options{
		AllowedOrigins: []string{"https://aed.example.org"},
		Production:     true,
		GlobalLimiters: middleware.NewGlobalLimiters(),
		AuthLimiter:    middleware.NewIPLimiters(rate.Every(time.Hour), 1),
		AuthLimit:      1,
	})

	req := httptest.NewRequest(http.MethodGet, "/api/aed/aed-list", nil)
	req.Header.Set("Origin", "https://aed.example.org")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "https://aed.example.org", rec.Header().Get("Access-Control-Allow-Origin"))

	login := func() int {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"a@example.com","password":"x"}`))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec.Code
	}
	assert.Equal(t, http.StatusUnauthorized, login())
	assert.Equal(t, http.StatusTooManyRequests, login())
}

func TestProductionWithoutGlobalLimiter(t *testing.T) {
	r := newRouter(Options{Production: true})

	for i := 0; i < 50; i++ {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	}
}
