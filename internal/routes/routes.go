package routes

import (
	"net/http"

	"github.com/AnshRaj112/aed-backend/internal/handlers"
	"github.com/AnshRaj112/aed-backend/internal/middleware"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// Options configures the middleware stack around the API routes.
type Options struct {
	AllowedOrigins []string
	Production     bool
	// GlobalLimiters is applied to every route in production. Nil disables it.
	GlobalLimiters *middleware.IPLimiters
	// AuthLimiter guards login and register. Nil disables it.
	AuthLimiter middleware.Limiter
	AuthLimit   int
	Log         zerolog.Logger
}

// NewRouter builds the full HTTP handler.
func NewRouter(h *handlers.Handler, auth middleware.Authenticator, opts Options) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.AccessLog(opts.Log))
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORS(opts.AllowedOrigins))

	if opts.Production {
		if opts.GlobalLimiters != nil {
			r.Use(middleware.ProductionSecurity(opts.GlobalLimiters)...)
		} else {
			r.Use(middleware.SecurityHeaders)
		}
	}
	if opts.AuthLimiter != nil {
		r.Use(middleware.AuthRateLimit(opts.AuthLimiter, opts.AuthLimit, opts.Log))
	}

	// Health check
	r.Get("/health", handlers.Health)

	SetupRoutes(r, h, middleware.RequireAuth(auth, opts.Log))
	return r
}

func SetupRoutes(r chi.Router, h *handlers.Handler, requireAuth func(http.Handler) http.Handler) {
	// Account routes
	r.Post("/api/auth/register", h.Register)
	r.Post("/api/auth/login", h.Login)
	r.Post("/api/auth/logout", h.Logout)

	// AED routes
	r.Post("/api/aed/register-aed", h.RegisterAED)
	r.Get("/api/aed/aed-list", h.ListAEDs)
	r.Post("/api/aed/fetchnearby", h.FetchNearby)
	r.Get("/api/aed/{id}", h.GetAED)

	// Writes to an existing record need a session
	r.Group(func(r chi.Router) {
		r.Use(requireAuth)
		r.Put("/api/aed/{id}", h.UpdateAED)
		r.Delete("/api/aed/{id}", h.DeleteAED)
	})
}
