package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"

	"github.com/clutch-swap/clutch-api/internal/application/auth"
	"github.com/clutch-swap/clutch-api/internal/application/exchange"
	"github.com/clutch-swap/clutch-api/internal/application/identity"
	"github.com/clutch-swap/clutch-api/internal/application/listing"
	"github.com/clutch-swap/clutch-api/internal/application/photo"
	"github.com/clutch-swap/clutch-api/internal/application/saved"
	"github.com/clutch-swap/clutch-api/internal/application/seed"
	"github.com/clutch-swap/clutch-api/internal/application/session"
	"github.com/clutch-swap/clutch-api/internal/config"
	jwtinfra "github.com/clutch-swap/clutch-api/internal/infrastructure/jwt"
	"github.com/clutch-swap/clutch-api/internal/infrastructure/memstore"
	"github.com/clutch-swap/clutch-api/internal/infrastructure/smtp"
	"github.com/clutch-swap/clutch-api/internal/infrastructure/sns"
	"github.com/clutch-swap/clutch-api/internal/transport/http/handler"
	appmiddleware "github.com/clutch-swap/clutch-api/internal/transport/http/middleware"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	IdentityRepo     IdentityRepository
	SessionRepo      SessionRepository
	VerificationRepo VerificationRepository
	ListingRepo      ListingRepository
	SavedRepo        SavedRepository
	ExchangeRepo     ExchangeRepository
	PhotoRepo        PhotoRepository
	Objects          ObjectStore
	Mailer           smtp.Mailer
	SMSSender        sns.SMSSender
	JWTProvider      *jwtinfra.Provider
}

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	sessionTTL := time.Duration(cfg.SessionExpiryDays) * 24 * time.Hour

	identitySvc := identity.NewService(deps.IdentityRepo)
	sessionSvc := session.NewService(deps.SessionRepo, deps.IdentityRepo, deps.JWTProvider, sessionTTL)
	authSvc := auth.NewService(auth.ServiceDeps{
		Store:       auth.NewFallbackStore(deps.VerificationRepo, memstore.NewVerificationStore()),
		Identities:  identitySvc,
		Sessions:    sessionSvc,
		Notifier:    auth.NewNotifier(deps.Mailer, cfg.Production()),
		EmailDomain: cfg.EmailDomain,
		CodeTTL:     time.Duration(cfg.CodeTTLMinutes) * time.Minute,
		MaxAttempts: cfg.MaxCodeAttempts,
	})
	listingSvc := listing.NewService(deps.ListingRepo)
	savedSvc := saved.NewService(deps.SavedRepo, deps.ListingRepo)
	exchangeSvc := exchange.NewService(deps.ExchangeRepo, deps.ListingRepo, deps.IdentityRepo, deps.SMSSender)
	photoSvc := photo.NewService(deps.PhotoRepo, deps.ListingRepo, deps.Objects)
	seeder := seed.NewSeeder(identitySvc, deps.ListingRepo)

	healthH := handler.NewHealthHandler()
	authH := handler.NewAuthHandler(authSvc, sessionSvc, identitySvc, sessionTTL, cfg.Production())
	listingH := handler.NewListingHandler(listingSvc)
	savedH := handler.NewSavedHandler(savedSvc)
	exchangeH := handler.NewExchangeHandler(exchangeSvc)
	photoH := handler.NewPhotoHandler(photoSvc)
	adminH := handler.NewAdminHandler(listingSvc, seeder)

	authMw := appmiddleware.Auth(sessionSvc)

	// 5 requests/second with a burst of 10 on the code endpoints.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	r.Route("/v1", func(r chi.Router) {
		// ── Public routes (no auth) ──────────────────────────────────────────
		r.Get("/health-check/{action}", healthH.Ping)
		r.With(sensitiveRL.Limit).Post("/auth/send-code", authH.SendCode)
		r.With(sensitiveRL.Limit).Post("/auth/verify", authH.Verify)
		r.Get("/listings", listingH.List)
		r.Get("/listings/{id}", listingH.Get)
		r.Get("/listings/{id}/photos", photoH.ListByListing)
		r.Get("/photos/{id}", photoH.Download)

		// ── Authenticated routes ─────────────────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(authMw)

			r.Get("/auth/me", authH.Me)
			r.Put("/auth/me", authH.UpdateMe)
			r.Delete("/auth/me", authH.Logout)

			r.Post("/listings", listingH.Create)
			r.Get("/listings/mine", listingH.Mine)
			r.Delete("/listings/{id}", listingH.Delete)
			r.Post("/listings/{id}/photos", photoH.Upload)
			r.Delete("/photos/{id}", photoH.Delete)

			r.Get("/saved", savedH.List)
			r.Post("/saved/{id}", savedH.Toggle)

			r.Get("/exchanges", exchangeH.List)
			r.Post("/exchanges", exchangeH.Create)
			r.Post("/exchanges/{id}/approve", exchangeH.Approve)
			r.Post("/exchanges/{id}/reject", exchangeH.Reject)

			// Admin-only routes
			r.Group(func(r chi.Router) {
				r.Use(appmiddleware.RequireAdmin(cfg.AdminEmails))

				r.Get("/admin/listings", adminH.ListListings)
				r.Delete("/admin/listings/{id}", adminH.DeleteListing)
				r.Post("/admin/seed", adminH.Seed)
			})
		})
	})

	return r
}
