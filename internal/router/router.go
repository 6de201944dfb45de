package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	mw "github.com/tdlogistics/tdl/internal/middleware"
	"github.com/tdlogistics/tdl/internal/middleware/metrics"
	"github.com/tdlogistics/tdl/internal/ratelimit"
	"github.com/tdlogistics/tdl/internal/setup"
)

// New builds the full route tree. Rate limits apply per endpoint class:
// auth endpoints get the strictest window, lead forms a tight one, tracking
// a looser one and everything public shares a generic API budget.
func New(deps *setup.Dependencies) chi.Router {
	r := chi.NewRouter()

	r.Use(metrics.Middleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.Public.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	}))

	// JSON API only, no scripts or styles served
	apiCSP := "default-src 'none'; frame-ancestors 'none'"
	r.Use(mw.SecurityHeaders(deps.Config.Public.SecureCookies, apiCSP))

	h := deps.Handler
	authMw := deps.AuthMiddleware
	limiter := deps.Limiter

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		// Auth endpoints: strict limits against credential stuffing and
		// code brute force.
		r.Group(func(r chi.Router) {
			r.Use(mw.RateLimit(limiter, ratelimit.Auth, "auth"))
			r.Post("/auth/login", h.Login)
			r.Post("/auth/reset", h.PasswordReset)
		})
		r.Post("/auth/logout", h.Logout)
		r.With(authMw.NeedAuth()).Get("/auth/me", h.Me)

		// Lead-capture forms.
		r.Group(func(r chi.Router) {
			r.Use(mw.RateLimit(limiter, ratelimit.Lead, "lead"))
			r.Post("/contact", h.CreateContact)
			r.Post("/quote", h.CreateQuote)
			r.Post("/careers/apply", h.CreateApplication)
			r.Post("/reviews", h.CreateReview)
			r.Post("/newsletter/subscribe", h.Subscribe)
			r.Post("/newsletter/unsubscribe", h.Unsubscribe)
		})

		// Shipment tracking proxy.
		r.With(mw.RateLimit(limiter, ratelimit.Tracking, "tracking")).
			Get("/tracking/{number}", h.Track)

		// Public reads.
		r.Group(func(r chi.Router) {
			r.Use(mw.RateLimit(limiter, ratelimit.API, "api"))
			r.Get("/posts", h.GetPosts)
			r.Get("/posts/{slug}", h.GetPost)
			r.Get("/reviews", h.GetReviews)
			r.Get("/brands", h.GetBrands)
		})

		// Back-office.
		r.Route("/admin", func(r chi.Router) {
			r.Use(authMw.AdminOnly())

			r.Get("/leads/contacts", h.GetContacts)
			r.Get("/leads/quotes", h.GetQuotes)
			r.Get("/leads/applications", h.GetApplications)

			r.Get("/posts", h.GetAllPosts)
			r.Post("/posts", h.CreatePost)
			r.Put("/posts/{id}", h.UpdatePost)
			r.Delete("/posts/{id}", h.DeletePost)

			r.Get("/reviews", h.GetAllReviews)
			r.Post("/reviews/{id}/approve", h.ApproveReview)
			r.Post("/reviews/{id}/reject", h.RejectReview)
			r.Delete("/reviews/{id}", h.DeleteReview)

			r.Post("/brands", h.CreateBrand)
			r.Delete("/brands/{id}", h.DeleteBrand)

			r.Get("/subscribers", h.GetSubscribers)
		})
	})

	// Preflight requests should not 404
	r.MethodFunc("OPTIONS", "/*", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return r
}
