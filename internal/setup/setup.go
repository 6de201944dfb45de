package setup

import (
	"github.com/tdlogistics/tdl/internal/config"
	"github.com/tdlogistics/tdl/internal/crm"
	"github.com/tdlogistics/tdl/internal/handler"
	"github.com/tdlogistics/tdl/internal/jwt"
	"github.com/tdlogistics/tdl/internal/mail"
	"github.com/tdlogistics/tdl/internal/middleware"
	"github.com/tdlogistics/tdl/internal/otp"
	"github.com/tdlogistics/tdl/internal/ratelimit"
	"github.com/tdlogistics/tdl/internal/service"
	"github.com/tdlogistics/tdl/internal/storage/pg"
	"github.com/tdlogistics/tdl/internal/tracking"
)

// Dependencies holds everything the router and main need, wired together.
type Dependencies struct {
	Config         *config.Config
	Storage        *pg.Storage
	Handler        *handler.Handler
	AuthMiddleware *middleware.Auth
	Limiter        *ratelimit.Limiter
}

// SetupDependencies initializes all dependencies required for the application.
func SetupDependencies(cfg *config.Config) (*Dependencies, error) {
	storage, err := pg.New(&cfg.Private.Pg)
	if err != nil {
		return nil, err
	}

	mailer := mail.New(&cfg.Private.Email)
	tokens := jwt.New(cfg.JwtKey(), cfg.JwtTTL())
	crmClient := crm.New(cfg.Public.CrmBaseUrl, cfg.Private.CrmToken)
	trackingClient := tracking.New(cfg.Public.TrackingBaseUrl)

	auth := service.NewAuth(storage, tokens, cfg.Public.MaxLoginFailures, cfg.Public.LockoutDuration)
	reset := otp.New(storage, mailer, cfg.Private.AdminEmail, cfg.Public.OtpTTL, cfg.Public.OtpCodeLen)
	leads := service.NewLeads(storage, mailer, crmClient, cfg.Public.LeadInbox)
	content := service.NewContent(storage)
	newsletter := service.NewNewsletter(storage)
	trackingSvc := service.NewTracking(trackingClient)

	h := handler.New(auth, reset, leads, content, newsletter, trackingSvc, storage, cfg)

	return &Dependencies{
		Config:         cfg,
		Storage:        storage,
		Handler:        h,
		AuthMiddleware: middleware.NewAuth(tokens, cfg.Public.SecureCookies),
		Limiter:        ratelimit.New(),
	}, nil
}

// Cleanup releases held resources. Call on shutdown.
func (d *Dependencies) Cleanup() {
	d.Limiter.Stop()
	d.Storage.Cleanup()
}
