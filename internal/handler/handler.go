package handler

import (
	"context"

	"github.com/tdlogistics/tdl/internal/config"
	"github.com/tdlogistics/tdl/internal/otp"
	"github.com/tdlogistics/tdl/internal/service"
)

// HealthChecker is what Ready needs from the storage layer.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	auth       service.AuthService
	otp        *otp.Service
	leads      *service.Leads
	content    *service.Content
	newsletter *service.Newsletter
	tracking   *service.Tracking
	health     HealthChecker
	cfg        *config.Config
}

func New(
	auth service.AuthService,
	otp *otp.Service,
	leads *service.Leads,
	content *service.Content,
	newsletter *service.Newsletter,
	tracking *service.Tracking,
	health HealthChecker,
	cfg *config.Config,
) *Handler {
	return &Handler{auth, otp, leads, content, newsletter, tracking, health, cfg}
}
