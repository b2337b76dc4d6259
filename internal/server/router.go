// Package server assembles the gin engine: middleware chain and route
// registration.
package server

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	authhandler "phone-auth-service/internal/auth/handler"
	healthhandler "phone-auth-service/internal/health/handler"
	invitehandler "phone-auth-service/internal/invite/handler"
	"phone-auth-service/internal/security"
	"phone-auth-service/internal/server/middleware"
	userhandler "phone-auth-service/internal/user/handler"
)

const serviceName = "phone-auth-service"

// Options holds everything the router needs.
type Options struct {
	Logger  *zap.Logger
	Tokens  *security.TokenProvider
	Auth    *authhandler.AuthHandler
	Invites *invitehandler.InviteHandler
	Users   *userhandler.UserHandler
	Health  *healthhandler.HealthHandler
}

// NewRouter builds the gin engine with recovery, request logging, tracing,
// and all routes mounted. Token issuance endpoints are public; invite and
// profile endpoints require a bearer access token.
func NewRouter(opts Options) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	r.Use(
		gin.Recovery(),
		middleware.RequestLogger(logger),
		middleware.Tracing(serviceName),
	)

	if opts.Health != nil {
		opts.Health.Register(r)
	}
	opts.Auth.Register(r)

	authed := r.Group("", middleware.RequireAuth(opts.Tokens))
	opts.Invites.Register(authed)
	opts.Users.Register(authed)

	return r
}
