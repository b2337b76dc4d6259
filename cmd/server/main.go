// server runs the phone authentication HTTP API.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	authhandler "phone-auth-service/internal/auth/handler"
	authservice "phone-auth-service/internal/auth/service"
	"phone-auth-service/internal/auth/sms"
	"phone-auth-service/internal/config"
	"phone-auth-service/internal/db"
	healthhandler "phone-auth-service/internal/health/handler"
	invitehandler "phone-auth-service/internal/invite/handler"
	inviteservice "phone-auth-service/internal/invite/service"
	"phone-auth-service/internal/logger"
	"phone-auth-service/internal/policy/engine"
	"phone-auth-service/internal/security"
	"phone-auth-service/internal/server"
	"phone-auth-service/internal/telemetry/otel"
	userhandler "phone-auth-service/internal/user/handler"
	"phone-auth-service/internal/user/repository"
	userservice "phone-auth-service/internal/user/service"
)

const serviceName = "phone-auth-service"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zl, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	ctx := context.Background()
	providers, err := otel.NewProviders(ctx, cfg.OTELExporterOTLPEndpoint, serviceName, cfg.OTELExporterOTLPInsecure)
	if err != nil {
		zl.Fatal("telemetry", zap.Error(err))
	}
	providers.SetGlobal()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = providers.Shutdown(shutdownCtx)
	}()

	if cfg.DatabaseURL == "" {
		zl.Fatal("DATABASE_URL is not set; create a .env from .env.example or set DATABASE_URL")
	}
	conn, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		zl.Fatal("db", zap.Error(err))
	}
	defer conn.Close()

	signer, err := security.ParsePrivateKey(cfg.JWTPrivateKey)
	if err != nil {
		zl.Fatal("JWT_PRIVATE_KEY", zap.Error(err))
	}
	pub, err := security.ParsePublicKey(cfg.JWTPublicKey)
	if err != nil {
		zl.Fatal("JWT_PUBLIC_KEY", zap.Error(err))
	}
	tokens := security.NewTokenProvider(signer, pub, cfg.JWTIssuer, cfg.JWTAudience, cfg.AccessTTL(), cfg.RefreshTTL())

	var sender sms.Sender
	if cfg.SMSLocalAPIKey != "" {
		sender = sms.NewSMSLocalClient(cfg.SMSLocalAPIKey, cfg.SMSLocalBaseURL, cfg.SMSLocalSender)
		zl.Info("sms: using SMS Local")
	} else {
		sender = sms.NewSimulatedSender(cfg.SimulatedDelay(), zl)
		zl.Info("sms: no provider configured, using simulated sender")
	}

	users := repository.NewPostgresRepository(conn)
	evaluator := engine.NewOPAEvaluator()
	authSvc := authservice.NewAuthService(users, sender, tokens)
	inviteSvc := inviteservice.NewInviteService(users)
	profileSvc := userservice.NewProfileService(users, evaluator, cfg.PublicBaseURL)

	router := server.NewRouter(server.Options{
		Logger:  zl,
		Tokens:  tokens,
		Auth:    authhandler.NewAuthHandler(authSvc, zl, cfg.AuthCodeReturnToClient),
		Invites: invitehandler.NewInviteHandler(inviteSvc, zl),
		Users:   userhandler.NewUserHandler(profileSvc, zl),
		Health:  healthhandler.NewHealthHandler(conn, evaluator),
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zl.Info("HTTP server listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("serve", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	zl.Info("shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zl.Error("shutdown", zap.Error(err))
	}
	zl.Info("HTTP server stopped")
}
