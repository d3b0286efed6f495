package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"passkeeper/internal/auth"
	"passkeeper/internal/config"
	"passkeeper/internal/generator"
	"passkeeper/internal/handlers"
	"passkeeper/internal/middleware"
	"passkeeper/internal/repo"
	"passkeeper/internal/service"
	"passkeeper/internal/vault"

	"go.uber.org/zap"
)

func main() {
	cfg := config.NewConfig()

	// создаём регистратор zap: development по умолчанию, production по LOG_LEVEL
	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		panic(err)
	}

	// делаем регистратор SugaredLogger
	sugar := logger.Sugar()
	middleware.SetLogger(sugar) // передаём логгер в middleware
	//сброс буфера логгера
	defer func() {
		if err := logger.Sync(); err != nil {
			sugar.Errorw("Failed to sync logger", "error", err)
		}
	}()

	// без секретов сервер не стартует
	if err := cfg.ValidateServer(); err != nil {
		sugar.Fatalw("invalid configuration", "error", err)
	}

	key, err := vault.ParseKey(cfg.EncryptionKey)
	if err != nil {
		sugar.Fatalw("invalid encryption key", "error", err)
	}
	v, err := vault.New(key)
	if err != nil {
		sugar.Fatalw("failed to initialize vault", "error", err)
	}
	hasher, err := auth.NewHasher(cfg.PasswordHasher, cfg.BcryptCost)
	if err != nil {
		sugar.Fatalw("failed to initialize password hasher", "error", err)
	}
	tokens, err := auth.NewTokenIssuer([]byte(cfg.AuthSecret), cfg.TokenTTL)
	if err != nil {
		sugar.Fatalw("failed to initialize token issuer", "error", err)
	}

	gormDB, err := repo.InitDB(cfg.DatabaseDSN)
	if err != nil {
		sugar.Fatalw("failed to initialize database", "error", err)
	}

	userRepo := repo.NewUserRepository(gormDB)
	credentialRepo := repo.NewCredentialRepository(gormDB)
	authService := service.NewAuthService(userRepo, hasher, tokens, sugar, cfg.OpTimeout)
	credentialService := service.NewCredentialService(credentialRepo, v, sugar, cfg.OpTimeout)

	h := handlers.NewHandler(authService, credentialService, generator.New(), sugar)

	addr := cfg.BaseURL
	srv := &http.Server{
		Addr:              addr,
		Handler:           h.Router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	sugar.Infow(
		"Starting server",
		"addr", addr,
	)

	// секреты в лог не пишем
	sugar.Infow("Config",
		"BaseURL", cfg.BaseURL,
		"PasswordHasher", cfg.PasswordHasher,
		"TokenTTL", cfg.TokenTTL,
		"OpTimeout", cfg.OpTimeout,
		"Dialect", gormDB.Dialector.Name(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			sugar.Fatalw("Server failed", "error", err)
		}
	}()

	<-ctx.Done()
	sugar.Infow("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		sugar.Errorw("graceful shutdown failed", "error", err)
	}
	if sqlDB, err := gormDB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func newLogger(level string) (*zap.Logger, error) {
	if level == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
