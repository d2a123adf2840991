package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/anonto42/nano-social/backend/internal/router"
	"github.com/anonto42/nano-social/backend/pkg/config"
	"github.com/anonto42/nano-social/backend/pkg/firebase"
	"github.com/anonto42/nano-social/backend/validators"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := config.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize database connections
	db, err := config.InitDB(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize databases", zap.Error(err))
	}
	defer db.CloseDB()

	// Firebase login is optional
	opts := router.Options{
		Postgres:              db.Postgres,
		UseMongoNotifications: cfg.NotificationStore == config.NotificationStoreMongo,
		JWTSecret:             cfg.JWTSecret,
		JWTTTL:                cfg.JWTTTL,
		Logger:                logger,
	}
	if db.Mongo != nil {
		opts.Mongo = db.Mongo.Database(cfg.MongoDatabase)
	}
	firebaseApp, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath)
	switch {
	case errors.Is(err, firebase.ErrNotConfigured):
		logger.Info("Firebase login disabled")
	case err != nil:
		logger.Fatal("Failed to initialize Firebase", zap.Error(err))
	default:
		opts.FirebaseAuth = firebaseApp.AuthClient
		logger.Info("Firebase app and auth client initialized")
	}

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.Validator = validators.NewValidator()

	config.SetupMiddleware(e, logger)
	if err := router.SetupRoutes(ctx, e, opts); err != nil {
		logger.Fatal("Failed to set up routes", zap.Error(err))
	}

	go func() {
		logger.Info("Starting server", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server stopped unexpectedly", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", zap.Error(err))
	}
}
