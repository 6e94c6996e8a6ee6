package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anonto42/pixgram/backend/internal/middleware"
	"github.com/anonto42/pixgram/backend/internal/repositories"
	"github.com/anonto42/pixgram/backend/internal/router"
	"github.com/anonto42/pixgram/backend/pkg/config"
	"github.com/anonto42/pixgram/backend/pkg/firebase"
	"github.com/anonto42/pixgram/backend/pkg/storage"
	"github.com/labstack/echo/v4"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger := setupLogger(cfg)

	// Initialize database connections
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.CloseDB() // Ensure database connections are closed when main exits

	if err := repositories.AutoMigrate(db.Postgres); err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")

	ctx := context.Background()
	verifier, err := setupVerifier(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize %s auth: %v", cfg.AuthProvider, err)
	}

	store, err := setupStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize upload storage: %v", err)
	}

	var audit repositories.AuditRepository
	if db.Mongo != nil {
		audit = repositories.NewMongoAuditRepository(db.Mongo.Database(cfg.MongoDatabase))
	}

	// Create Echo instance
	e := echo.New()
	router.SetupMiddleware(e, logger, cfg.MaxUploadSize)
	router.SetupRoutes(e, router.Dependencies{
		Postgres: db.Postgres,
		Audit:    audit,
		Verifier: verifier,
		Store:    store,
		Logger:   logger,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server stopped unexpectedly", "error", err)
			os.Exit(1)
		}
	}()
	logger.Info("Server started", "port", cfg.Port, "env", cfg.Env, "auth_provider", cfg.AuthProvider)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}
	logger.Info("Server exited")
}

func setupLogger(cfg *config.Config) *slog.Logger {
	var handler slog.Handler
	if cfg.IsProduction() {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	return slog.New(handler)
}

func setupVerifier(ctx context.Context, cfg *config.Config) (middleware.TokenVerifier, error) {
	if cfg.AuthProvider == config.AuthProviderJWT {
		log.Println("Using HMAC JWT authentication.")
		return middleware.NewHMACVerifier(cfg.JWTSecret), nil
	}
	return firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath)
}

func setupStore(ctx context.Context, cfg *config.Config) (storage.Store, error) {
	if cfg.UsesMinio() {
		return storage.NewMinioStore(ctx, storage.MinioConfig{
			Endpoint:  cfg.MinioEndpoint,
			AccessKey: cfg.MinioAccessKey,
			SecretKey: cfg.MinioSecretKey,
			Bucket:    cfg.MinioBucket,
			UseSSL:    cfg.MinioUseSSL,
		})
	}
	return storage.NewDiskStore(cfg.UploadDir)
}
