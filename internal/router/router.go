package router

import (
	"context"
	"log"
	"log/slog"

	"github.com/anonto42/pixgram/backend/internal/handlers"
	"github.com/anonto42/pixgram/backend/internal/middleware"
	"github.com/anonto42/pixgram/backend/internal/repositories"
	"github.com/anonto42/pixgram/backend/internal/validators"
	"github.com/anonto42/pixgram/backend/pkg/storage"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"
)

// Dependencies are the collaborators the routes are wired to.
type Dependencies struct {
	Postgres *gorm.DB
	// Audit is the moderation audit log. Nil disables it.
	Audit    repositories.AuditRepository
	Verifier middleware.TokenVerifier
	Store    storage.Store
	Logger   *slog.Logger
}

// SetupMiddleware configures global Echo middleware, validation and error rendering
func SetupMiddleware(e *echo.Echo, logger *slog.Logger, bodyLimit string) {
	e.HideBanner = true
	e.Validator = validators.NewValidator()
	e.HTTPErrorHandler = handlers.NewErrorHandler(logger)

	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.RequestID())
	e.Use(eMiddleware.RequestLoggerWithConfig(eMiddleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v eMiddleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			if v.Status >= 500 {
				level = slog.LevelError
			}
			logger.LogAttrs(context.Background(), level, "HTTP Request",
				slog.String("request_id", v.RequestID),
				slog.String("method", v.Method),
				slog.String("path", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("client_ip", v.RemoteIP),
			)
			return nil
		},
	}))
	e.Use(eMiddleware.CORSWithConfig(eMiddleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(eMiddleware.BodyLimit(bodyLimit))
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, deps Dependencies) {
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(deps.Postgres)
	postRepo := repositories.NewPostgresPostRepository(deps.Postgres)
	likeRepo := repositories.NewPostgresLikeRepository(deps.Postgres)
	commentRepo := repositories.NewPostgresCommentRepository(deps.Postgres)
	followRepo := repositories.NewPostgresFollowRepository(deps.Postgres)
	storyRepo := repositories.NewPostgresStoryRepository(deps.Postgres)
	auditRepo := deps.Audit

	// --- Access levels, checked per route ---
	authenticate := middleware.Authenticate(deps.Verifier)
	guards := handlers.Guards{
		Viewer:        []echo.MiddlewareFunc{middleware.OptionalAuthenticate(deps.Verifier)},
		Authenticated: []echo.MiddlewareFunc{authenticate},
		Active:        []echo.MiddlewareFunc{authenticate, middleware.RequireActive(userRepo)},
		Admin:         []echo.MiddlewareFunc{authenticate, middleware.RequireAdmin(userRepo)},
	}

	api := e.Group("")
	uploader := handlers.NewUploader(deps.Store, deps.Logger)

	handlers.NewAuthHandler(userRepo).RegisterAuthRoutes(api, guards)
	log.Println("Auth routes configured.")

	handlers.NewUserHandler(userRepo, postRepo, followRepo).RegisterUserRoutes(api, guards)
	handlers.NewFollowHandler(followRepo, userRepo).RegisterFollowRoutes(api, guards)
	log.Println("User and follow routes configured.")

	handlers.NewPostHandler(postRepo, userRepo, likeRepo, commentRepo, auditRepo, uploader, deps.Logger).RegisterPostRoutes(api, guards)
	handlers.NewLikeHandler(likeRepo, postRepo).RegisterLikeRoutes(api, guards)
	handlers.NewCommentHandler(commentRepo, postRepo, userRepo, likeRepo).RegisterCommentRoutes(api, guards)
	handlers.NewFeedHandler(postRepo, userRepo, followRepo, likeRepo, commentRepo).RegisterFeedRoutes(api, guards)
	handlers.NewHashtagHandler(postRepo).RegisterHashtagRoutes(api)
	log.Println("Post, like, comment, feed and hashtag routes configured.")

	handlers.NewStoryHandler(storyRepo, userRepo, uploader).RegisterStoryRoutes(api, guards)
	handlers.NewUploadHandler(deps.Store).RegisterUploadRoutes(api)
	log.Println("Story and upload routes configured.")

	adminHandler := handlers.NewAdminHandler(userRepo, postRepo, commentRepo, likeRepo, storyRepo, auditRepo, deps.Logger)
	adminHandler.RegisterAdminRoutes(e.Group("/admin"), guards)
	log.Println("Admin routes configured.")

	log.Println("All routes configured.")
}
