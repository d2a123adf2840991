package router

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/anonto42/nano-social/backend/internal/handlers"
	"github.com/anonto42/nano-social/backend/internal/middleware"
	"github.com/anonto42/nano-social/backend/internal/repositories"
	"github.com/anonto42/nano-social/backend/internal/services"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Options carries the connections and settings the routes are built from.
type Options struct {
	Postgres *gorm.DB
	// Mongo is required only when UseMongoNotifications is set.
	Mongo                 *mongo.Database
	UseMongoNotifications bool
	// FirebaseAuth may be nil; Firebase login then answers 503.
	FirebaseAuth *auth.Client
	JWTSecret    string
	JWTTTL       time.Duration
	Logger       *zap.Logger
}

// SetupRoutes migrates the relational schema, wires repositories, services and handlers, and
// registers every route under /api/v1.
func SetupRoutes(ctx context.Context, e *echo.Echo, opts Options) error {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	if err := repositories.AutoMigrate(opts.Postgres); err != nil {
		return fmt.Errorf("failed to auto migrate models: %w", err)
	}
	logger.Info("PostgreSQL auto-migrations completed")

	e.GET("/health", handlers.NewHealthHandler(opts.Postgres).HealthCheck)
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"message": "social-api"})
	})

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(opts.Postgres)
	followRepo := repositories.NewPostgresFollowRepository(opts.Postgres)
	postRepo := repositories.NewPostgresPostRepository(opts.Postgres)
	commentRepo := repositories.NewPostgresCommentRepository(opts.Postgres)
	likeRepo := repositories.NewPostgresLikeRepository(opts.Postgres)
	reactionRepo := repositories.NewPostgresReactionRepository(opts.Postgres)

	var notificationRepo repositories.NotificationRepository
	if opts.UseMongoNotifications {
		if opts.Mongo == nil {
			return errors.New("mongo notification store requested without a mongo database")
		}
		mongoRepo := repositories.NewMongoNotificationRepository(opts.Mongo)
		if err := mongoRepo.EnsureIndexes(ctx); err != nil {
			return fmt.Errorf("failed to create notification indexes: %w", err)
		}
		notificationRepo = mongoRepo
		logger.Info("Notifications stored in MongoDB")
	} else {
		notificationRepo = repositories.NewPostgresNotificationRepository(opts.Postgres)
	}

	// --- Initialize Services ---
	notificationService := services.NewNotificationService(notificationRepo, logger)
	userService := services.NewUserService(userRepo, followRepo, notificationRepo, logger)
	followService := services.NewFollowService(followRepo, userRepo, notificationService)
	postService := services.NewPostService(postRepo, userRepo)
	feedService := services.NewFeedService(postRepo, userRepo, likeRepo)
	commentService := services.NewCommentService(commentRepo, postRepo, userRepo, notificationService)
	likeService := services.NewLikeService(likeRepo, postRepo, userRepo, notificationService)
	reactionService := services.NewReactionService(reactionRepo, postRepo, userRepo, notificationService)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(userService, opts.FirebaseAuth, opts.JWTSecret, opts.JWTTTL)
	authHandler.RegisterAuthRoutes(authGroup)

	// Mutations and personal views require an authenticated identity.
	protected := e.Group("/api/v1")
	protected.Use(middleware.JWTAuthMiddleware(opts.JWTSecret))

	// Reads are open to anonymous callers; a token, when sent, must be valid.
	// Each Use registers a catch-all for the shared prefix and the last one wins, so this group
	// goes second and unknown paths answer 404 instead of 401.
	public := e.Group("/api/v1")
	public.Use(middleware.OptionalJWTAuthMiddleware(opts.JWTSecret))

	handlers.NewUserHandler(userService).RegisterUserRoutes(public, protected)
	handlers.NewFollowHandler(followService).RegisterFollowRoutes(public, protected)
	handlers.NewPostHandler(postService, feedService).RegisterPostRoutes(public, protected)
	handlers.NewFeedHandler(feedService).RegisterFeedRoutes(protected)
	handlers.NewCommentHandler(commentService).RegisterCommentRoutes(public, protected)
	handlers.NewLikeHandler(likeService).RegisterLikeRoutes(public, protected)
	handlers.NewReactionHandler(reactionService).RegisterReactionRoutes(public, protected)
	handlers.NewNotificationHandler(notificationService, userService).RegisterNotificationRoutes(protected)

	logger.Info("All routes configured")
	return nil
}
