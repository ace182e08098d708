package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/helpingbuddy/forum-api/internal/api/handler"
	"github.com/helpingbuddy/forum-api/internal/api/middleware"
	"github.com/helpingbuddy/forum-api/internal/core/service"
	forummongo "github.com/helpingbuddy/forum-api/internal/infrastructure/db/mongo"
	forumredis "github.com/helpingbuddy/forum-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *goredis.Client, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("forum"))

	// --- Dependencies ---
	userRepo := forummongo.NewUserRepository(db)
	topicRepo := forummongo.NewTopicRepository(db)
	roomRepo := forummongo.NewRoomRepository(db)
	messageRepo := forummongo.NewMessageRepository(db)
	sessions := forumredis.NewSessionStore(rdb, tokenTTL)

	authService := service.NewAuthService(userRepo, sessions, jwtSecret, tokenTTL, log)
	forumService := service.NewForumService(userRepo, topicRepo, roomRepo, messageRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	roomHandler := handler.NewRoomHandler(forumService)
	userHandler := handler.NewUserHandler(forumService)
	authMiddleware := middleware.Auth(jwtSecret, sessions)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout, authMiddleware)

	// --- Browsing (no auth required) ---
	e.GET("/rooms", roomHandler.List)
	e.GET("/rooms/:id", roomHandler.Get)
	e.GET("/users/:id", userHandler.Profile)
	e.GET("/topics", userHandler.Topics)
	e.GET("/activity", userHandler.Activity)

	// --- Ownership-gated mutations ---
	e.POST("/rooms", roomHandler.Create, authMiddleware)
	e.PUT("/rooms/:id", roomHandler.Update, authMiddleware)
	e.DELETE("/rooms/:id", roomHandler.Delete, authMiddleware)
	e.POST("/rooms/:id/messages", roomHandler.PostMessage, authMiddleware)
	e.DELETE("/messages/:id", roomHandler.DeleteMessage, authMiddleware)
	e.PUT("/users/me", userHandler.UpdateProfile, authMiddleware)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
