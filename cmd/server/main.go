package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/helpingbuddy/forum-api/internal/api"
	"github.com/helpingbuddy/forum-api/internal/infrastructure/config"
	forummongo "github.com/helpingbuddy/forum-api/internal/infrastructure/db/mongo"
	forumredis "github.com/helpingbuddy/forum-api/internal/infrastructure/db/redis"
	"github.com/helpingbuddy/forum-api/pkg/logger"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mongoClient, db, err := forummongo.Connect(ctx, forummongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()

	rdb, err := forumredis.Connect(ctx, forumredis.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		_ = rdb.Close()
	}()

	if err := ensureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("index bootstrap failed")
	}

	e := api.NewRouter(db, rdb, cfg.JWTSecret, cfg.TokenTTL, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("forum API listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// ensureIndexes bootstraps the unique and lookup indexes every repository
// relies on. Runs at startup; index creation is idempotent.
func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	if err := forummongo.NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := forummongo.NewTopicRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := forummongo.NewRoomRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	return forummongo.NewMessageRepository(db).EnsureIndexes(ctx)
}
