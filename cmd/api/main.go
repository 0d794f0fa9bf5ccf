package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	goredis "github.com/redis/go-redis/v9"

	"github.com/wdream/freelancer-platform/internal/api"
	mongostore "github.com/wdream/freelancer-platform/internal/infrastructure/db/mongo"
	redisstore "github.com/wdream/freelancer-platform/internal/infrastructure/db/redis"
	"github.com/wdream/freelancer-platform/internal/pkg/config"
	"github.com/wdream/freelancer-platform/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title                       Freelancer Platform API
// @version                     1.0.0
// @description                 Accounts, job postings and proposals for a freelancer marketplace.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the token.
func main() {
	// A missing .env is fine; the environment may already be populated.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		boot := logger.Init(logger.Options{Service: "freelancer-platform"})
		boot.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "freelancer-platform",
	})

	client, db, err := mongostore.Connect(ctx, mongostore.Config{
		URI:            cfg.Mongo.URI,
		Database:       cfg.Mongo.Database,
		ConnectTimeout: cfg.Mongo.ConnectTimeout,
		SocketTimeout:  cfg.Mongo.SocketTimeout,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	log.Info().Str("database", cfg.Mongo.Database).Msg("connected to MongoDB")

	if err := mongostore.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("failed to create indexes")
	}

	var rdb *goredis.Client
	if cfg.RedisEnabled() {
		rdb, err = redisstore.Connect(ctx, redisstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, login throttling disabled")
			rdb = nil
		}
	}

	e := api.NewRouter(api.Options{
		Env:        cfg.Env,
		Port:       cfg.Port,
		ClientURL:  cfg.ClientURL,
		Production: cfg.IsProduction(),
	}, api.NewServices(db, rdb, cfg, log), log)

	e.Server.ReadHeaderTimeout = 10 * time.Second
	e.Server.ReadTimeout = 30 * time.Second
	e.Server.WriteTimeout = 30 * time.Second
	e.Server.IdleTimeout = 120 * time.Second

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	if err := client.Disconnect(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("mongo disconnect")
	}
	if rdb != nil {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("redis close")
		}
	}
	log.Info().Msg("server stopped")
}
