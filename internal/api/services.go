package api

import (
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/wdream/freelancer-platform/internal/core/ports"
	"github.com/wdream/freelancer-platform/internal/core/service"
	mongostore "github.com/wdream/freelancer-platform/internal/infrastructure/db/mongo"
	redisstore "github.com/wdream/freelancer-platform/internal/infrastructure/db/redis"
	"github.com/wdream/freelancer-platform/internal/infrastructure/http/handlers"
	"github.com/wdream/freelancer-platform/internal/pkg/config"
)

// NewServices wires the Mongo-backed services. rdb may be nil, in which case
// login throttling is off.
func NewServices(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) Services {
	users := mongostore.NewUserRepository(db)
	jobs := mongostore.NewJobRepository(db)
	proposals := mongostore.NewProposalRepository(db)
	tx := mongostore.NewTransactor(db.Client(), cfg.Mongo.Transactions)

	tokens := service.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.JWTTTL)

	var throttle ports.LoginThrottle
	if rdb != nil {
		throttle = redisstore.NewLoginThrottle(rdb, cfg.Auth.LoginMaxAttempts, cfg.Auth.LoginWindow)
	}

	return Services{
		Auth:   service.NewAuthService(users, tokens, throttle, log.With().Str("component", "auth").Logger()),
		Jobs:   service.NewJobService(jobs, proposals, users, tx, log.With().Str("component", "jobs").Logger()),
		Tokens: tokens,
		Ready: map[string]handlers.PingFunc{
			"mongodb": handlers.MongoPing(db),
			"redis":   handlers.RedisPing(rdb),
		},
	}
}
