package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/AnshRaj112/aed-backend/internal/config"
	"github.com/AnshRaj112/aed-backend/internal/database"
	"github.com/AnshRaj112/aed-backend/internal/store"
)

func newLogger(cfg *config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil || cfg.LogLevel == "" {
		level = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if cfg.IsProduction() {
		logger = zerolog.New(os.Stdout)
	} else {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}
	return logger.Level(level).With().Timestamp().Str("service", "aed-backend").Logger()
}

// backends holds every external connection the server opened.
type backends struct {
	mongoClient *mongo.Client
	postgres    *sql.DB
	redis       *redis.Client

	aeds      store.AEDStore
	users     store.UserStore
	mongoAEDs *store.MongoAEDStore
	mongoUser *store.MongoUserStore
}

// openBackends connects to the stores named by cfg. Accounts live in
// Postgres when POSTGRES_URI is set, otherwise next to the AED records.
func openBackends(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*backends, error) {
	b := &backends{}

	switch cfg.StoreBackend {
	case "memory":
		log.Warn().Msg("using in-memory store; data is lost on restart")
		b.aeds = store.NewMemoryAEDStore()
		b.users = store.NewMemoryUserStore()
	default:
		client, db, err := database.ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDatabase, log)
		if err != nil {
			return nil, fmt.Errorf("connect mongo: %w", err)
		}
		b.mongoClient = client
		b.mongoAEDs = store.NewMongoAEDStore(db)
		b.mongoUser = store.NewMongoUserStore(db)
		b.aeds = b.mongoAEDs
		b.users = b.mongoUser
	}

	if cfg.PostgresURI != "" {
		log.Info().Msg("connecting to PostgreSQL for accounts")
		pg, err := database.ConnectPostgres(ctx, cfg.PostgresURI)
		if err != nil {
			b.Close(log)
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		b.postgres = pg
		b.users = store.NewPostgresUserStore(pg)
		b.mongoUser = nil
	}

	if cfg.RedisURI != "" {
		log.Info().Msg("connecting to Redis for rate limiting")
		rc, err := database.ConnectRedis(ctx, cfg.RedisURI)
		if err != nil {
			b.Close(log)
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		b.redis = rc
	}

	return b, nil
}

// migrate creates indexes and tables for whichever stores are in use.
func (b *backends) migrate(ctx context.Context) error {
	if b.mongoAEDs != nil {
		if err := b.mongoAEDs.EnsureIndexes(ctx); err != nil {
			return err
		}
	}
	if b.mongoUser != nil {
		if err := b.mongoUser.EnsureIndexes(ctx); err != nil {
			return err
		}
	}
	if b.postgres != nil {
		if err := database.InitPostgresTables(ctx, b.postgres); err != nil {
			return err
		}
	}
	return nil
}

func (b *backends) Close(log zerolog.Logger) {
	if b.redis != nil {
		if err := b.redis.Close(); err != nil {
			log.Warn().Err(err).Msg("close redis")
		}
	}
	if b.postgres != nil {
		if err := b.postgres.Close(); err != nil {
			log.Warn().Err(err).Msg("close postgres")
		}
	}
	if b.mongoClient != nil {
		if err := database.DisconnectMongo(b.mongoClient); err != nil {
			log.Warn().Err(err).Msg("disconnect mongo")
		}
	}
}
