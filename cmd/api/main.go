// Package main is the entrypoint for the credential service API.
//
// @title                       Credential Service API
// @version                     1.0
// @description                 Account registration, login and bearer-token protected profile access.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the token.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/99minutos/credential-service/internal/api"
	"github.com/99minutos/credential-service/internal/api/handler"
	"github.com/99minutos/credential-service/internal/api/metrics"
	"github.com/99minutos/credential-service/internal/core/service"
	"github.com/99minutos/credential-service/internal/infrastructure/db/mongo"
	"github.com/99minutos/credential-service/internal/infrastructure/db/redis"
	"github.com/99minutos/credential-service/internal/infrastructure/security"
	"github.com/99minutos/credential-service/internal/pkg/config"
	"github.com/99minutos/credential-service/pkg/logger"
)

const serviceName = "credential-service"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx)
	stop()

	if err != nil {
		// Returns the configured logger, or a default one if startup failed
		// before it was built.
		log := logger.Init(logger.Options{Service: serviceName})
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: serviceName,
	})

	// The signing secret is checked before touching any backing service.
	tokens, err := security.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.JWTTTL)
	if err != nil {
		return err
	}
	hasher := security.NewBcryptHasher(cfg.Auth.BcryptCost)

	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect failed")
		}
	}()
	log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongodb")

	accountRepo := mongo.NewAccountRepository(db)
	if err := accountRepo.EnsureIndexes(ctx); err != nil {
		return err
	}

	rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		return err
	}
	defer func() { _ = rdb.Close() }()
	log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to redis")

	recorder := metrics.NewPrometheus()
	accounts, err := service.NewAccountService(
		accountRepo,
		hasher,
		tokens,
		redis.NewProfileCache(rdb, cfg.Redis.ProfileTTL),
		recorder,
		log,
	)
	if err != nil {
		return err
	}

	e := api.NewRouter(api.Dependencies{
		Accounts: accounts,
		Tokens:   tokens,
		Metrics:  recorder,
		Checks: []handler.DependencyCheck{
			{Name: "mongodb", Ping: mongo.Ping(db)},
			{Name: "redis", Ping: redis.Ping(rdb)},
		},
		Log: log,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Int("bcrypt_cost", hasher.Cost()).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
