// Package app wires configuration, storage and transport into a runnable
// service and owns its lifecycle.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/seniorlearn/bulletin-api/internal/api"
	"github.com/seniorlearn/bulletin-api/internal/api/handler"
	"github.com/seniorlearn/bulletin-api/internal/core/service"
	"github.com/seniorlearn/bulletin-api/internal/infrastructure/config"
	"github.com/seniorlearn/bulletin-api/internal/infrastructure/db/mongo"
	"github.com/seniorlearn/bulletin-api/internal/infrastructure/db/redis"
	"github.com/seniorlearn/bulletin-api/internal/infrastructure/queue"
)

// App represents the application instance.
type App struct {
	cfg    *config.Config
	log    zerolog.Logger
	store  *mongo.Store
	redis  *goredis.Client
	server *http.Server

	dispatcher  *queue.Dispatcher
	stopWorkers context.CancelFunc
}

// New connects to every dependency, prepares the schema and builds the HTTP
// server. Nothing is served until Run is called.
func New(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*App, error) {
	store, err := mongo.Connect(ctx, mongo.Config{
		URI:         cfg.Mongo.URI,
		Database:    cfg.Mongo.Database,
		Timeout:     cfg.Mongo.Timeout,
		MaxPoolSize: cfg.Mongo.MaxPoolSize,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}

	if err := mongo.EnsureSchema(ctx, store.DB); err != nil {
		_ = store.Close(context.Background())
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	rdb, err := redis.Connect(ctx, redis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		_ = store.Close(context.Background())
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	a := &App{cfg: cfg, log: log, store: store, redis: rdb}
	a.server = &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           a.setupRouter(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return a, nil
}

func (a *App) setupRouter() http.Handler {
	users := mongo.NewUserRepository(a.store.DB)
	bulletins := mongo.NewBulletinRepository(a.store.DB)
	activity := mongo.NewActivityRepository(a.store.DB)
	revocations := redis.NewRevocationStore(a.redis)

	workerCtx, cancel := context.WithCancel(context.Background())
	a.stopWorkers = cancel
	dispatcher := queue.NewDispatcher(
		a.cfg.Activity.Workers,
		service.NewActivityService(activity, a.log.With().Str("component", "activity").Logger()),
		a.log.With().Str("component", "dispatcher").Logger(),
	)
	dispatcher.Start(workerCtx)
	a.dispatcher = dispatcher

	identity := service.NewIdentityService(
		users,
		service.NewTokenIssuer(a.cfg.JWTSecret, a.cfg.TokenTTL),
		revocations,
		a.log.With().Str("component", "identity").Logger(),
	)
	bulletinService := service.NewBulletinService(
		bulletins, users, activity, dispatcher,
		a.log.With().Str("component", "bulletins").Logger(),
	)

	return api.NewRouter(api.Dependencies{
		Identity:  identity,
		Bulletins: bulletinService,
		Health: map[string]handler.Pinger{
			"mongodb": handler.PingFunc(func(ctx context.Context) error {
				return a.store.Client.Ping(ctx, readpref.Primary())
			}),
			"redis": revocations,
		},
		Log:           a.log,
		CORSOrigins:   a.cfg.HTTP.CORSOrigins,
		AuthRateLimit: a.cfg.HTTP.AuthRateLimit,
		AuthRateBurst: a.cfg.HTTP.AuthRateBurst,
	})
}

// Run serves HTTP until the server is shut down.
func (a *App) Run() error {
	a.log.Info().Str("addr", a.server.Addr).Str("env", a.cfg.Env).Msg("starting server")

	if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests, stops the activity workers and waits
// for them to return, then closes the store connections.
func (a *App) Shutdown(ctx context.Context) error {
	a.log.Info().Msg("shutting down")

	var errs []error
	if err := a.server.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("shutdown server: %w", err))
	}
	a.stopWorkers()
	a.dispatcher.Wait()
	if err := a.redis.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close redis: %w", err))
	}
	if err := a.store.Close(ctx); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
