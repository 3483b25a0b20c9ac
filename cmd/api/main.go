package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/seniorlearn/bulletin-api/internal/app"
	"github.com/seniorlearn/bulletin-api/internal/infrastructure/config"
	"github.com/seniorlearn/bulletin-api/pkg/logger"
)

var version = "dev"

//	@title			SeniorLearn Bulletin API
//	@version		1.0
//	@description	Bulletin board for SeniorLearn members: accounts, official and member bulletins.
//	@BasePath		/

//	@securityDefinitions.apikey	TokenAuth
//	@in							header
//	@name						Authorization
//	@description				Raw session token; a "Bearer " prefix is accepted.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		bootLog := logger.New(logger.Options{})
		bootLog.Fatal().Err(err).Msg("load configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "bulletin-api",
		Version: version,
	})

	application, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialise application")
	}

	errCh := make(chan error, 1)
	go func() { errCh <- application.Run() }()

	select {
	case err := <-errCh:
		if err != nil {
			log.Error().Err(err).Msg("server stopped")
		}
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := application.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown")
		os.Exit(1)
	}
	log.Info().Msg("bye")
}
