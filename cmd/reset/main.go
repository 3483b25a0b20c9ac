// Command reset drops the bulletin collections, recreates them with their
// validators and indexes, and seeds the demo accounts and bulletins.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	flag "github.com/spf13/pflag"

	"github.com/seniorlearn/bulletin-api/internal/core/service"
	"github.com/seniorlearn/bulletin-api/internal/infrastructure/config"
	"github.com/seniorlearn/bulletin-api/internal/infrastructure/db/mongo"
	"github.com/seniorlearn/bulletin-api/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "reset: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	mcfg, err := config.LoadMongo(ctx)
	if err != nil {
		return err
	}

	var (
		uri      string
		database string
		yes      bool
		noSeed   bool
		password string
		verbose  bool
	)
	flag.StringVar(&uri, "mongo-uri", mcfg.URI, "MongoDB connection string (env MONGO_URI)")
	flag.StringVar(&database, "db", mcfg.Database, "database to reset (env MONGO_DB)")
	flag.BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	flag.BoolVar(&noSeed, "no-seed", false, "recreate collections without demo data")
	flag.StringVar(&password, "password", "password", "password shared by the seeded accounts")
	flag.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	flag.Parse()

	level := "info"
	if verbose {
		level = "debug"
	}
	log := logger.New(logger.Options{Level: level, Pretty: true, Output: os.Stderr})

	if !yes && !confirm(database) {
		log.Info().Msg("aborted")
		return nil
	}

	store, err := mongo.Connect(ctx, mongo.Config{URI: uri, Database: database, Timeout: mcfg.Timeout})
	if err != nil {
		return err
	}
	defer func() { _ = store.Close(context.Background()) }()

	return reset(ctx, store, !noSeed, password, log)
}

func reset(ctx context.Context, store *mongo.Store, seed bool, password string, log zerolog.Logger) error {
	dropped, err := mongo.DropAll(ctx, store.DB)
	if err != nil {
		return err
	}
	log.Info().Strs("collections", dropped).Msg("dropped collections")

	if err := mongo.EnsureSchema(ctx, store.DB); err != nil {
		return err
	}
	log.Info().Msg("created collections with validators and indexes")

	if !seed {
		return nil
	}

	hash, err := service.HashPassword(password)
	if err != nil {
		return err
	}
	res, err := mongo.Seed(ctx, store.DB, hash)
	if err != nil {
		return err
	}
	for email, id := range res.UserIDs {
		log.Info().Str("email", email).Str("id", id).Msg("seeded user")
	}
	log.Info().Int("count", len(res.BulletinIDs)).Msg("seeded bulletins")
	return nil
}

func confirm(database string) bool {
	fmt.Fprintf(os.Stderr, "This drops every collection in %q. Continue? [y/N] ", database)
	answer, _ := bufio.NewReader(os.Stdin).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}
