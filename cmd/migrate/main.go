package main

import (
	"context"
	"flag"
	"os"

	"github.com/rs/zerolog"

	"bookstore/internal/config"
	"bookstore/internal/db"
	"bookstore/internal/migrate"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	logger := zerolog.New(os.Stderr).With().Timestamp().Str("cmd", "migrate").Logger()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("load config")
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal().Err(err).Msg("connect db")
	}
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		logger.Fatal().Err(err).Msg("apply migrations")
	}

	logger.Info().Msg("migrations applied")
}
