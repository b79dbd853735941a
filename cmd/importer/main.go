package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"bookstore/internal/config"
	"bookstore/internal/db"
	"bookstore/internal/importer"
	bookrepo "bookstore/internal/repository/book"
	refrepo "bookstore/internal/repository/reference"
)

func main() {
	var (
		filePath   string
		configPath string
	)
	flag.StringVar(&filePath, "file", "", "Path to book catalog CSV export")
	flag.StringVar(&configPath, "config", "", "path to config file")
	flag.Parse()

	if filePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	logger := zerolog.New(os.Stderr).With().Timestamp().Str("cmd", "importer").Logger()

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("load config")
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal().Err(err).Msg("connect db")
	}
	defer pool.Close()

	f, err := os.Open(filePath)
	if err != nil {
		logger.Fatal().Err(err).Msg("open file")
	}
	defer f.Close()

	imp := importer.NewCSVImporter(f, bookrepo.NewPostgres(pool, logger), refrepo.NewPostgres(pool, logger))

	start := time.Now()
	count, err := imp.Run(ctx)
	if err != nil {
		logger.Fatal().Err(err).Msg("import failed")
	}

	fmt.Printf("Imported %d books in %s\n", count, time.Since(start).Truncate(time.Millisecond))
}
