// Command migrate chạy goose migrations đã embed trong binary.
//
//	migrate --command up
//	migrate --command down
//	migrate --command up-to 1
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	flag "github.com/spf13/pflag"

	"library-catalog/internal/config"
	"library-catalog/internal/infrastructure/database"
	"library-catalog/pkg/logger"
)

func main() {
	command := flag.StringP("command", "c", "up", "goose command: up, up-to, down, down-to, redo, reset, status, version")
	level := flag.String("log-level", "info", "log level")
	flag.Parse()

	_ = godotenv.Load()
	logger.Init(os.Getenv("APP_ENV"), *level)

	dbCfg, err := config.LoadDatabaseConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load database config")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := database.Migrate(ctx, dbCfg.DSN(), *command, flag.Args()...); err != nil {
		log.Fatal().Err(err).Msg("Migration failed")
	}

	log.Info().Str("command", *command).Msg("Migration finished")
}
