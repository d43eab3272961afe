package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v10"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"github.com/felayo/trivia-api/internal/config"
	"github.com/felayo/trivia-api/internal/db/migrations"
)

func main() {
	var (
		command = flag.String("command", "up", "Migration command: up, down, or status")
		driver  = flag.String("driver", "", "Storage driver override: postgres or sqlite")
	)
	flag.Parse()

	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()

	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load("configs/.env")
	}

	cfg, err := loadConfig(*driver)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	var (
		sqlDriver string
		dialect   string
		dsn       string
	)
	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		sqlDriver, dialect = "pgx", "postgres"
		dsn = cfg.Postgres.ConnString()
	case config.DriverSQLite:
		if err := os.MkdirAll(filepath.Dir(cfg.Storage.SQLitePath), 0o755); err != nil {
			log.Fatal().Err(err).Str("path", cfg.Storage.SQLitePath).Msg("failed to create sqlite directory")
		}
		sqlDriver, dialect = "sqlite", "sqlite3"
		dsn = cfg.Storage.SQLitePath + "?_pragma=foreign_keys(1)"
	}

	db, err := sql.Open(sqlDriver, dsn)
	if err != nil {
		log.Fatal().Err(err).Str("driver", sqlDriver).Msg("failed to open database connection")
	}
	defer db.Close()

	if err := db.PingContext(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("failed to ping database")
	}

	log.Info().
		Str("driver", cfg.Storage.Driver).
		Str("command", *command).
		Msg("connected to database")

	goose.SetBaseFS(migrations.FS)
	goose.SetTableName("goose_db_version")
	if err := goose.SetDialect(dialect); err != nil {
		log.Fatal().Err(err).Str("dialect", dialect).Msg("failed to set goose dialect")
	}

	dir := cfg.Storage.Driver
	switch *command {
	case "up":
		if err := goose.Up(db, dir); err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations up")
		}
		log.Info().Msg("migrations applied successfully")

	case "down":
		if err := goose.Down(db, dir); err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations down")
		}
		log.Info().Msg("migrations rolled back successfully")

	case "status":
		if err := goose.Status(db, dir); err != nil {
			log.Fatal().Err(err).Msg("failed to get migration status")
		}

	default:
		log.Fatal().Str("command", *command).Msg("unknown command. Use: up, down, or status")
	}
}

// loadConfig parses the environment, applies the -driver override and
// validates the result the same way the API does.
func loadConfig(driver string) (*config.App, error) {
	cfg := &config.App{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if driver != "" {
		cfg.Storage.Driver = driver
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
