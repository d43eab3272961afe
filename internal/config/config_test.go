package config

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSQLiteDefaults(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", DriverSQLite)

	cfg, err := Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "trivia-api", cfg.Name)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTPAddr)
	assert.Equal(t, 20*time.Second, cfg.GracefulShutdownTimeout)
	assert.Equal(t, "data/trivia.db", cfg.Storage.SQLitePath)
	assert.Equal(t, 10, cfg.Pagination.QuestionsPerPage)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, []string{"GET", "PUT", "POST", "DELETE", "OPTIONS"}, cfg.CORS.AllowedMethods)
	assert.Equal(t, []string{"Content-Type", "Authorization"}, cfg.CORS.AllowedHeaders)
}

func TestLoadPostgresRequiresConnectionInfo(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", DriverPostgres)
	t.Setenv("PG_HOST", "")

	_, err := Load(context.Background())
	assert.Error(t, err)
}

func TestLoadPostgres(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", DriverPostgres)
	t.Setenv("PG_HOST", "db")
	t.Setenv("PG_USER", "trivia")
	t.Setenv("PG_PASSWORD", "secret")
	t.Setenv("PG_DATABASE", "trivia")
	t.Setenv("QUESTIONS_PER_PAGE", "5")

	cfg, err := Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Pagination.QuestionsPerPage)
	assert.Equal(t,
		"host=db port=5432 user=trivia password=secret dbname=trivia sslmode=disable pool_max_conns=10",
		cfg.Postgres.ConnString())
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "mysql")

	_, err := Load(context.Background())
	assert.ErrorContains(t, err, "unknown STORAGE_DRIVER")
}

func TestLoadRejectsNonPositivePageSize(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", DriverSQLite)
	t.Setenv("QUESTIONS_PER_PAGE", "0")

	_, err := Load(context.Background())
	assert.Error(t, err)
}
