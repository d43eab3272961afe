package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"

	"github.com/felayo/trivia-api/internal/config"
	"github.com/felayo/trivia-api/internal/db/repository"
	sqlcgen "github.com/felayo/trivia-api/internal/db/sqlc"
	"github.com/felayo/trivia-api/internal/db/sqlite"
	"github.com/felayo/trivia-api/internal/logging"
	"github.com/felayo/trivia-api/internal/question"
	"github.com/felayo/trivia-api/internal/server"
)

// Application aggregates shared infrastructure (store, metrics, HTTP server).
type Application struct {
	cfg    *config.App
	logger zerolog.Logger

	closeStore func()
	http       *http.Server
}

// storage bundles the repositories built on whichever driver is configured.
type storage struct {
	questions  *repository.QuestionRepository
	categories *repository.CategoryRepository
	ping       server.PingFunc
	close      func()
}

// New bootstraps logger, store, services and HTTP server.
func New(ctx context.Context, cfg *config.App) (*Application, error) {
	logger := logging.New(cfg.Name, cfg.Env, cfg.LogLevel)
	logger.Info().Str("driver", cfg.Storage.Driver).Msg("starting application bootstrap")

	store, err := openStorage(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	questionSvc := question.NewService(store.questions, store.categories, question.ServiceOptions{
		QuestionsPerPage: cfg.Pagination.QuestionsPerPage,
		Metrics:          question.NewMetrics(reg),
	})
	triviaHandlers := question.NewHTTPHandlers(questionSvc, logger)

	apiServer := server.NewHTTPServer(cfg, logger, reg, store.ping, triviaHandlers)

	return &Application{
		cfg:        cfg,
		logger:     logger,
		closeStore: store.close,
		http:       apiServer,
	}, nil
}

func openStorage(ctx context.Context, cfg *config.App, logger zerolog.Logger) (*storage, error) {
	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		pool, err := pgxpool.New(ctx, cfg.Postgres.ConnString())
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("ping postgres: %w", err)
		}
		logger.Info().Str("host", cfg.Postgres.Host).Str("database", cfg.Postgres.Database).Msg("connected to postgres")

		queries := sqlcgen.New(pool)
		return &storage{
			questions:  repository.NewQuestionRepository(queries),
			categories: repository.NewCategoryRepository(queries),
			ping:       pool.Ping,
			close:      pool.Close,
		}, nil

	case config.DriverSQLite:
		store, err := sqlite.Open(ctx, cfg.Storage.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		logger.Info().Str("path", cfg.Storage.SQLitePath).Msg("opened sqlite store")

		return &storage{
			questions:  repository.NewQuestionRepository(store),
			categories: repository.NewCategoryRepository(store),
			ping:       store.Ping,
			close: func() {
				if err := store.Close(); err != nil {
					logger.Error().Err(err).Msg("sqlite close error")
				}
			},
		}, nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

// Run starts the HTTP server and waits for termination signals.
func (a *Application) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info().Str("addr", a.cfg.HTTPAddr).Msg("http server listening")
		if err := a.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	var runErr error
	select {
	case sig := <-sigCh:
		a.logger.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case err := <-errCh:
		runErr = fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
		a.logger.Warn().Msg("context canceled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.GracefulShutdownTimeout)
	defer cancel()

	if err := a.http.Shutdown(shutdownCtx); err != nil {
		a.logger.Error().Err(err).Msg("http shutdown error")
	}

	a.closeStore()

	a.logger.Info().Msg("shutdown complete")
	return runErr
}
