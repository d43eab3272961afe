package server

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/felayo/trivia-api/internal/config"
	"github.com/felayo/trivia-api/internal/question"
	httperrors "github.com/felayo/trivia-api/pkg/http/errors"
)

// PingFunc checks that a backing dependency is reachable.
type PingFunc func(ctx context.Context) error

// NewHTTPServer wires the trivia routes plus health and metrics endpoints.
// trivia can be nil, in which case only the operational routes are served.
func NewHTTPServer(cfg *config.App, logger zerolog.Logger, reg *prometheus.Registry, ping PingFunc, trivia *question.HTTPHandlers) *http.Server {
	return &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: NewHandler(cfg, logger, reg, ping, trivia),
	}
}

// NewHandler builds the routed handler with its middleware chain.
func NewHandler(cfg *config.App, logger zerolog.Logger, reg *prometheus.Registry, ping PingFunc, trivia *question.HTTPHandlers) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	mux.HandleFunc("/v1/ping", func(w http.ResponseWriter, r *http.Request) {
		if ping != nil {
			if err := ping(r.Context()); err != nil {
				logger.Error().Err(err).Msg("dependency ping failed")
				httperrors.RespondError(w, http.StatusBadGateway)
				return
			}
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"pong":true}`))
	})

	if trivia != nil {
		mux.HandleFunc("/categories", trivia.Categories)
		mux.HandleFunc("/categories/{id}/questions", trivia.CategoryQuestions)
		mux.HandleFunc("/questions", trivia.Questions)
		mux.HandleFunc("/questions/{id}", trivia.DeleteQuestion)
		mux.HandleFunc("/search", trivia.Search)
		mux.HandleFunc("/quizzes", trivia.Quizzes)
	}

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		httperrors.RespondNotFound(w)
	})

	metrics := newHTTPMetrics(reg)

	var handler http.Handler = mux
	handler = metrics.instrument(handler)
	handler = recoverer(handler)
	handler = requestLogger(logger, handler)
	handler = cors(cfg.CORS, handler)
	return handler
}
