package server

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/config"
	"github.com/gokatarajesh/trivia-api/internal/trivia"
	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// NewHTTPServer wires base routes (health, readiness, metrics) and the trivia
// API behind CORS, access logging and instrumentation. store may be nil when
// there is nothing external to ping.
func NewHTTPServer(cfg *config.App, logger zerolog.Logger, store Pinger, triviaHandler *trivia.HTTPHandler) *http.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	mux.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		if store != nil {
			if err := store.Ping(r.Context()); err != nil {
				logger.Error().Err(err).Msg("store ping failed")
				httperrors.RespondServiceUnavailable(w, httperrors.ErrCodeServiceUnavailable, "store unavailable")
				return
			}
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ready"}`))
	})

	mux.Handle("GET /metrics", promhttp.Handler())

	if triviaHandler != nil {
		triviaHandler.Register(mux)
	}

	handler := withCORS(cfg.CORS, withRequestLogging(logger, withMetrics(mux)))

	return &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}
