// Package server exposes the projection engine over a JSON HTTP API.
package server

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/openmatchlabs/proforma/internal/engine"
)

// Server owns the HTTP surface and the projection cache behind it. One
// instance serves all requests; repeated projections of the same
// assumptions hit the cache.
type Server struct {
	cache      *engine.Cache
	logger     *zap.Logger
	version    string
	sweepSteps int

	started  time.Time
	requests atomic.Int64
}

// New builds a server with a fresh cache. sweepSteps is the sample count
// used when a sweep request does not specify one.
func New(logger *zap.Logger, version string, sweepSteps int) *Server {
	if sweepSteps < 1 {
		sweepSteps = 9
	}
	return &Server{
		cache:      engine.NewCache(),
		logger:     logger,
		version:    version,
		sweepSteps: sweepSteps,
		started:    time.Now(),
	}
}

// Router wires the API routes.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.logRequests)
	r.HandleFunc("/healthz", s.handleHealth).Methods("GET")
	r.HandleFunc("/v1/status", s.handleStatus).Methods("GET")
	r.HandleFunc("/v1/project", s.handleProject).Methods("POST")
	r.HandleFunc("/v1/sweep", s.handleSweep).Methods("POST")
	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server starting", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutdown requested")
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.requests.Add(1)
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("duration", time.Since(start)),
		)
	})
}
