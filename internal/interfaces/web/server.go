// Package web exposes the availability, search and reservation operations
// over HTTP.
package web

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/vicwinsj/holidaze/internal/application/usecases"
	"github.com/vicwinsj/holidaze/internal/domain/venue"
	"github.com/vicwinsj/holidaze/internal/obs"
)

type Server struct {
	addr    string
	log     *slog.Logger
	metrics *obs.Metrics

	catalog venue.Catalog
	search  *usecases.SearchVenues
	reserve *usecases.Reserve
	avail   usecases.GetAvailability
}

func New(addr string, log *slog.Logger, metrics *obs.Metrics, catalog venue.Catalog,
	search *usecases.SearchVenues, reserve *usecases.Reserve, avail usecases.GetAvailability) *Server {
	if log == nil {
		log = slog.Default()
	}
	if metrics == nil {
		metrics = obs.NewMetrics(prometheus.NewRegistry())
	}
	return &Server{
		addr:    addr,
		log:     log,
		metrics: metrics,
		catalog: catalog,
		search:  search,
		reserve: reserve,
		avail:   avail,
	}
}

func (s *Server) Router() *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(loggingMiddleware(s.log))
	r.Use(metricsMiddleware(s.metrics))

	r.Get("/venues", s.handleVenues)
	r.Get("/venues/{id}", s.handleVenue)
	r.Get("/venues/{id}/availability", s.handleAvailability)
	r.Get("/search", s.handleSearch)
	r.Post("/reservations", s.handleReservation)
	r.Get("/healthz", s.handleHealthz)
	r.Get("/metrics", s.metrics.Handler().ServeHTTP)

	return r
}

// ListenAndServe runs the server until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", "addr", s.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return srv.Shutdown(shutCtx)
	}
}
