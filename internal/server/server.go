// Package server exposes the planner over a JSON HTTP API for a browser UI
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"

	"github.com/julianstephens/weekendly/internal/aggregator"
	"github.com/julianstephens/weekendly/internal/catalog"
	"github.com/julianstephens/weekendly/internal/constants"
	"github.com/julianstephens/weekendly/internal/holidays"
	"github.com/julianstephens/weekendly/internal/scheduler"
)

// Sweeper evicts expired cache entries and reports how many it dropped
type Sweeper interface {
	Name() string
	Sweep() int
}

type Deps struct {
	Engine   *scheduler.Engine
	Manager  *aggregator.Manager
	Catalog  *catalog.Catalog
	Holidays *holidays.Service // optional
	Sweepers []Sweeper
	// Now overrides the clock used by /api/weekend
	Now func() time.Time
}

type Server struct {
	deps   Deps
	router *mux.Router
}

func New(deps Deps) *Server {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	s := &Server{deps: deps}
	s.router = s.buildRouter()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) buildRouter() *mux.Router {
	root := mux.NewRouter()
	root.Use(recoverer, requestLogger)

	root.HandleFunc("/health", s.health).Methods(http.MethodGet)
	root.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	api := root.PathPrefix("/api").Subrouter()

	// Activities
	api.HandleFunc("/activities", s.listActivities).Methods(http.MethodGet)
	api.HandleFunc("/recommendations", s.recommendations).Methods(http.MethodGet)
	api.HandleFunc("/weekend", s.weekend).Methods(http.MethodGet)

	// Schedule
	api.HandleFunc("/schedule", s.listSchedule).Methods(http.MethodGet)
	api.HandleFunc("/schedule", s.addActivity).Methods(http.MethodPost)
	api.HandleFunc("/schedule", s.clearSchedule).Methods(http.MethodDelete)
	api.HandleFunc("/schedule/{id}", s.moveActivity).Methods(http.MethodPatch)
	api.HandleFunc("/schedule/{id}", s.removeActivity).Methods(http.MethodDelete)
	api.HandleFunc("/schedule/{id}/complete", s.completeActivity).Methods(http.MethodPost)
	api.HandleFunc("/schedule/{day}/reorder", s.reorder).Methods(http.MethodPost)

	return root
}

// Run serves on addr until ctx is canceled, sweeping caches on sweepSpec
func (s *Server) Run(ctx context.Context, addr, sweepSpec string) error {
	if sweepSpec == "" {
		sweepSpec = constants.CacheSweepSpec
	}
	c := cron.New()
	if _, err := c.AddFunc(sweepSpec, s.sweep); err != nil {
		return err
	}
	c.Start()
	defer c.Stop()

	server := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		serverLog().Info("HTTP server starting", "addr", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		serverLog().Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			serverLog().Error("Server forced to shutdown", "error", err)
			return err
		}
		serverLog().Info("Server exited")
		return nil
	case err := <-errCh:
		serverLog().Error("HTTP server failed", "error", err)
		return err
	}
}

func (s *Server) sweep() {
	for _, sw := range s.deps.Sweepers {
		if n := sw.Sweep(); n > 0 {
			serverLog().Debug("Swept cache", "client", sw.Name(), "evicted", n)
		}
	}
}
