// Package httpapi exposes the roster engine over REST/JSON, the surface
// the scheduling UI calls. Dates cross the wire as YYYY-MM-DD strings and
// are parsed here; nothing stringly-typed reaches the services.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/mzaikin/rosterd/internal/logging"
	"github.com/mzaikin/rosterd/internal/server/services"
)

type Server struct {
	address         string
	logger          logging.Logger
	assignments     *services.AssignmentService
	queries         *services.QueryService
	jwtSecret       []byte
	shutdownTimeout time.Duration
}

// NewServer builds the HTTP surface. An empty secretKey disables the
// bearer-token middleware: embedded and test deployments run open.
func NewServer(a string, l logging.Logger, as *services.AssignmentService, qs *services.QueryService, secretKey string, shutdownTimeout time.Duration) *Server {
	var secret []byte
	if secretKey != "" {
		secret = []byte(secretKey)
	}
	return &Server{
		address:         a,
		logger:          l.With("module", "http_server"),
		assignments:     as,
		queries:         qs,
		jwtSecret:       secret,
		shutdownTimeout: shutdownTimeout,
	}
}

// Handler returns the routed handler with middleware applied. Exposed
// separately from Run for httptest use.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /ping", s.handlePing)
	mux.HandleFunc("POST /rosters", s.handleAssign)
	mux.HandleFunc("DELETE /rosters/{id}", s.handleUnassign)
	mux.HandleFunc("GET /rosters", s.handleList)
	mux.HandleFunc("GET /rosters/unassigned", s.handleUnassigned)
	mux.HandleFunc("GET /rosters/grid", s.handleGrid)
	mux.HandleFunc("GET /rosters/stats", s.handleStats)
	mux.HandleFunc("GET /employees/{id}/schedule", s.handleEmployeeSchedule)

	return s.withLogging(s.withAuth(mux))
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "Starting HTTP server", "address", s.address)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	case err := <-errCh:
		return err
	}
}
