// Package server initializes and runs the roster engine server.
// It selects the storage backend, wires the services and the audit sinks,
// handles graceful shutdown, and starts the HTTP API.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/mzaikin/rosterd/internal/logging"
	"github.com/mzaikin/rosterd/internal/server/audit"
	"github.com/mzaikin/rosterd/internal/server/config"
	"github.com/mzaikin/rosterd/internal/server/httpapi"
	"github.com/mzaikin/rosterd/internal/server/repositories/repomanager"
	"github.com/mzaikin/rosterd/internal/server/services"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	assignments *services.AssignmentService
	queries     *services.QueryService
}

func NewApp(c *config.Config) (*App, error) {
	logger := logging.NewDefault(os.Stdout)

	var (
		rm  repomanager.RepositoryManager
		err error
	)
	if c.DatabaseDSN == "" {
		rm = repomanager.NewInMemoryRepositoryManager()
	} else {
		rm, err = repomanager.NewPostgresRepositoryManager(c.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
	}

	sink, err := buildAuditSink(c, logger)
	if err != nil {
		return nil, fmt.Errorf("audit init error: %w", err)
	}

	as := services.NewAssignmentService(rm.Roster(), rm.Registry(), sink, logger)
	qs := services.NewQueryService(rm.Roster(), rm.Registry())

	return &App{config: c, logger: logger, assignments: as, queries: qs}, nil
}

func buildAuditSink(c *config.Config, logger logging.Logger) (audit.Sink, error) {
	sinks := audit.MultiSink{audit.NewLogSink(logger)}

	if c.AuditArchiveEnabled {
		archiver, err := audit.NewS3Archiver(context.Background(), c)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, archiver)
	}

	return sinks, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := httpapi.NewServer(app.config.EndpointAddr, app.logger, app.assignments, app.queries, app.config.SecretKey, app.config.ShutdownTimeout)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()
}
