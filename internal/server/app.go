// Package server initializes and runs the matchroom application server. It
// wires the credential store, the user service, the room registry, and the
// HTTP/WebSocket endpoints, and handles graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/matchroom/internal/logging"
	"github.com/dmitrijs2005/matchroom/internal/server/config"
	"github.com/dmitrijs2005/matchroom/internal/server/httpapi"
	"github.com/dmitrijs2005/matchroom/internal/server/rooms"
	"github.com/dmitrijs2005/matchroom/internal/server/shared/db"
	"github.com/dmitrijs2005/matchroom/internal/server/users"
	"github.com/dmitrijs2005/matchroom/internal/server/ws"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	config      *config.Config
	logger      logging.Logger
	manager     db.RepositoryManager
	userService *users.Service
	registry    *rooms.Registry
	mux         *http.ServeMux
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	var manager db.RepositoryManager
	if cfg.DatabaseDSN == "" {
		logger.Warn(ctx, "no database DSN configured, using in-memory store")
		manager = db.NewInMemoryRepositoryManager()
	} else {
		m, err := db.NewPostgresRepositoryManager(ctx, cfg.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
		manager = m
	}

	userService := users.NewService(manager.Users(), cfg)
	registry := rooms.NewRegistry()

	mux := http.NewServeMux()
	httpapi.NewHandler(userService, logger).Register(mux)
	ws.NewGateway(userService, registry, logger).Register(mux)

	return &App{
		config:      cfg,
		logger:      logger,
		manager:     manager,
		userService: userService,
		registry:    registry,
		mux:         mux,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	srv := &http.Server{Addr: app.config.EndpointAddr, Handler: app.mux}

	go func() {
		<-ctx.Done()
		app.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	app.logger.Info(ctx, "Starting HTTP server", "address", app.config.EndpointAddr)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.manager.Close(); err != nil {
		app.logger.Error(ctx, "error closing storage", "error", err)
	}
}
