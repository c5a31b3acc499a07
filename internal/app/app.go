// Package app wires configuration, storage, services and the HTTP router
// into a runnable server.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"gorm.io/gorm"

	"brightevents-backend/internal/auth"
	"brightevents-backend/internal/config"
	"brightevents-backend/internal/database"
	"brightevents-backend/internal/event"
	"brightevents-backend/internal/handler"
	"brightevents-backend/internal/metrics"
	"brightevents-backend/internal/repository"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 15 * time.Second
)

// App holds the long-lived resources of one server process.
type App struct {
	cfg    *config.Config
	logger *slog.Logger
	db     *gorm.DB
	router *gin.Engine
}

// New connects to the database, runs migrations and builds the router.
func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := database.Open(cfg.DB)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		_ = database.Close(db)
		return nil, err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	authSvc := auth.NewService(repository.NewUserRepository(db), repository.NewRevokedTokenRepository(db), cfg, logger)
	eventSvc := event.NewService(repository.NewEventRepository(db), repository.NewRSVPRepository(db), logger)

	router := handler.NewRouter(handler.Deps{
		Config:   cfg,
		Auth:     authSvc,
		Events:   eventSvc,
		Logger:   logger,
		Metrics:  metrics.NewCollector(reg),
		Gatherer: reg,
	})

	return &App{cfg: cfg, logger: logger, db: db, router: router}, nil
}

// Handler returns the HTTP handler of the app.
func (a *App) Handler() http.Handler {
	return a.router
}

// Run serves on the configured address until ctx is cancelled, then drains
// in-flight requests.
func (a *App) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", a.cfg.HTTPAddr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", a.cfg.HTTPAddr, err)
	}
	return a.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (a *App) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           a.router,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		a.logger.Info("server listening", slog.String("addr", ln.Addr().String()))
		serveErr <- srv.Serve(ln)
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		err := srv.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}

// Close releases the database pool.
func (a *App) Close() error {
	return database.Close(a.db)
}
