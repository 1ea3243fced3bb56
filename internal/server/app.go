// Package server initializes and runs the auth server. It wires the
// database, repositories, user cache, token issuer, background dispatcher,
// notification sender, and audit publisher, and handles graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/dmitrijs2005/blogauth/internal/logging"
	"github.com/dmitrijs2005/blogauth/internal/server/audit"
	"github.com/dmitrijs2005/blogauth/internal/server/auth"
	"github.com/dmitrijs2005/blogauth/internal/server/cache"
	"github.com/dmitrijs2005/blogauth/internal/server/config"
	"github.com/dmitrijs2005/blogauth/internal/server/email"
	"github.com/dmitrijs2005/blogauth/internal/server/httpapi"
	"github.com/dmitrijs2005/blogauth/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/blogauth/internal/server/services"
	"github.com/dmitrijs2005/blogauth/internal/server/tasks"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	config     *config.Config
	logger     logging.Logger
	db         *sql.DB
	dispatcher *tasks.Dispatcher
	audit      audit.Publisher
	echo       *echo.Echo
}

func NewApp(cfg *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(context.Background(), db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	issuer, err := auth.NewTokenIssuer(cfg.SecretKey, cfg.JWTIssuer, cfg.JWTAudience, cfg.AccessTokenValidityDuration)
	if err != nil {
		return nil, fmt.Errorf("token issuer init error: %w", err)
	}

	cachedUsers := cache.NewCachedUsers(rm.Users(db), cache.NewUserCache(cfg.UserCacheTTL))
	dispatcher := tasks.NewDispatcher(logger, cfg.DispatcherWorkers, cfg.DispatcherQueueSize, tasks.DefaultTaskTimeout)

	var sender email.Sender
	if cfg.ResendAPIKey != "" {
		sender, err = email.NewResendSender(cfg.ResendAPIKey, cfg.EmailFrom)
		if err != nil {
			return nil, fmt.Errorf("email sender init error: %w", err)
		}
	} else {
		sender = email.NewNoopSender(logger)
	}

	var publisher audit.Publisher
	if cfg.NATSAddr != "" {
		publisher, err = audit.NewNatsPublisher(cfg.NATSAddr, cfg.AuditSubject)
		if err != nil {
			return nil, fmt.Errorf("audit publisher init error: %w", err)
		}
	} else {
		publisher = audit.NoopPublisher{}
	}

	svc := services.NewAuthService(db, rm, cachedUsers, issuer, dispatcher, sender, publisher, logger, cfg)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	httpapi.NewHandler(svc, issuer, logger).Mount(e)

	return &App{
		config:     cfg,
		logger:     logger,
		db:         db,
		dispatcher: dispatcher,
		audit:      publisher,
		echo:       e,
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

// Run starts the HTTP server and blocks until the context is cancelled or an
// OS signal arrives. Shutdown order matters: stop accepting requests first,
// then drain the background queue, then close the audit link and database.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "addr", app.config.EndpointAddrHTTP)

	app.initSignalHandler(cancelFunc)

	go func() {
		if err := app.echo.Start(app.config.EndpointAddrHTTP); err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.logger.Error(ctx, "http server error", "error", err.Error())
			cancelFunc()
		}
	}()

	<-ctx.Done()

	app.logger.Info(context.Background(), "Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.echo.Shutdown(shutdownCtx); err != nil {
		app.logger.Error(shutdownCtx, "http shutdown error", "error", err.Error())
	}

	app.dispatcher.Close()
	app.audit.Close()

	if err := app.db.Close(); err != nil {
		app.logger.Error(context.Background(), "db close error", "error", err.Error())
	}
}
