// Package server initializes and runs the maintenance tracker server.
// It opens the database, applies migrations, wires the services, and
// starts the HTTP server with graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	_ "github.com/jackc/pgx/v5/stdlib"

	"maintrack/internal/logging"
	"maintrack/internal/server/auth"
	"maintrack/internal/server/config"
	"maintrack/internal/server/httpapi"
	"maintrack/internal/server/repositories/repomanager"
	"maintrack/internal/server/services"
)

type App struct {
	config         *config.Config
	logger         logging.Logger
	db             *sql.DB
	catalogService *services.CatalogService
	updateService  *services.UpdateService
	credentials    *auth.Credentials
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("db migration error: %w", err)
	}

	creds, err := auth.LoadCredentials(cfg.CredentialsFile)
	if err != nil {
		logger.Warn(ctx, "credentials file not loaded, login gate disabled", "path", cfg.CredentialsFile, "error", err.Error())
		creds = nil
	}

	cs := services.NewCatalogService(db, rm, logger)
	us := services.NewUpdateService(db, rm, logger)

	return &App{
		config:         cfg,
		logger:         logger,
		db:             db,
		catalogService: cs,
		updateService:  us,
		credentials:    creds,
	}, nil
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

	s := httpapi.NewServer(
		app.config.EndpointAddr,
		app.logger,
		app.catalogService,
		app.updateService,
		app.credentials,
		app.config.SecretKey,
		app.config.AccessTokenValidityDuration,
	)

	if err := s.Run(ctx); err != nil {
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

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, err.Error())
	}
}
