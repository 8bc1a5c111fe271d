// Package httpapi is the JSON-over-HTTP boundary of the maintenance
// tracker. It parses requests, calls into the services and maps domain
// errors to status codes; no business rules live here.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"maintrack/internal/logging"
	"maintrack/internal/server/auth"
	"maintrack/internal/server/models"
	"maintrack/internal/server/services"
)

// CatalogProvider is the read and catalog-maintenance surface the HTTP
// layer needs from the catalog service.
type CatalogProvider interface {
	Catalog(ctx context.Context, includeRemoved bool) ([]models.Category, []models.ItemView, error)
	History(ctx context.Context, itemID int64) ([]models.Entry, error)
	CreateCategory(ctx context.Context, title string) (int64, error)
	RemoveCategory(ctx context.Context, id int64) error
	CreateItem(ctx context.Context, title string, categoryID int64, details *models.EntryDetails) (int64, error)
}

// UpdatePipeline applies batched state changes and tombstones.
type UpdatePipeline interface {
	ApplyBatch(ctx context.Context, batch map[int64]models.UpdateRequest) map[int64]services.Outcome
	Tombstone(ctx context.Context, itemID int64) (int64, error)
}

type Server struct {
	address       string
	logger        logging.Logger
	catalog       CatalogProvider
	updates       UpdatePipeline
	creds         *auth.Credentials
	jwtSecret     []byte
	tokenValidity time.Duration
}

// NewServer wires the HTTP boundary. creds may be nil, which disables
// the login gate on mutating routes.
func NewServer(address string, logger logging.Logger, catalog CatalogProvider, updates UpdatePipeline, creds *auth.Credentials, secretKey string, tokenValidity time.Duration) *Server {
	return &Server{
		address:       address,
		logger:        logger.With("module", "http_server"),
		catalog:       catalog,
		updates:       updates,
		creds:         creds,
		jwtSecret:     []byte(secretKey),
		tokenValidity: tokenValidity,
	}
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/ping", s.ping)
	mux.HandleFunc("POST /api/login", s.login)
	mux.HandleFunc("GET /api/catalog", s.getCatalog)
	mux.HandleFunc("GET /api/items/{id}/entries", s.getHistory)

	mux.Handle("POST /api/items", s.requireToken(http.HandlerFunc(s.postItems)))
	mux.Handle("POST /api/items/new", s.requireToken(http.HandlerFunc(s.postNewItem)))
	mux.Handle("DELETE /api/items/{id}", s.requireToken(http.HandlerFunc(s.deleteItem)))
	mux.Handle("POST /api/categories", s.requireToken(http.HandlerFunc(s.postCategory)))
	mux.Handle("DELETE /api/categories/{id}", s.requireToken(http.HandlerFunc(s.deleteCategory)))

	mux.Handle("GET /metrics", promhttp.Handler())

	return s.withRequestID(s.withMetrics(mux))
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.address,
		Handler: s.routes(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}
