// Package services holds the business flow of the maintenance tracker:
// catalog reads over the projection engine and the batch update pipeline
// that appends entry history.
package services

import (
	"context"
	"database/sql"
	"errors"

	"maintrack/internal/common"
	"maintrack/internal/dbx"
	"maintrack/internal/logging"
	"maintrack/internal/server/models"
	"maintrack/internal/server/projection"
	"maintrack/internal/server/repositories/repomanager"
)

// CatalogService serves catalog reads and category/item lifecycle
// operations. All reads are pure; current state is recomputed from the
// store on every call.
type CatalogService struct {
	db     *sql.DB
	repos  repomanager.RepositoryManager
	logger logging.Logger
}

// NewCatalogService constructs a CatalogService over the shared pool.
func NewCatalogService(db *sql.DB, repos repomanager.RepositoryManager, logger logging.Logger) *CatalogService {
	return &CatalogService{
		db:     db,
		repos:  repos,
		logger: logger.With("module", "catalog_service"),
	}
}

// Catalog returns the category list (active only unless includeRemoved)
// and the current view of every item, sorted by item id.
func (s *CatalogService) Catalog(ctx context.Context, includeRemoved bool) ([]models.Category, []models.ItemView, error) {
	cats, err := s.repos.Categories(s.db).List(ctx, includeRemoved)
	if err != nil {
		return nil, nil, err
	}

	items, err := s.repos.Items(s.db).List(ctx)
	if err != nil {
		return nil, nil, err
	}

	engine := projection.NewEngine(s.repos.Entries(s.db))
	views, err := engine.SnapshotAll(ctx, items)
	if err != nil {
		return nil, nil, err
	}

	return cats, views, nil
}

// CurrentState returns the derived state of a single item.
func (s *CatalogService) CurrentState(ctx context.Context, itemID int64) (models.ItemView, error) {
	item, err := s.repos.Items(s.db).GetByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return models.ItemView{}, common.ErrUnknownItem
		}
		return models.ItemView{}, err
	}

	engine := projection.NewEngine(s.repos.Entries(s.db))
	return engine.CurrentState(ctx, *item)
}

// History returns the item's entries, newest first. The item must
// resolve; its history may still be empty.
func (s *CatalogService) History(ctx context.Context, itemID int64) ([]models.Entry, error) {
	if _, err := s.repos.Items(s.db).GetByID(ctx, itemID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnknownItem
		}
		return nil, err
	}

	return s.repos.Entries(s.db).ListByItem(ctx, itemID)
}

// CreateCategory adds a category with a title unique among active ones.
func (s *CatalogService) CreateCategory(ctx context.Context, title string) (int64, error) {
	id, err := s.repos.Categories(s.db).Create(ctx, title)
	if err != nil {
		return 0, err
	}
	s.logger.Info(ctx, "category created", "category_id", id, "title", title)
	return id, nil
}

// RemoveCategory soft-deletes a category. Its items stay valid.
func (s *CatalogService) RemoveCategory(ctx context.Context, id int64) error {
	if err := s.repos.Categories(s.db).SoftDelete(ctx, id); err != nil {
		return err
	}
	s.logger.Info(ctx, "category removed", "category_id", id)
	return nil
}

// CreateItem adds an item identity row and, when details are supplied,
// seeds its first history entry in the same transaction.
func (s *CatalogService) CreateItem(ctx context.Context, title string, categoryID int64, details *models.EntryDetails) (int64, error) {
	var itemID int64

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		itemID, err = s.repos.Items(tx).Create(ctx, title, categoryID)
		if err != nil {
			return err
		}
		if details != nil {
			if _, err := s.repos.Entries(tx).Append(ctx, itemID, *details); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info(ctx, "item created", "item_id", itemID, "category_id", categoryID)
	return itemID, nil
}
