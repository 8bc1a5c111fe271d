package items

import (
	"context"

	"maintrack/internal/server/models"
)

type Repository interface {
	// Create inserts an item identity row. The category must resolve
	// (removed categories still resolve); otherwise
	// common.ErrUnknownCategory is returned.
	Create(ctx context.Context, title string, categoryID int64) (int64, error)

	// UpdateIdentity rewrites title and category of the identity row
	// only. Entry history is never touched. Returns common.ErrNotFound
	// or common.ErrUnknownCategory.
	UpdateIdentity(ctx context.Context, id int64, title string, categoryID int64) error

	// GetByID resolves an item identity row.
	GetByID(ctx context.Context, id int64) (*models.Item, error)

	// List returns all items ordered by id ascending.
	List(ctx context.Context) ([]models.Item, error)
}
