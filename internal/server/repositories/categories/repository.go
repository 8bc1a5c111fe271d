package categories

import (
	"context"

	"maintrack/internal/server/models"
)

type Repository interface {
	// Create inserts a category and returns the store-assigned id.
	// Returns common.ErrDuplicateTitle when an active category with the
	// same title exists.
	Create(ctx context.Context, title string) (int64, error)

	// SoftDelete flags the category removed. Idempotent; returns
	// common.ErrNotFound for an unknown id.
	SoftDelete(ctx context.Context, id int64) error

	// GetByID resolves a category, removed or not.
	GetByID(ctx context.Context, id int64) (*models.Category, error)

	// List returns categories ordered by title, excluding removed ones
	// unless includeRemoved is set.
	List(ctx context.Context, includeRemoved bool) ([]models.Category, error)
}
