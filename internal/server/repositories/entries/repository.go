package entries

import (
	"context"

	"maintrack/internal/server/models"
)

type Repository interface {
	// Append inserts a new history row for the item and returns the
	// store-assigned id. Ids increase monotonically; the id and the
	// timestamp are never caller-supplied. Returns common.ErrUnknownItem
	// when the item does not resolve.
	Append(ctx context.Context, itemID int64, d models.EntryDetails) (int64, error)

	// ListByItem returns the item's full history, newest first. The
	// result is a finite snapshot that can be re-queried.
	ListByItem(ctx context.Context, itemID int64) ([]models.Entry, error)

	// Latest returns the newest entry for the item, or common.ErrNotFound
	// when the item has no history.
	Latest(ctx context.Context, itemID int64) (*models.Entry, error)
}
