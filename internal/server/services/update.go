package services

import (
	"context"
	"database/sql"
	"errors"

	"maintrack/internal/common"
	"maintrack/internal/dbx"
	"maintrack/internal/logging"
	"maintrack/internal/metrics"
	"maintrack/internal/server/models"
	"maintrack/internal/server/repositories/repomanager"
)

// Outcome is the per-item result of a batch update: the id of the
// appended entry on success, or the error kind that rejected the item.
type Outcome struct {
	EntryID int64
	Err     error
}

// UpdateService turns submitted item-state changes into appended history
// entries. History is never mutated: an update appends, a delete appends
// a tombstone.
type UpdateService struct {
	db     *sql.DB
	repos  repomanager.RepositoryManager
	logger logging.Logger
}

// NewUpdateService constructs an UpdateService over the shared pool.
func NewUpdateService(db *sql.DB, repos repomanager.RepositoryManager, logger logging.Logger) *UpdateService {
	return &UpdateService{
		db:     db,
		repos:  repos,
		logger: logger.With("module", "update_service"),
	}
}

// ApplyBatch applies each item's change independently and reports a
// per-item outcome, so one bad item never aborts its siblings. Ordering
// guarantees hold per item only; the batch as a whole is not a
// transaction.
func (s *UpdateService) ApplyBatch(ctx context.Context, batch map[int64]models.UpdateRequest) map[int64]Outcome {
	result := make(map[int64]Outcome, len(batch))

	for itemID, req := range batch {
		entryID, err := s.applyOne(ctx, itemID, req)
		if err != nil {
			s.logger.Warn(ctx, "item update rejected", "item_id", itemID, "reason", err.Error())
			metrics.BatchOutcomes.WithLabelValues(outcomeLabel(err)).Inc()
			result[itemID] = Outcome{Err: err}
			continue
		}
		metrics.BatchOutcomes.WithLabelValues("ok").Inc()
		result[itemID] = Outcome{EntryID: entryID}
	}

	return result
}

// Tombstone soft-deletes an item's current state by appending a
// removed=true entry through the regular append path.
func (s *UpdateService) Tombstone(ctx context.Context, itemID int64) (int64, error) {
	entryID, err := s.applyOne(ctx, itemID, models.UpdateRequest{
		Details: models.EntryDetails{Removed: true},
	})
	if err != nil {
		return 0, err
	}
	return entryID, nil
}

// applyOne validates the item, applies an identity edit when one was
// supplied, and appends the new entry. Identity edit and append share one
// transaction so a single item's change is atomic.
func (s *UpdateService) applyOne(ctx context.Context, itemID int64, req models.UpdateRequest) (int64, error) {
	var entryID int64

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		itemRepo := s.repos.Items(tx)

		item, err := itemRepo.GetByID(ctx, itemID)
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				return common.ErrUnknownItem
			}
			return err
		}

		if req.Title != "" || req.CategoryID != 0 {
			title := req.Title
			if title == "" {
				title = item.Title
			}
			categoryID := req.CategoryID
			if categoryID == 0 {
				categoryID = item.CategoryID
			}
			if title != item.Title || categoryID != item.CategoryID {
				if err := itemRepo.UpdateIdentity(ctx, itemID, title, categoryID); err != nil {
					return err
				}
			}
		}

		entryID, err = s.repos.Entries(tx).Append(ctx, itemID, req.Details)
		return err
	})
	if err != nil {
		return 0, err
	}

	return entryID, nil
}

func outcomeLabel(err error) string {
	switch {
	case errors.Is(err, common.ErrUnknownItem):
		return "unknown_item"
	case errors.Is(err, common.ErrUnknownCategory):
		return "unknown_category"
	case errors.Is(err, common.ErrStorageUnavailable):
		return "storage_unavailable"
	default:
		return "error"
	}
}
