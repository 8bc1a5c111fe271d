// Package entries provides the SQL-backed repository for the append-only
// entry history. Entries are never mutated; an item's state changes by
// appending and its "deletion" is an appended tombstone.
package entries

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"maintrack/internal/common"
	"maintrack/internal/dbx"
	"maintrack/internal/server/models"
)

// PostgresRepository implements entry storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Append inserts one history row. Id and date come from the store, so a
// single INSERT is the whole atomic operation, even under concurrent
// callers.
func (r *PostgresRepository) Append(ctx context.Context, itemID int64, d models.EntryDetails) (int64, error) {
	query := `
		INSERT INTO entry (item_id, cost, note, status, visible, removed)
		SELECT $1, $2, $3, $4, $5, $6
		WHERE EXISTS (SELECT 1 FROM item WHERE id = $1)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		itemID, d.Cost, d.Note, d.Status, d.Visible, d.Removed).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, common.ErrUnknownItem
		}
		return 0, fmt.Errorf("%w: insert entry: %v", common.ErrStorageUnavailable, err)
	}

	return id, nil
}

// ListByItem returns the item's history ordered by id descending.
func (r *PostgresRepository) ListByItem(ctx context.Context, itemID int64) ([]models.Entry, error) {
	query := `
		SELECT id, item_id, cost, note, status, visible, removed, date
		FROM entry WHERE item_id = $1 ORDER BY id DESC
	`

	rows, err := r.db.QueryContext(ctx, query, itemID)
	if err != nil {
		return nil, fmt.Errorf("%w: select entries: %v", common.ErrStorageUnavailable, err)
	}
	defer rows.Close()

	var result []models.Entry
	for rows.Next() {
		var e models.Entry
		if err := rows.Scan(
			&e.ID, &e.ItemID, &e.Cost, &e.Note, &e.Status, &e.Visible, &e.Removed, &e.Date,
		); err != nil {
			return nil, fmt.Errorf("%w: scan entry: %v", common.ErrStorageUnavailable, err)
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate entries: %v", common.ErrStorageUnavailable, err)
	}

	return result, nil
}

// Latest returns the single newest entry for the item.
func (r *PostgresRepository) Latest(ctx context.Context, itemID int64) (*models.Entry, error) {
	query := `
		SELECT id, item_id, cost, note, status, visible, removed, date
		FROM entry WHERE item_id = $1 ORDER BY id DESC LIMIT 1
	`

	e := &models.Entry{}
	err := r.db.QueryRowContext(ctx, query, itemID).Scan(
		&e.ID, &e.ItemID, &e.Cost, &e.Note, &e.Status, &e.Visible, &e.Removed, &e.Date,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("%w: select latest entry: %v", common.ErrStorageUnavailable, err)
	}

	return e, nil
}
