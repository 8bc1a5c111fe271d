// Package items provides the SQL-backed repository for item identity rows.
package items

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"maintrack/internal/common"
	"maintrack/internal/dbx"
	"maintrack/internal/server/models"
)

// PostgresRepository implements item storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts an item when its category resolves. The EXISTS guard
// keeps the foreign-key check and the insert in one statement.
func (r *PostgresRepository) Create(ctx context.Context, title string, categoryID int64) (int64, error) {
	query := `
		INSERT INTO item (title, category_id)
		SELECT $1, $2
		WHERE EXISTS (SELECT 1 FROM category WHERE id = $2)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query, title, categoryID).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, common.ErrUnknownCategory
		}
		return 0, fmt.Errorf("%w: insert item: %v", common.ErrStorageUnavailable, err)
	}

	return id, nil
}

// UpdateIdentity rewrites the identity row. When no row changes, the
// category is probed to tell ErrUnknownCategory from ErrNotFound.
func (r *PostgresRepository) UpdateIdentity(ctx context.Context, id int64, title string, categoryID int64) error {
	query := `
		UPDATE item SET title = $1, category_id = $2
		WHERE id = $3 AND EXISTS (SELECT 1 FROM category WHERE id = $2)
	`

	res, err := r.db.ExecContext(ctx, query, title, categoryID, id)
	if err != nil {
		return fmt.Errorf("%w: update item: %v", common.ErrStorageUnavailable, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: rows affected: %v", common.ErrStorageUnavailable, err)
	}
	if n > 0 {
		return nil
	}

	var probe int64
	err = r.db.QueryRowContext(ctx, `SELECT id FROM category WHERE id = $1`, categoryID).Scan(&probe)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.ErrUnknownCategory
		}
		return fmt.Errorf("%w: select category: %v", common.ErrStorageUnavailable, err)
	}

	return common.ErrNotFound
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Item, error) {
	query := `SELECT id, title, category_id FROM item WHERE id = $1`

	item := &models.Item{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&item.ID, &item.Title, &item.CategoryID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("%w: select item: %v", common.ErrStorageUnavailable, err)
	}

	return item, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]models.Item, error) {
	query := `SELECT id, title, category_id FROM item ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: select items: %v", common.ErrStorageUnavailable, err)
	}
	defer rows.Close()

	var result []models.Item
	for rows.Next() {
		var item models.Item
		if err := rows.Scan(&item.ID, &item.Title, &item.CategoryID); err != nil {
			return nil, fmt.Errorf("%w: scan item: %v", common.ErrStorageUnavailable, err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate items: %v", common.ErrStorageUnavailable, err)
	}

	return result, nil
}
