// Package categories provides the SQL-backed repository for category
// identity rows.
package categories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"maintrack/internal/common"
	"maintrack/internal/dbx"
	"maintrack/internal/server/models"
)

// PostgresRepository implements category storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a category unless an active one already carries the same
// title. The conditional insert keeps the uniqueness check and the insert
// in a single statement.
func (r *PostgresRepository) Create(ctx context.Context, title string) (int64, error) {
	query := `
		INSERT INTO category (title)
		SELECT $1
		WHERE NOT EXISTS (SELECT 1 FROM category WHERE title = $1 AND NOT removed)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query, title).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, common.ErrDuplicateTitle
		}
		return 0, fmt.Errorf("%w: insert category: %v", common.ErrStorageUnavailable, err)
	}

	return id, nil
}

// SoftDelete flags a category removed. Re-deleting a removed category is
// a no-op that still succeeds.
func (r *PostgresRepository) SoftDelete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `UPDATE category SET removed = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: soft delete category: %v", common.ErrStorageUnavailable, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: rows affected: %v", common.ErrStorageUnavailable, err)
	}
	if n == 0 {
		return common.ErrNotFound
	}

	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Category, error) {
	query := `SELECT id, title, removed FROM category WHERE id = $1`

	c := &models.Category{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Title, &c.Removed)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("%w: select category: %v", common.ErrStorageUnavailable, err)
	}

	return c, nil
}

func (r *PostgresRepository) List(ctx context.Context, includeRemoved bool) ([]models.Category, error) {
	query := `SELECT id, title, removed FROM category WHERE NOT removed ORDER BY title`
	if includeRemoved {
		query = `SELECT id, title, removed FROM category ORDER BY title`
	}

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: select categories: %v", common.ErrStorageUnavailable, err)
	}
	defer rows.Close()

	var result []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Title, &c.Removed); err != nil {
			return nil, fmt.Errorf("%w: scan category: %v", common.ErrStorageUnavailable, err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate categories: %v", common.ErrStorageUnavailable, err)
	}

	return result, nil
}
