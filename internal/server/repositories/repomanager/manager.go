package repomanager

import (
	"context"
	"database/sql"

	"maintrack/internal/dbx"
	"maintrack/internal/server/repositories/categories"
	"maintrack/internal/server/repositories/entries"
	"maintrack/internal/server/repositories/items"
)

// RepositoryManager vends repository implementations bound to a DBTX, so
// services can run several repository calls against one transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Categories(db dbx.DBTX) categories.Repository
	Items(db dbx.DBTX) items.Repository
	Entries(db dbx.DBTX) entries.Repository
}
