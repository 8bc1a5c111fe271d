package entries

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"maintrack/internal/common"
	"maintrack/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func entryRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "item_id", "cost", "note", "status", "visible", "removed", "date"})
}

func TestAppend_ReturnsAssignedID(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := regexp.MustCompile(`INSERT INTO entry .* WHERE EXISTS .* RETURNING id`)

	cost := int64(500)
	note := "belt replaced"
	mock.ExpectQuery(q.String()).
		WithArgs(int64(10), &cost, &note, 1, true, false).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

	id, err := repo.Append(context.Background(), 10, models.EntryDetails{
		Cost: &cost, Note: &note, Status: 1, Visible: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 7 {
		t.Fatalf("want id 7, got %d", id)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAppend_UnknownItemWhenGuardFails(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO entry`).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Append(context.Background(), 9999, models.EntryDetails{Visible: true})
	if !errors.Is(err, common.ErrUnknownItem) {
		t.Fatalf("want ErrUnknownItem, got %v", err)
	}
}

func TestAppend_StorageError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO entry`).
		WillReturnError(errors.New("db is down"))

	_, err := repo.Append(context.Background(), 10, models.EntryDetails{Visible: true})
	if !errors.Is(err, common.ErrStorageUnavailable) {
		t.Fatalf("want ErrStorageUnavailable, got %v", err)
	}
}

func TestListByItem_NewestFirst(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	when := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT id, item_id, cost, note, status, visible, removed, date\s+FROM entry WHERE item_id = \$1 ORDER BY id DESC`).
		WithArgs(int64(10)).
		WillReturnRows(entryRows().
			AddRow(int64(8), int64(10), int64(750), nil, 2, true, false, when).
			AddRow(int64(7), int64(10), int64(500), "belt replaced", 1, true, false, when.Add(-time.Hour)))

	entries, err := repo.ListByItem(context.Background(), 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("want 2 entries, got %d", len(entries))
	}
	if entries[0].ID != 8 || entries[1].ID != 7 {
		t.Fatalf("entries out of order: %+v", entries)
	}
	if entries[1].Note == nil || *entries[1].Note != "belt replaced" {
		t.Fatalf("unexpected note: %+v", entries[1].Note)
	}
	if entries[0].Note != nil {
		t.Fatalf("want nil note, got %v", *entries[0].Note)
	}
}

func TestListByItem_EmptyHistory(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`FROM entry WHERE item_id = \$1 ORDER BY id DESC`).
		WithArgs(int64(10)).
		WillReturnRows(entryRows())

	entries, err := repo.ListByItem(context.Background(), 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("want empty history, got %+v", entries)
	}
}

func TestLatest_ReturnsNewestEntry(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	when := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`ORDER BY id DESC LIMIT 1`).
		WithArgs(int64(10)).
		WillReturnRows(entryRows().
			AddRow(int64(8), int64(10), nil, nil, 0, true, true, when))

	e, err := repo.Latest(context.Background(), 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.ID != 8 || !e.Removed {
		t.Fatalf("unexpected entry: %+v", e)
	}
}

func TestLatest_NotFoundWhenNoHistory(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`ORDER BY id DESC LIMIT 1`).
		WithArgs(int64(10)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Latest(context.Background(), 10)
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}
