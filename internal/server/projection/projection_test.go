package projection

import (
	"context"
	"errors"
	"testing"

	"maintrack/internal/common"
	"maintrack/internal/server/models"
	"maintrack/internal/server/repositories/entries"
)

// -------- test fakes --------

type fakeEntriesRepo struct {
	entries.Repository
	latest map[int64]*models.Entry
	err    error
}

func (f *fakeEntriesRepo) Latest(ctx context.Context, itemID int64) (*models.Entry, error) {
	if f.err != nil {
		return nil, f.err
	}
	e, ok := f.latest[itemID]
	if !ok {
		return nil, common.ErrNotFound
	}
	return e, nil
}

func ptr[T any](v T) *T { return &v }

func TestCurrentState_DefaultWhenNoHistory(t *testing.T) {
	engine := NewEngine(&fakeEntriesRepo{latest: map[int64]*models.Entry{}})
	item := models.Item{ID: 10, Title: "AMADA SAW", CategoryID: 1}

	view, err := engine.CurrentState(context.Background(), item)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if view.Cost != nil || view.Note != nil {
		t.Fatalf("want no cost/note, got %+v", view)
	}
	if view.Status != 0 || !view.Visible || view.Removed {
		t.Fatalf("want default status/visibility, got %+v", view)
	}
	if view.Title != "AMADA SAW" || view.CategoryID != 1 {
		t.Fatalf("identity fields must come from the item row, got %+v", view)
	}
}

func TestCurrentState_NewestEntryWins(t *testing.T) {
	repo := &fakeEntriesRepo{latest: map[int64]*models.Entry{
		10: {
			ID:     7,
			ItemID: 10,
			EntryDetails: models.EntryDetails{
				Cost: ptr(int64(500)), Note: ptr("belt replaced"), Status: 1, Visible: true,
			},
		},
	}}
	engine := NewEngine(repo)

	view, err := engine.CurrentState(context.Background(), models.Item{ID: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.Cost == nil || *view.Cost != 500 {
		t.Fatalf("want cost 500, got %+v", view.Cost)
	}
	if view.Status != 1 || !view.Visible {
		t.Fatalf("want status 1 visible, got %+v", view)
	}
}

func TestCurrentState_TombstoneHidesItem(t *testing.T) {
	repo := &fakeEntriesRepo{latest: map[int64]*models.Entry{
		10: {
			ID:     8,
			ItemID: 10,
			EntryDetails: models.EntryDetails{
				Cost: ptr(int64(500)), Status: 1, Visible: true, Removed: true,
			},
		},
	}}
	engine := NewEngine(repo)

	view, err := engine.CurrentState(context.Background(), models.Item{ID: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !view.Removed || view.Visible {
		t.Fatalf("tombstoned item must be hidden, got %+v", view)
	}
	if view.Cost != nil || view.Status != 0 {
		t.Fatalf("tombstoned item must reset to defaults, got %+v", view)
	}
}

func TestCurrentState_PureRead(t *testing.T) {
	repo := &fakeEntriesRepo{latest: map[int64]*models.Entry{
		10: {ID: 3, ItemID: 10, EntryDetails: models.EntryDetails{Status: 2, Visible: true}},
	}}
	engine := NewEngine(repo)
	item := models.Item{ID: 10}

	first, err := engine.CurrentState(context.Background(), item)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := engine.CurrentState(context.Background(), item)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Fatalf("two reads with no writes must match: %+v vs %+v", first, second)
	}
}

func TestSnapshotAll_SortedByItemID(t *testing.T) {
	repo := &fakeEntriesRepo{latest: map[int64]*models.Entry{
		2: {ID: 1, ItemID: 2, EntryDetails: models.EntryDetails{Status: 1, Visible: true}},
	}}
	engine := NewEngine(repo)

	items := []models.Item{{ID: 10, Title: "c"}, {ID: 2, Title: "a"}, {ID: 5, Title: "b"}}
	views, err := engine.SnapshotAll(context.Background(), items)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(views) != 3 {
		t.Fatalf("want 3 views, got %d", len(views))
	}
	for i, want := range []int64{2, 5, 10} {
		if views[i].ItemID != want {
			t.Fatalf("views out of order at %d: %+v", i, views)
		}
	}
}

func TestSnapshotAll_PropagatesStoreError(t *testing.T) {
	repo := &fakeEntriesRepo{err: errors.New("db is down")}
	engine := NewEngine(repo)

	_, err := engine.SnapshotAll(context.Background(), []models.Item{{ID: 1}})
	if err == nil {
		t.Fatal("want error when store is unavailable")
	}
}
