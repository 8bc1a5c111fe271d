// Package projection derives the current visible state of items from
// their append-only entry history. It only reads the store; the "latest
// entry wins" rule lives here and nowhere else.
package projection

import (
	"context"
	"errors"
	"sort"

	"maintrack/internal/common"
	"maintrack/internal/server/models"
	"maintrack/internal/server/repositories/entries"
)

// Engine computes item views from entry history.
type Engine struct {
	entries entries.Repository
}

// NewEngine constructs an Engine over the given entries repository.
func NewEngine(repo entries.Repository) *Engine {
	return &Engine{entries: repo}
}

// CurrentState returns the item's derived current state. The newest entry
// decides: a tombstone (removed=true) hides the item and resets its state
// to defaults, any other entry is the state itself, and an empty history
// yields the documented default (no cost, no note, status 0, visible).
// This is a pure read; no store state changes.
func (e *Engine) CurrentState(ctx context.Context, item models.Item) (models.ItemView, error) {
	view := models.DefaultView(item)

	latest, err := e.entries.Latest(ctx, item.ID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return view, nil
		}
		return models.ItemView{}, err
	}

	if latest.Removed {
		view.Visible = false
		view.Removed = true
		return view, nil
	}

	view.Cost = latest.Cost
	view.Note = latest.Note
	view.Status = latest.Status
	view.Visible = latest.Visible
	return view, nil
}

// SnapshotAll computes CurrentState for every item. The result is sorted
// by item id ascending so listings stay deterministic.
func (e *Engine) SnapshotAll(ctx context.Context, items []models.Item) ([]models.ItemView, error) {
	sorted := make([]models.Item, len(items))
	copy(sorted, items)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	views := make([]models.ItemView, 0, len(sorted))
	for _, item := range sorted {
		view, err := e.CurrentState(ctx, item)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}

	return views, nil
}
