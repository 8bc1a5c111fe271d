package models

import "time"

// EntryDetails is the caller-supplied part of an entry. A details payload
// with Removed set is a tombstone for the item's current state.
type EntryDetails struct {
	Cost    *int64  `json:"cost,omitempty"`
	Note    *string `json:"note,omitempty"`
	Status  int     `json:"status"`
	Visible bool    `json:"visible"`
	Removed bool    `json:"removed"`
}

// Entry is one immutable history record for an item. ID and Date are
// assigned by the store on insertion; insertion order equals
// chronological order, so the highest ID is the most recent state.
type Entry struct {
	ID     int64 `json:"id"`
	ItemID int64 `json:"item_id"`
	EntryDetails
	Date time.Time `json:"date"`
}

// UpdateRequest is one element of a batch update: optional identity
// changes plus the new details payload to append.
type UpdateRequest struct {
	Title      string
	CategoryID int64
	Details    EntryDetails
}
