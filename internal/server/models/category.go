// Package models defines the persistent record kinds of the maintenance
// tracker: categories, items and their append-only state entries.
package models

// Category groups items for display. Categories are never physically
// deleted; a removed category keeps its items resolvable but is excluded
// from active listings.
type Category struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Removed bool   `json:"removed"`
}
