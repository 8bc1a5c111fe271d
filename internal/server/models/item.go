package models

// Item is the identity row of a piece of equipment. Title and category
// may be edited in place; every other attribute lives in the item's
// entry history.
type Item struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	CategoryID int64  `json:"category_id"`
}

// ItemView is the derived current state of an item: its identity row
// combined with the newest entry, or defaults when no entry exists.
type ItemView struct {
	ItemID     int64   `json:"id"`
	Title      string  `json:"title"`
	CategoryID int64   `json:"category_id"`
	Cost       *int64  `json:"cost,omitempty"`
	Note       *string `json:"note,omitempty"`
	Status     int     `json:"status"`
	Visible    bool    `json:"visible"`
	Removed    bool    `json:"removed"`
}

// DefaultView returns the documented current state for an item with no
// history: no cost, no note, status 0, visible.
func DefaultView(item Item) ItemView {
	return ItemView{
		ItemID:     item.ID,
		Title:      item.Title,
		CategoryID: item.CategoryID,
		Visible:    true,
	}
}
