package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"maintrack/internal/common"
	"maintrack/internal/server/auth"
	"maintrack/internal/server/models"
)

// itemPayload is one element of a batch update, the wire shape the
// original client posts: identity fields plus the new details.
type itemPayload struct {
	ID         int64   `json:"id"`
	Title      string  `json:"title"`
	CategoryID int64   `json:"category_id"`
	Cost       *int64  `json:"cost,omitempty"`
	Note       *string `json:"note,omitempty"`
	Status     int     `json:"status"`
	Visible    bool    `json:"visible"`
	Removed    bool    `json:"removed"`
}

type outcomePayload struct {
	EntryID *int64 `json:"entry_id,omitempty"`
	Error   string `json:"error,omitempty"`
}

type catalogPayload struct {
	AppTitle   string            `json:"app_title"`
	AppVersion string            `json:"app_version"`
	Categories []models.Category `json:"categories"`
	Items      []models.ItemView `json:"items"`
}

func (s *Server) ping(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "OK"})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	if s.creds == nil {
		http.Error(w, "login disabled", http.StatusNotFound)
		return
	}

	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "malformed request", http.StatusBadRequest)
		return
	}

	if err := s.creds.Verify(req.Username, []byte(req.Password)); err != nil {
		s.logger.Warn(r.Context(), "login rejected", "username", req.Username)
		http.Error(w, "invalid login credentials", http.StatusUnauthorized)
		return
	}

	token, err := auth.GenerateToken(req.Username, s.jwtSecret, s.tokenValidity)
	if err != nil {
		s.logger.Error(r.Context(), err.Error())
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"access_token": token})
}

func (s *Server) getCatalog(w http.ResponseWriter, r *http.Request) {
	includeRemoved := r.URL.Query().Get("all") == "1"

	cats, views, err := s.catalog.Catalog(r.Context(), includeRemoved)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if cats == nil {
		cats = []models.Category{}
	}
	if views == nil {
		views = []models.ItemView{}
	}

	writeJSON(w, http.StatusOK, catalogPayload{
		AppTitle:   common.AppTitle,
		AppVersion: common.AppVersion,
		Categories: cats,
		Items:      views,
	})
}

func (s *Server) getHistory(w http.ResponseWriter, r *http.Request) {
	itemID, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid item id", http.StatusBadRequest)
		return
	}

	entries, err := s.catalog.History(r.Context(), itemID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if entries == nil {
		entries = []models.Entry{}
	}

	writeJSON(w, http.StatusOK, entries)
}

// postItems applies a batch of item-state changes. Outcomes are reported
// per item; a failed item never aborts its siblings, so the response is
// always 200 with individual errors inside.
func (s *Server) postItems(w http.ResponseWriter, r *http.Request) {
	var payloads []itemPayload
	if err := json.NewDecoder(r.Body).Decode(&payloads); err != nil {
		http.Error(w, "malformed request", http.StatusBadRequest)
		return
	}

	batch := make(map[int64]models.UpdateRequest, len(payloads))
	for _, p := range payloads {
		batch[p.ID] = models.UpdateRequest{
			Title:      p.Title,
			CategoryID: p.CategoryID,
			Details: models.EntryDetails{
				Cost:    p.Cost,
				Note:    p.Note,
				Status:  p.Status,
				Visible: p.Visible,
				Removed: p.Removed,
			},
		}
	}

	outcomes := s.updates.ApplyBatch(r.Context(), batch)

	resp := make(map[string]outcomePayload, len(outcomes))
	for itemID, outcome := range outcomes {
		key := strconv.FormatInt(itemID, 10)
		if outcome.Err != nil {
			resp[key] = outcomePayload{Error: errKind(outcome.Err)}
			continue
		}
		entryID := outcome.EntryID
		resp[key] = outcomePayload{EntryID: &entryID}
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) postNewItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title      string               `json:"title"`
		CategoryID int64                `json:"category_id"`
		Details    *models.EntryDetails `json:"details,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "malformed request", http.StatusBadRequest)
		return
	}
	if req.Title == "" {
		http.Error(w, "title is required", http.StatusBadRequest)
		return
	}

	id, err := s.catalog.CreateItem(r.Context(), req.Title, req.CategoryID, req.Details)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

// deleteItem tombstones the item's current state through the regular
// append path. History stays queryable.
func (s *Server) deleteItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid item id", http.StatusBadRequest)
		return
	}

	if _, err := s.updates.Tombstone(r.Context(), itemID); err != nil {
		s.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) postCategory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title string `json:"title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "malformed request", http.StatusBadRequest)
		return
	}
	if req.Title == "" {
		http.Error(w, "title is required", http.StatusBadRequest)
		return
	}

	id, err := s.catalog.CreateCategory(r.Context(), req.Title)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

func (s *Server) deleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid category id", http.StatusBadRequest)
		return
	}

	if err := s.catalog.RemoveCategory(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// -------- helpers --------

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps domain sentinels to HTTP status codes.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, common.ErrUnknownItem):
		http.Error(w, "unknown item", http.StatusNotFound)
	case errors.Is(err, common.ErrUnknownCategory):
		http.Error(w, "unknown category", http.StatusUnprocessableEntity)
	case errors.Is(err, common.ErrDuplicateTitle):
		http.Error(w, "duplicate title", http.StatusConflict)
	case errors.Is(err, common.ErrStorageUnavailable):
		s.logger.Error(r.Context(), err.Error())
		http.Error(w, "storage unavailable, retry later", http.StatusServiceUnavailable)
	default:
		s.logger.Error(r.Context(), err.Error())
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func errKind(err error) string {
	switch {
	case errors.Is(err, common.ErrUnknownItem):
		return "unknown_item"
	case errors.Is(err, common.ErrUnknownCategory):
		return "unknown_category"
	case errors.Is(err, common.ErrNotFound):
		return "not_found"
	case errors.Is(err, common.ErrDuplicateTitle):
		return "duplicate_title"
	case errors.Is(err, common.ErrStorageUnavailable):
		return "storage_unavailable"
	default:
		return "error"
	}
}
