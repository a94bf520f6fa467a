package sync

import (
	"encoding/json"
	"net/http"
	"time"

	"grub-core/internal/httputil"
	"grub-core/internal/validate"
)

// Handler serves the /api/sync surface.
type Handler struct {
	engine *Engine
}

func NewHandler(engine *Engine) *Handler {
	return &Handler{engine: engine}
}

// Pull handles GET /api/sync?since=<RFC3339>. An absent or empty since
// returns full state.
func (h *Handler) Pull(w http.ResponseWriter, r *http.Request) {
	since, err := parseWatermark(r.URL.Query().Get("since"))
	if err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid since timestamp")
		return
	}

	delta, appErr := h.engine.ChangesSince(since)
	if appErr != nil {
		httputil.WriteAppError(w, appErr)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, delta)
}

// pushRequest is the POST /api/sync body: the client's watermark (what it
// last pulled) plus the writes it wants to push.
type pushRequest struct {
	Since time.Time `json:"since"`
	Delta
}

// Push handles POST /api/sync. It snapshots the server's delta relative to
// the client's watermark *before* applying the client's writes, so the
// response never echoes back the writes the client just sent.
func (h *Handler) Push(w http.ResponseWriter, r *http.Request) {
	var req pushRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := validateTombstones(req.Tombstones); err != nil {
		httputil.WriteAppError(w, err)
		return
	}

	before, appErr := h.engine.ChangesSince(req.Since)
	if appErr != nil {
		httputil.WriteAppError(w, appErr)
		return
	}

	if appErr := h.engine.Apply(req.Delta); appErr != nil {
		httputil.WriteAppError(w, appErr)
		return
	}

	before.ServerTimestamp = time.Now().UTC()
	httputil.WriteJSON(w, http.StatusOK, before)
}

func parseWatermark(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, raw)
}

// validateTombstones reuses the shared tombstone validator (allowed table,
// RFC 3339 deleted_at). Future timestamps are clamped, not rejected, in
// Engine.Apply.
func validateTombstones(tombstones []TombstoneDTO) error {
	for _, t := range tombstones {
		if err := validate.Tombstone(t.Table, t.DeletedAt.Format(time.RFC3339)); err != nil {
			return err
		}
	}
	return nil
}
