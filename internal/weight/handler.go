package weight

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"grub-core/internal/httputil"
	"grub-core/internal/validate"
)

// Handler serves the /api/weight surface.
type Handler struct {
	repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// UpsertEntry handles POST /api/weight.
func (h *Handler) UpsertEntry(w http.ResponseWriter, r *http.Request) {
	var req UpsertEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := validate.Weight(req.Date, req.WeightKg); err != nil {
		httputil.WriteAppError(w, err)
		return
	}

	e, err := h.repo.Upsert(req)
	if err != nil {
		httputil.WriteAppError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, e)
}

// ListEntries handles GET /api/weight?start=&end=.
func (h *Handler) ListEntries(w http.ResponseWriter, r *http.Request) {
	start := r.URL.Query().Get("start")
	end := r.URL.Query().Get("end")

	entries, err := h.repo.GetRange(start, end)
	if err != nil {
		httputil.WriteAppError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, entries)
}

// GetEntry handles GET /api/weight/{date}.
func (h *Handler) GetEntry(w http.ResponseWriter, r *http.Request) {
	date := strings.TrimPrefix(r.URL.Path, "/api/weight/")
	if date == "" {
		httputil.WriteError(w, http.StatusBadRequest, "date is required")
		return
	}

	e, err := h.repo.GetByDate(date)
	if err != nil {
		httputil.WriteAppError(w, err)
		return
	}
	if e == nil {
		httputil.WriteError(w, http.StatusNotFound, "no weight entry found for "+date)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, e)
}

// DeleteEntry handles DELETE /api/weight/entry/{id}.
func (h *Handler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	idStr := strings.TrimPrefix(r.URL.Path, "/api/weight/entry/")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid entry id")
		return
	}

	if err := h.repo.DeleteByID(uint(id)); err != nil {
		httputil.WriteAppError(w, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, "weight entry deleted")
}
