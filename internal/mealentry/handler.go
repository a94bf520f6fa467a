package mealentry

import (
	"encoding/json"
	"net/http"

	"grub-core/internal/httputil"
	"grub-core/internal/validate"
)

// Handler serves the /api/meals surface.
type Handler struct {
	repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// CreateEntry handles POST /api/meals.
func (h *Handler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	var req CreateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := validate.MealEntry(validate.MealEntryInput{
		Date:     req.Date,
		MealType: req.MealType,
		ServingG: req.ServingG,
	}); err != nil {
		httputil.WriteAppError(w, err)
		return
	}

	e, err := h.repo.Create(req)
	if err != nil {
		httputil.WriteAppError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, e)
}

// UpdateEntry handles PUT /api/meals/{id} with a partial patch.
func (h *Handler) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.GetPathID(r)
	if !ok {
		httputil.WriteError(w, http.StatusBadRequest, "entry id required")
		return
	}

	var req UpdateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ServingG != nil && *req.ServingG <= 0 {
		httputil.WriteError(w, http.StatusBadRequest, "serving_g must be greater than 0")
		return
	}

	e, err := h.repo.Update(uint(id), req)
	if err != nil {
		httputil.WriteAppError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, e)
}

// DeleteEntry handles DELETE /api/meals/{id}: 204 on success, 404 otherwise.
func (h *Handler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.GetPathID(r)
	if !ok {
		httputil.WriteError(w, http.StatusBadRequest, "entry id required")
		return
	}

	if err := h.repo.Delete(uint(id)); err != nil {
		httputil.WriteAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
