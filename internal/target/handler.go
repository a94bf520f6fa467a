package target

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"grub-core/internal/httputil"
	"grub-core/internal/validate"
)

// Handler serves the /api/targets surface.
type Handler struct {
	repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// ListTargets handles GET /api/targets.
func (h *Handler) ListTargets(w http.ResponseWriter, r *http.Request) {
	targets, err := h.repo.GetAll()
	if err != nil {
		httputil.WriteAppError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, targets)
}

// ClearTargets handles DELETE /api/targets.
func (h *Handler) ClearTargets(w http.ResponseWriter, r *http.Request) {
	if err := h.repo.DeleteAll(); err != nil {
		httputil.WriteAppError(w, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, "targets cleared")
}

// GetTarget handles GET /api/targets/{day}.
func (h *Handler) GetTarget(w http.ResponseWriter, r *http.Request) {
	day, ok := dayFromPath(r.URL.Path)
	if !ok {
		httputil.WriteError(w, http.StatusBadRequest, "day must be an integer between 0 and 6")
		return
	}

	t, err := h.repo.GetByDay(day)
	if err != nil {
		httputil.WriteAppError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, t)
}

// SetTarget handles PUT /api/targets/{day}, a replace-on-write.
func (h *Handler) SetTarget(w http.ResponseWriter, r *http.Request) {
	day, ok := dayFromPath(r.URL.Path)
	if !ok {
		httputil.WriteError(w, http.StatusBadRequest, "day must be an integer between 0 and 6")
		return
	}

	var req SetTargetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := validate.Target(day, req.Calories, req.ProteinPct, req.CarbsPct, req.FatPct); err != nil {
		httputil.WriteAppError(w, err)
		return
	}

	t, err := h.repo.Set(day, req)
	if err != nil {
		httputil.WriteAppError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, t)
}

// DeleteTarget handles DELETE /api/targets/{day}.
func (h *Handler) DeleteTarget(w http.ResponseWriter, r *http.Request) {
	day, ok := dayFromPath(r.URL.Path)
	if !ok {
		httputil.WriteError(w, http.StatusBadRequest, "day must be an integer between 0 and 6")
		return
	}

	if err := h.repo.DeleteDay(day); err != nil {
		httputil.WriteAppError(w, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, "target deleted")
}

func dayFromPath(path string) (int, bool) {
	s := strings.TrimPrefix(path, "/api/targets/")
	day, err := strconv.Atoi(s)
	if err != nil || day < 0 || day > 6 {
		return 0, false
	}
	return day, true
}
