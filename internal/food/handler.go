package food

import (
	"encoding/json"
	"net/http"
	"strings"

	"grub-core/internal/httputil"
	"grub-core/internal/validate"
)

// Orchestrator is the subset of provider.Orchestrator the food handler
// needs: local+cached-remote search and barcode lookup.
type Orchestrator interface {
	Search(query string) ([]Food, error)
	LookupBarcode(code string) (*Food, error)
}

// Handler serves the /api/foods surface.
type Handler struct {
	repo         *Repository
	orchestrator Orchestrator
}

func NewHandler(repo *Repository, orchestrator Orchestrator) *Handler {
	return &Handler{repo: repo, orchestrator: orchestrator}
}

// CreateFood handles POST /api/foods.
func (h *Handler) CreateFood(w http.ResponseWriter, r *http.Request) {
	var req CreateFoodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := validate.Food(validate.FoodInput{
		Name:            req.Name,
		CaloriesPer100g: req.CaloriesPer100g,
		ProteinPer100g:  req.ProteinPer100g,
		CarbsPer100g:    req.CarbsPer100g,
		FatPer100g:      req.FatPer100g,
	}); err != nil {
		httputil.WriteAppError(w, err)
		return
	}

	f, err := h.repo.Create(req)
	if err != nil {
		httputil.WriteAppError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, f)
}

// SearchFoods handles GET /api/foods/search?q=...
func (h *Handler) SearchFoods(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		httputil.WriteError(w, http.StatusBadRequest, "query parameter 'q' is required")
		return
	}

	results, err := h.orchestrator.Search(query)
	if err != nil {
		httputil.WriteAppError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, results)
}

// LookupBarcode handles GET /api/foods/barcode/{code}.
func (h *Handler) LookupBarcode(w http.ResponseWriter, r *http.Request) {
	code := strings.TrimPrefix(r.URL.Path, "/api/foods/barcode/")
	code = strings.TrimSpace(code)
	if code == "" {
		httputil.WriteError(w, http.StatusBadRequest, "barcode is required")
		return
	}

	f, err := h.orchestrator.LookupBarcode(code)
	if err != nil {
		httputil.WriteAppError(w, err)
		return
	}
	if f == nil {
		httputil.WriteError(w, http.StatusNotFound, "no food found for barcode "+code)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, f)
}
