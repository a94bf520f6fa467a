package recipe

import (
	"encoding/json"
	"net/http"

	"grub-core/internal/httputil"
	"grub-core/internal/validate"
)

// Handler serves the /api/recipes surface.
type Handler struct {
	repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// CreateRecipe handles POST /api/recipes.
func (h *Handler) CreateRecipe(w http.ResponseWriter, r *http.Request) {
	var req CreateRecipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := validate.Recipe(req.Portions); err != nil {
		httputil.WriteAppError(w, err)
		return
	}
	for _, ing := range req.Ingredients {
		if err := validate.RecipeIngredient(ing.QuantityG); err != nil {
			httputil.WriteAppError(w, err)
			return
		}
	}

	rec, err := h.repo.Create(req)
	if err != nil {
		httputil.WriteAppError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, rec)
}

// GetRecipe handles GET /api/recipes/{id}.
func (h *Handler) GetRecipe(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.GetPathID(r)
	if !ok {
		httputil.WriteError(w, http.StatusBadRequest, "recipe id required")
		return
	}

	rec, err := h.repo.GetByID(uint(id))
	if err != nil {
		httputil.WriteAppError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, rec)
}

// ListRecipes handles GET /api/recipes.
func (h *Handler) ListRecipes(w http.ResponseWriter, r *http.Request) {
	recipes, err := h.repo.GetAll()
	if err != nil {
		httputil.WriteAppError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, recipes)
}

// UpdateRecipe handles PUT /api/recipes/{id}.
func (h *Handler) UpdateRecipe(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.GetPathID(r)
	if !ok {
		httputil.WriteError(w, http.StatusBadRequest, "recipe id required")
		return
	}

	var req UpdateRecipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Portions != nil {
		if err := validate.Recipe(*req.Portions); err != nil {
			httputil.WriteAppError(w, err)
			return
		}
	}
	if req.Ingredients != nil {
		for _, ing := range *req.Ingredients {
			if err := validate.RecipeIngredient(ing.QuantityG); err != nil {
				httputil.WriteAppError(w, err)
				return
			}
		}
	}

	rec, err := h.repo.Update(uint(id), req)
	if err != nil {
		httputil.WriteAppError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, rec)
}

// DeleteRecipe handles DELETE /api/recipes/{id}.
func (h *Handler) DeleteRecipe(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.GetPathID(r)
	if !ok {
		httputil.WriteError(w, http.StatusBadRequest, "recipe id required")
		return
	}

	if err := h.repo.Delete(uint(id)); err != nil {
		httputil.WriteAppError(w, err)
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, "recipe deleted")
}

// AddIngredient handles POST /api/recipes/{id}/ingredients.
func (h *Handler) AddIngredient(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.GetPathID(r)
	if !ok {
		httputil.WriteError(w, http.StatusBadRequest, "recipe id required")
		return
	}

	var req CreateIngredientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.RecipeIngredient(req.QuantityG); err != nil {
		httputil.WriteAppError(w, err)
		return
	}

	rec, err := h.repo.AddIngredient(uint(id), req)
	if err != nil {
		httputil.WriteAppError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, rec)
}

// UpdateIngredient handles PUT /api/recipes/{recipeId}/ingredients/{ingredientId}.
func (h *Handler) UpdateIngredient(w http.ResponseWriter, r *http.Request) {
	recipeID, ok := httputil.GetPathID(r)
	if !ok {
		httputil.WriteError(w, http.StatusBadRequest, "recipe id required")
		return
	}
	ingredientID, ok := httputil.GetSecondaryPathID(r)
	if !ok {
		httputil.WriteError(w, http.StatusBadRequest, "ingredient id required")
		return
	}

	var req struct {
		QuantityG float64 `json:"quantity_g"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.RecipeIngredient(req.QuantityG); err != nil {
		httputil.WriteAppError(w, err)
		return
	}

	rec, err := h.repo.UpdateIngredient(uint(recipeID), uint(ingredientID), req.QuantityG)
	if err != nil {
		httputil.WriteAppError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, rec)
}

// DeleteIngredient handles DELETE /api/recipes/{recipeId}/ingredients/{ingredientId}.
func (h *Handler) DeleteIngredient(w http.ResponseWriter, r *http.Request) {
	recipeID, ok := httputil.GetPathID(r)
	if !ok {
		httputil.WriteError(w, http.StatusBadRequest, "recipe id required")
		return
	}
	ingredientID, ok := httputil.GetSecondaryPathID(r)
	if !ok {
		httputil.WriteError(w, http.StatusBadRequest, "ingredient id required")
		return
	}

	rec, err := h.repo.RemoveIngredient(uint(recipeID), uint(ingredientID))
	if err != nil {
		httputil.WriteAppError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, rec)
}
