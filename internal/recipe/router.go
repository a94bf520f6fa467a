package recipe

import (
	"net/http"

	"grub-core/internal/httputil"
)

// RegisterRoutes registers the /api/recipes surface, dispatching nested
// resources by counting path segments.
func RegisterRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("/api/recipes", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/recipes" {
			http.NotFound(w, r)
			return
		}

		switch r.Method {
		case http.MethodGet:
			handler.ListRecipes(w, r)
		case http.MethodPost:
			handler.CreateRecipe(w, r)
		default:
			httputil.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
		}
	})

	mux.HandleFunc("/api/recipes/", func(w http.ResponseWriter, r *http.Request) {
		switch len(splitPath(r.URL.Path)) {
		case 3:
			// /api/recipes/{id}
			handleRecipeDetail(w, r, handler)
		case 4:
			// /api/recipes/{id}/ingredients
			if getPathSegment(r.URL.Path, 3) == "ingredients" {
				handleRecipeIngredients(w, r, handler)
			} else {
				http.NotFound(w, r)
			}
		case 5:
			// /api/recipes/{id}/ingredients/{ingredientId}
			if getPathSegment(r.URL.Path, 3) == "ingredients" {
				handleIngredientDetail(w, r, handler)
			} else {
				http.NotFound(w, r)
			}
		default:
			http.NotFound(w, r)
		}
	})
}

func handleRecipeDetail(w http.ResponseWriter, r *http.Request, handler *Handler) {
	switch r.Method {
	case http.MethodGet:
		httputil.ChainMiddleware(handler.GetRecipe, httputil.ExtractPathID(2))(w, r)
	case http.MethodPut:
		httputil.ChainMiddleware(handler.UpdateRecipe, httputil.ExtractPathID(2))(w, r)
	case http.MethodDelete:
		httputil.ChainMiddleware(handler.DeleteRecipe, httputil.ExtractPathID(2))(w, r)
	default:
		httputil.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func handleRecipeIngredients(w http.ResponseWriter, r *http.Request, handler *Handler) {
	switch r.Method {
	case http.MethodPost:
		httputil.ChainMiddleware(handler.AddIngredient, httputil.ExtractPathID(2))(w, r)
	default:
		httputil.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func handleIngredientDetail(w http.ResponseWriter, r *http.Request, handler *Handler) {
	switch r.Method {
	case http.MethodPut:
		httputil.ChainMiddleware(handler.UpdateIngredient, httputil.ExtractTwoPathIDs(2, 4))(w, r)
	case http.MethodDelete:
		httputil.ChainMiddleware(handler.DeleteIngredient, httputil.ExtractTwoPathIDs(2, 4))(w, r)
	default:
		httputil.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// splitPath splits a URL path into non-empty segments.
func splitPath(path string) []string {
	segments := []string{}
	current := ""

	for i := 0; i < len(path); i++ {
		if path[i] == '/' {
			if current != "" {
				segments = append(segments, current)
				current = ""
			}
		} else {
			current += string(path[i])
		}
	}

	if current != "" {
		segments = append(segments, current)
	}

	return segments
}

func getPathSegment(path string, index int) string {
	segments := splitPath(path)
	if index < len(segments) {
		return segments[index]
	}
	return ""
}
