package food

import (
	"net/http"

	"grub-core/internal/httputil"
)

// RegisterRoutes registers the /api/foods surface, one HandleFunc per path.
func RegisterRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("/api/foods/search", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			httputil.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		handler.SearchFoods(w, r)
	})

	mux.HandleFunc("/api/foods/barcode/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			httputil.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		handler.LookupBarcode(w, r)
	})

	mux.HandleFunc("/api/foods", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			httputil.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		handler.CreateFood(w, r)
	})
}
