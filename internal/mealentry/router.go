package mealentry

import (
	"net/http"

	"grub-core/internal/httputil"
)

// RegisterRoutes registers the /api/meals surface.
func RegisterRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("/api/meals", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			httputil.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		handler.CreateEntry(w, r)
	})

	mux.HandleFunc("/api/meals/", httputil.ExtractPathID(2)(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPut:
			handler.UpdateEntry(w, r)
		case http.MethodDelete:
			handler.DeleteEntry(w, r)
		default:
			httputil.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
		}
	}))
}
