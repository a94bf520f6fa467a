package weight

import (
	"net/http"

	"grub-core/internal/httputil"
)

// RegisterRoutes registers the /api/weight surface.
func RegisterRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("/api/weight", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			handler.ListEntries(w, r)
		case http.MethodPost:
			handler.UpsertEntry(w, r)
		default:
			httputil.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
		}
	})

	mux.HandleFunc("/api/weight/entry/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			httputil.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		handler.DeleteEntry(w, r)
	})

	mux.HandleFunc("/api/weight/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			httputil.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		handler.GetEntry(w, r)
	})
}
