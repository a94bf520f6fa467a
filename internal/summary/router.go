package summary

import (
	"net/http"

	"grub-core/internal/httputil"
)

// RegisterRoutes registers the /api/summary and /api/watch surfaces, one
// HandleFunc per path.
func RegisterRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("/api/summary/average", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			httputil.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		handler.CalorieAverage(w, r)
	})

	mux.HandleFunc("/api/summary/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			httputil.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		handler.DailySummary(w, r)
	})

	mux.HandleFunc("/api/watch/glance", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			httputil.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		handler.Glance(w, r)
	})
	mux.HandleFunc("/api/watch/glance/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			httputil.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		handler.Glance(w, r)
	})

	mux.HandleFunc("/api/watch/recent", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			httputil.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		handler.Recent(w, r)
	})

	mux.HandleFunc("/api/watch/quick-log", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			httputil.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		handler.QuickLog(w, r)
	})
}
