package summary

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"grub-core/internal/httputil"
)

const defaultCalorieAverageDays = 7

// Handler serves the /api/summary and /api/watch surfaces.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// DailySummary handles GET /api/summary/{date}.
func (h *Handler) DailySummary(w http.ResponseWriter, r *http.Request) {
	date := strings.TrimPrefix(r.URL.Path, "/api/summary/")
	if date == "" {
		httputil.WriteError(w, http.StatusBadRequest, "date is required")
		return
	}

	summary, err := h.svc.DailySummary(date)
	if err != nil {
		httputil.WriteAppError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, summary)
}

// Glance handles GET /api/watch/glance and GET /api/watch/glance/{date};
// an absent date defaults to today (UTC).
func (h *Handler) Glance(w http.ResponseWriter, r *http.Request) {
	date := strings.TrimPrefix(r.URL.Path, "/api/watch/glance")
	date = strings.TrimPrefix(date, "/")
	if date == "" {
		date = time.Now().UTC().Format("2006-01-02")
	}

	glance, err := h.svc.Glance(date)
	if err != nil {
		httputil.WriteAppError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, glance)
}

// Recent handles GET /api/watch/recent?limit=N.
func (h *Handler) Recent(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			httputil.WriteError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	foods, err := h.svc.RecentFoods(limit)
	if err != nil {
		httputil.WriteAppError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, foods)
}

// QuickLog handles POST /api/watch/quick-log.
func (h *Handler) QuickLog(w http.ResponseWriter, r *http.Request) {
	var req QuickLogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entry, err := h.svc.QuickLog(req)
	if err != nil {
		httputil.WriteAppError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, entry)
}

// CalorieAverage handles GET /api/summary/average?days=N, an enrichment
// beyond the base REST table exposing the rolling calorie average (spec
// §4.4) directly instead of requiring the client to derive it itself.
func (h *Handler) CalorieAverage(w http.ResponseWriter, r *http.Request) {
	days := defaultCalorieAverageDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			httputil.WriteError(w, http.StatusBadRequest, "days must be a positive integer")
			return
		}
		days = n
	}
	today := time.Now().UTC().Format("2006-01-02")
	if raw := r.URL.Query().Get("date"); raw != "" {
		today = raw
	}

	avg, err := h.svc.CalorieAverage(today, days)
	if err != nil {
		httputil.WriteAppError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]float64{"average_calories": avg})
}
