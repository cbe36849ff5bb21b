package handler

import (
	"log/slog"
	"net/http"

	"fieldscout/internal/api/response"
	"fieldscout/internal/dashboard"
	"fieldscout/internal/history"
	"fieldscout/internal/observability"
)

// NewDashboardHandler returns the handler for GET /dashboard-stats.
func NewDashboardHandler(store history.Store, metrics *observability.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := store.Load(r.Context())
		if err != nil {
			slog.Error("loading history for dashboard", "error", err)
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Could not load scan history", nil)
			return
		}
		if metrics != nil {
			metrics.HistoryEntries.Set(float64(len(entries)))
		}

		response.JSON(w, dashboard.Build(entries))
	}
}
