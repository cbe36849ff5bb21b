package handler

import (
	"context"
	"net/http"

	"fieldscout/internal/api/response"
	"fieldscout/internal/cache"
	"fieldscout/internal/history"
)

// NewRootHandler returns the handler for GET /, a bare liveness signal.
func NewRootHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.JSON(w, map[string]string{
			"status":  "online",
			"message": "Precision Agriculture AI API is running",
		})
	}
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// NewHealthHandler returns the handler for GET /api/v1/health. It pings the
// history backend and the cache; a failing dependency degrades the status
// but keeps the endpoint at 200 since the analysis path can still function.
func NewHealthHandler(store history.Store, c cache.Cache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := map[string]string{
			"history": checkStatus(r.Context(), store.Ping),
			"cache":   checkStatus(r.Context(), c.Ping),
		}

		status := "ok"
		for _, v := range checks {
			if v != "ok" {
				status = "degraded"
			}
		}

		response.JSON(w, healthResponse{Status: status, Checks: checks})
	}
}

func checkStatus(ctx context.Context, ping func(context.Context) error) string {
	if err := ping(ctx); err != nil {
		return err.Error()
	}
	return "ok"
}
