package handlers

import (
	"context"
	"net/http"

	"github.com/MrSnakeDoc/vitae/internal/httpserver/deps"
)

type componentStatus struct {
	OK      bool   `json:"ok"`
	Mode    string `json:"mode,omitempty"`
	Current string `json:"current,omitempty"`
	Impact  string `json:"impact,omitempty"`
	Error   string `json:"error,omitempty"`
}

type infraResponse struct {
	Status     string                     `json:"status"`
	Components map[string]componentStatus `json:"components"`
}

func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		components := map[string]componentStatus{
			"store": checkStore(r.Context(), d),
			"renderer": {
				OK:   true,
				Mode: d.PDFEngine,
			},
			"session": {
				OK:      true,
				Current: d.Session.CurrentID(),
			},
		}
		if d.RedisClient != nil {
			components["redis"] = checkRedis(r.Context(), d)
		}

		writeJSON(w, http.StatusOK, infraResponse{
			Status:     determineStatus(components),
			Components: components,
		})
	}
}

func determineStatus(components map[string]componentStatus) string {
	if store, exists := components["store"]; exists && !store.OK {
		return "critical" // nothing can be loaded or saved
	}
	return "operational"
}

func checkStore(ctx context.Context, d deps.Deps) componentStatus {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := d.Store.Ping(ctx); err != nil {
		return componentStatus{
			OK:     false,
			Mode:   d.Store.Kind(),
			Impact: "load-and-save-disabled",
			Error:  err.Error(),
		}
	}
	return componentStatus{OK: true, Mode: d.Store.Kind()}
}

func checkRedis(ctx context.Context, d deps.Deps) componentStatus {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := d.RedisClient.Ping(ctx).Err(); err != nil {
		return componentStatus{
			OK:    false,
			Mode:  "degraded",
			Error: "timeout",
		}
	}
	stats := d.RedisClient.PoolStats()
	if stats.Timeouts > 0 {
		return componentStatus{OK: true, Mode: "degraded", Impact: "pool-timeouts"}
	}
	return componentStatus{OK: true, Mode: "optimal"}
}
