package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/vitae/internal/httpserver/deps"
	"github.com/MrSnakeDoc/vitae/internal/logger"
)

const pingTimeout = 2 * time.Second

type readyzResponse struct {
	Ready bool   `json:"ready"`
	Store string `json:"store"`
	Error string `json:"error,omitempty"`
}

// Readyz answers 503 until the resume store is reachable.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
		defer cancel()

		if err := d.Store.Ping(ctx); err != nil {
			d.Logger.Warn("readiness check failed", logger.String("store", d.Store.Kind()), logger.Error(err))
			writeJSON(w, http.StatusServiceUnavailable, readyzResponse{Store: d.Store.Kind(), Error: err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, readyzResponse{Ready: true, Store: d.Store.Kind()})
	}
}
