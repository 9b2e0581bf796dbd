package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/vitae/internal/httpserver/deps"
	"github.com/MrSnakeDoc/vitae/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/vitae/internal/httpserver/mw"
)

func init() { Register("export", registerExport) }

// Renders are the only expensive routes, so they share one rate limiter.
func registerExport(r chi.Router, d deps.Deps) {
	limit := mw.RateLimit(mw.RateLimitConfig{
		Burst:             d.ExportBurst,
		RefillPerIPPerMin: d.ExportPerMinute,
		MaxEntries:        10_000,
		TrustProxy:        d.TrustProxy,
	}, d.Logger)

	api := r.With(mw.EnforceHost(d.AllowedHosts, d.Logger), limit)
	api.Get("/api/export/pdf", handlers.ExportPDF(d))
	api.Get("/api/export/html", handlers.ExportHTML(d))
}
