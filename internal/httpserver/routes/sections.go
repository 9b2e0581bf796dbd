package routes

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MrSnakeDoc/vitae/internal/httpserver/deps"
	"github.com/MrSnakeDoc/vitae/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/vitae/internal/httpserver/mw"
)

func init() { Register("sections", registerSections, middleware.AllowContentType("application/json")) }

func registerSections(r chi.Router, d deps.Deps) {
	api := r.With(mw.EnforceHost(d.AllowedHosts, d.Logger))
	api.Post("/api/basics", handlers.UpdateBasics(d))
	api.Post("/api/work", handlers.UpsertWork(d))
	api.Delete("/api/work/{id}", handlers.DeleteWork(d))
	api.Post("/api/education", handlers.UpsertEducation(d))
	api.Delete("/api/education/{id}", handlers.DeleteEducation(d))
	api.Post("/api/skills", handlers.AddSkill(d))
	api.Delete("/api/skills/{index:[0-9]+}", handlers.DeleteSkill(d))
}
