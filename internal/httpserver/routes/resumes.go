package routes

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MrSnakeDoc/vitae/internal/httpserver/deps"
	"github.com/MrSnakeDoc/vitae/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/vitae/internal/httpserver/mw"
)

func init() { Register("resumes", registerResumes, middleware.AllowContentType("application/json")) }

func registerResumes(r chi.Router, d deps.Deps) {
	api := r.With(mw.EnforceHost(d.AllowedHosts, d.Logger))
	api.Get("/api/resumes", handlers.ListResumes(d))
	api.Post("/api/resume/new", handlers.NewResume(d))
	api.Post("/api/resume/load", handlers.LoadResume(d))
	api.Post("/api/resume/save", handlers.SaveResume(d))
	api.Delete("/api/resume/delete", handlers.DeleteResume(d))
	api.Get("/api/data", handlers.Data(d))
}
