package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/MrSnakeDoc/vitae/internal/domain"
	"github.com/MrSnakeDoc/vitae/internal/httpserver/deps"
	"github.com/MrSnakeDoc/vitae/internal/logger"
	"github.com/MrSnakeDoc/vitae/internal/store"
)

type resumeItem struct {
	Filename string `json:"filename"`
	Name     string `json:"name"`
	Modified string `json:"modified"`
	Path     string `json:"path"`
}

type listResponse struct {
	Success         bool         `json:"success"`
	Message         string       `json:"message,omitempty"`
	Resumes         []resumeItem `json:"resumes"`
	CurrentFilename *string      `json:"current_filename"`
}

type documentResponse struct {
	Success         bool           `json:"success"`
	Message         string         `json:"message"`
	ResumeData      *domain.Resume `json:"resume_data"`
	CurrentFilename *string        `json:"current_filename,omitempty"`
}

type filenameRequest struct {
	Filename string `json:"filename" validate:"required"`
}

type saveRequest struct {
	Filename string `json:"filename"`
	SaveAs   bool   `json:"save_as"`
}

type saveResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	Filename string `json:"filename"`
}

// nullable maps "" to JSON null, matching an unset current file.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// ListResumes handles GET /api/resumes.
func ListResumes(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, current, err := d.Session.List(r.Context())
		if err != nil {
			d.Logger.Error("list resumes failed", logger.Error(err))
			writeJSON(w, http.StatusOK, listResponse{
				Message: "Failed to list resumes",
				Resumes: []resumeItem{},
			})
			return
		}

		items := make([]resumeItem, 0, len(list))
		for _, s := range list {
			items = append(items, resumeItem{
				Filename: s.ID,
				Name:     s.Name,
				Modified: s.Modified.Format(store.ModifiedLayout),
				Path:     s.Path,
			})
		}
		writeJSON(w, http.StatusOK, listResponse{
			Success:         true,
			Resumes:         items,
			CurrentFilename: nullable(current),
		})
	}
}

// NewResume handles POST /api/resume/new.
func NewResume(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc := d.Session.New()
		writeJSON(w, http.StatusOK, documentResponse{
			Success:    true,
			Message:    "New resume created",
			ResumeData: doc,
		})
	}
}

// LoadResume handles POST /api/resume/load.
func LoadResume(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req filenameRequest
		if !decode(w, r, d, &req) {
			return
		}
		if err := validate.Struct(req); err != nil {
			fail(w, "Filename is required")
			return
		}

		doc, id, err := d.Session.Load(r.Context(), req.Filename)
		if err != nil {
			fail(w, fmt.Sprintf("Failed to load resume '%s'", req.Filename))
			return
		}
		writeJSON(w, http.StatusOK, documentResponse{
			Success:         true,
			Message:         fmt.Sprintf("Resume '%s' loaded successfully", id),
			ResumeData:      doc,
			CurrentFilename: nullable(id),
		})
	}
}

// SaveResume handles POST /api/resume/save.
func SaveResume(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req saveRequest
		if !decode(w, r, d, &req) {
			return
		}

		id, err := d.Session.Save(r.Context(), req.Filename, req.SaveAs)
		if err != nil {
			fail(w, "Failed to save resume")
			return
		}
		writeJSON(w, http.StatusOK, saveResponse{
			Success:  true,
			Message:  fmt.Sprintf("Resume saved as '%s'", id),
			Filename: id,
		})
	}
}

// DeleteResume handles DELETE /api/resume/delete.
func DeleteResume(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req filenameRequest
		if !decode(w, r, d, &req) {
			return
		}
		if err := validate.Struct(req); err != nil {
			fail(w, "Filename is required")
			return
		}

		err := d.Session.Delete(r.Context(), req.Filename)
		switch {
		case err == nil:
			ok(w, "Resume deleted successfully")
		case errors.Is(err, store.ErrNotFound), errors.Is(err, store.ErrInvalidID):
			fail(w, "Resume file not found")
		default:
			d.Logger.Error("delete resume failed", logger.String("filename", req.Filename), logger.Error(err))
			fail(w, fmt.Sprintf("Error deleting resume: %v", err))
		}
	}
}
