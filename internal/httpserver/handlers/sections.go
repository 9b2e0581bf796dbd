package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/vitae/internal/domain"
	"github.com/MrSnakeDoc/vitae/internal/httpserver/deps"
	"github.com/MrSnakeDoc/vitae/internal/logger"
)

type idResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ID      string `json:"id"`
}

type skillRequest struct {
	Name string `json:"name" validate:"required"`
}

// persisted answers a mutation. The change stays in memory when saving
// fails, so the client is told the save did not happen.
func persisted(w http.ResponseWriter, d deps.Deps, err error, msg string) bool {
	if err != nil {
		d.Logger.Error("persist after mutation failed", logger.Error(err))
		fail(w, "Failed to save resume")
		return false
	}
	if msg != "" {
		ok(w, msg)
	}
	return true
}

// UpdateBasics handles POST /api/basics.
func UpdateBasics(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in domain.BasicsInput
		if !decode(w, r, d, &in) {
			return
		}
		persisted(w, d, d.Session.UpdateBasics(r.Context(), in), "Basic information updated successfully")
	}
}

// UpsertWork handles POST /api/work.
func UpsertWork(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in domain.WorkInput
		if !decode(w, r, d, &in) {
			return
		}
		id, err := d.Session.UpsertWork(r.Context(), in)
		if persisted(w, d, err, "") {
			writeJSON(w, http.StatusOK, idResponse{Success: true, Message: "Work experience added successfully", ID: id})
		}
	}
}

// DeleteWork handles DELETE /api/work/{id}. Unknown ids succeed.
func DeleteWork(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := d.Session.DeleteWork(r.Context(), chi.URLParam(r, "id"))
		persisted(w, d, err, "Work experience deleted successfully")
	}
}

// UpsertEducation handles POST /api/education.
func UpsertEducation(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in domain.EducationInput
		if !decode(w, r, d, &in) {
			return
		}
		id, err := d.Session.UpsertEducation(r.Context(), in)
		if persisted(w, d, err, "") {
			writeJSON(w, http.StatusOK, idResponse{Success: true, Message: "Education entry added successfully", ID: id})
		}
	}
}

// DeleteEducation handles DELETE /api/education/{id}.
func DeleteEducation(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := d.Session.DeleteEducation(r.Context(), chi.URLParam(r, "id"))
		persisted(w, d, err, "Education entry deleted successfully")
	}
}

// AddSkill handles POST /api/skills. Duplicates are ignored but still succeed.
func AddSkill(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req skillRequest
		if !decode(w, r, d, &req) {
			return
		}
		if err := validate.Struct(req); err != nil {
			fail(w, "Skill name is required")
			return
		}
		_, err := d.Session.AddSkill(r.Context(), req.Name)
		persisted(w, d, err, "Skill added successfully")
	}
}

// DeleteSkill handles DELETE /api/skills/{index}. The route only matches
// digits; an index that overflows int is a JSON 404.
func DeleteSkill(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		index, err := strconv.Atoi(chi.URLParam(r, "index"))
		if err != nil {
			notFound(w)
			return
		}
		persisted(w, d, d.Session.DeleteSkill(r.Context(), index), "Skill deleted successfully")
	}
}
