package handlers

import (
	"errors"
	"mime"
	"net/http"
	"strconv"

	"github.com/MrSnakeDoc/vitae/internal/httpserver/deps"
	"github.com/MrSnakeDoc/vitae/internal/render"
	"github.com/MrSnakeDoc/vitae/internal/session"
)

// Data handles GET /api/data: the open document in canonical order.
func Data(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, d.Session.Data())
	}
}

// ExportPDF handles GET /api/export/pdf.
func ExportPDF(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := d.Session.ExportPDF(r.Context())
		sendArtifact(w, a, err, "PDF")
	}
}

// ExportHTML handles GET /api/export/html.
func ExportHTML(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := d.Session.ExportHTML(r.Context())
		sendArtifact(w, a, err, "HTML")
	}
}

func sendArtifact(w http.ResponseWriter, a *session.Artifact, err error, format string) {
	if err != nil {
		var rerr *render.Error
		if !errors.As(err, &rerr) {
			rerr = &render.Error{Format: format, Message: err.Error(), Cause: err}
		}
		writeJSON(w, http.StatusInternalServerError, result{Success: false, Error: rerr.Error()})
		return
	}

	w.Header().Set("Content-Type", a.ContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": a.Name}))
	w.Header().Set("Content-Length", strconv.Itoa(len(a.Body)))
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(a.Body)
}
