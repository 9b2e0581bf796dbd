package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/MrSnakeDoc/vitae/internal/httpserver/deps"
	"github.com/MrSnakeDoc/vitae/internal/logger"
)

const maxBodyBytes = 1 << 20

var validate = validator.New(validator.WithRequiredStructEnabled())

// result is the envelope every API action answers with. Expected failures
// (missing file, storage error) are reported with Success=false and a 200.
type result struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

func ok(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusOK, result{Success: true, Message: msg})
}

func fail(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusOK, result{Success: false, Message: msg})
}

func notFound(w http.ResponseWriter) {
	writeJSON(w, http.StatusNotFound, result{Success: false, Error: http.StatusText(http.StatusNotFound)})
}

// decode reads a JSON body into dst. An empty body decodes to the zero
// value; malformed JSON is answered with 400 and reported as false.
func decode(w http.ResponseWriter, r *http.Request, d deps.Deps, dst any) bool {
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}
	d.Logger.Debug("invalid request body", logger.String("path", r.URL.Path), logger.Error(err))
	writeJSON(w, http.StatusBadRequest, result{Success: false, Message: "Invalid JSON body"})
	return false
}
