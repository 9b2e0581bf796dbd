// Package store defines how resumes are persisted as named JSON documents.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"slices"
	"strings"
	"time"

	"github.com/MrSnakeDoc/vitae/internal/domain"
	"github.com/MrSnakeDoc/vitae/internal/schema"
)

const (
	// Ext is the extension of every stored document identifier.
	Ext = ".json"
	// UntitledName is listed for documents without a basics.name key.
	UntitledName = "Untitled Resume"
	// ModifiedLayout formats Summary.Modified for display.
	ModifiedLayout = "2006-01-02 15:04:05"
)

var (
	// ErrNotFound is returned when an identifier does not exist.
	ErrNotFound = errors.New("resume not found")
	// ErrInvalidID is returned for identifiers that are not plain file names.
	ErrInvalidID = errors.New("invalid resume identifier")
	// ErrInvalidDocument is returned when a stored document fails schema validation.
	ErrInvalidDocument = errors.New("invalid resume document")
)

// Store persists resumes under string identifiers ("Ada_2024-01-01_10-00-00.json").
type Store interface {
	// List returns every readable document, newest-modified first.
	List(ctx context.Context) ([]Summary, error)
	Load(ctx context.Context, id string) (*domain.Resume, error)
	Save(ctx context.Context, id string, r *domain.Resume) error
	Delete(ctx context.Context, id string) error
	// Ping reports whether the backend is reachable.
	Ping(ctx context.Context) error
	// Kind names the backend ("file", "redis").
	Kind() string
}

// Summary describes a stored document in listings.
type Summary struct {
	ID       string
	Name     string
	Modified time.Time
	Path     string // backend location: file path or redis key
}

// NormalizeID validates an identifier and appends the .json extension when missing.
func NormalizeID(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" || id == "." || id == ".." ||
		strings.HasPrefix(id, ".") ||
		strings.ContainsAny(id, `/\`) ||
		strings.ContainsRune(id, 0) {
		return "", fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	if path.Ext(id) != Ext {
		id += Ext
	}
	return id, nil
}

// Encode writes the document as pretty-printed JSON (4 spaces, no HTML escaping).
func Encode(r *domain.Resume) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(r); err != nil {
		return nil, fmt.Errorf("failed to encode resume: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode validates a stored document against the schema and decodes it.
// The decoded document is already sorted.
func Decode(data []byte) (*domain.Resume, error) {
	if err := schema.Validate(data); err != nil {
		var verr *schema.ValidationError
		if errors.As(err, &verr) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, verr)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	var r domain.Resume
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return &r, nil
}

// DisplayName extracts basics.name for listings without decoding the
// whole document. Missing keys yield UntitledName; an explicit empty
// name is kept as is.
func DisplayName(data []byte) (string, error) {
	var head struct {
		Basics struct {
			Name *string `json:"name"`
		} `json:"basics"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return "", err
	}
	if head.Basics.Name == nil {
		return UntitledName, nil
	}
	return *head.Basics.Name, nil
}

// SortSummaries orders listings newest-modified first.
func SortSummaries(s []Summary) {
	slices.SortStableFunc(s, func(a, b Summary) int {
		return b.Modified.Compare(a.Modified)
	})
}
