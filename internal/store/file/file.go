// Package file stores resumes as pretty-printed JSON files in one directory.
package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/MrSnakeDoc/vitae/internal/domain"
	"github.com/MrSnakeDoc/vitae/internal/logger"
	"github.com/MrSnakeDoc/vitae/internal/store"
)

// Store keeps one file per resume in dir.
type Store struct {
	dir    string
	logger logger.Logger
}

var _ store.Store = (*Store)(nil)

// New creates dir when missing and returns a Store rooted there.
func New(dir string, log logger.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create resumes directory: %w", err)
	}
	return &Store{dir: dir, logger: log}, nil
}

// Kind implements store.Store.
func (s *Store) Kind() string { return "file" }

// Dir returns the directory holding the documents.
func (s *Store) Dir() string { return s.dir }

// Ping checks that the directory is still there.
func (s *Store) Ping(_ context.Context) error {
	info, err := os.Stat(s.dir)
	if err != nil {
		return fmt.Errorf("resumes directory unavailable: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("resumes path %s is not a directory", s.dir)
	}
	return nil
}

// List returns every readable *.json document, newest first.
// Unreadable or unparsable files are skipped.
func (s *Store) List(ctx context.Context) ([]store.Summary, error) {
	matches, err := filepath.Glob(filepath.Join(s.dir, "*"+store.Ext))
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}

	summaries := make([]store.Summary, 0, len(matches))
	for _, p := range matches {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if strings.HasPrefix(filepath.Base(p), ".") {
			continue
		}
		info, err := os.Stat(p)
		if err != nil || info.IsDir() {
			continue
		}
		data, err := os.ReadFile(p)
		if err != nil {
			s.logger.Debug("skipping unreadable resume", logger.String("path", p), logger.Error(err))
			continue
		}
		name, err := store.DisplayName(data)
		if err != nil {
			s.logger.Debug("skipping unparsable resume", logger.String("path", p), logger.Error(err))
			continue
		}

		summaries = append(summaries, store.Summary{
			ID:       filepath.Base(p),
			Name:     name,
			Modified: info.ModTime(),
			Path:     p,
		})
	}

	store.SortSummaries(summaries)
	return summaries, nil
}

// Load reads, validates and decodes a document.
func (s *Store) Load(_ context.Context, id string) (*domain.Resume, error) {
	p, err := s.path(id)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", store.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to read resume: %w", err)
	}

	return store.Decode(data)
}

// Save writes the document atomically (temp file + rename).
func (s *Store) Save(_ context.Context, id string, r *domain.Resume) error {
	p, err := s.path(id)
	if err != nil {
		return err
	}

	data, err := store.Encode(r)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, ".resume-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }() // no-op once renamed

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write resume: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write resume: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("failed to set resume permissions: %w", err)
	}
	if err := os.Rename(tmpName, p); err != nil {
		return fmt.Errorf("failed to save resume: %w", err)
	}
	return nil
}

// Delete removes a document; a missing file is ErrNotFound.
func (s *Store) Delete(_ context.Context, id string) error {
	p, err := s.path(id)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", store.ErrNotFound, id)
		}
		return fmt.Errorf("failed to delete resume: %w", err)
	}
	return nil
}

func (s *Store) path(id string) (string, error) {
	id, err := store.NormalizeID(id)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.dir, id), nil
}
