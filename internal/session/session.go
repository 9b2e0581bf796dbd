// Package session holds the single open resume and serializes every
// mutate+persist sequence behind one lock.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MrSnakeDoc/vitae/internal/domain"
	"github.com/MrSnakeDoc/vitae/internal/logger"
	"github.com/MrSnakeDoc/vitae/internal/render"
	"github.com/MrSnakeDoc/vitae/internal/store"
)

// Session is the editing context: one document, the identifier it was
// loaded from or last saved to, and the collaborators used to persist
// and render it.
type Session struct {
	mu        sync.Mutex
	doc       *domain.Resume
	currentID string // "" until the document is loaded or first saved

	store    store.Store
	renderer *render.Renderer
	log      logger.Logger
	now      func() time.Time
}

// Option customizes a Session.
type Option func(*Session)

// WithClock replaces time.Now, used for synthesized identifiers.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// New opens a session on an empty document.
func New(st store.Store, r *render.Renderer, log logger.Logger, opts ...Option) *Session {
	s := &Session{
		doc:      domain.NewResume(),
		store:    st,
		renderer: r,
		log:      log,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ─────────────────────────────────────────────────────────────────
// Document lifecycle
// ─────────────────────────────────────────────────────────────────

// List returns the stored documents and the current identifier.
func (s *Session) List(ctx context.Context) ([]store.Summary, string, error) {
	list, err := s.store.List(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("list resumes: %w", err)
	}
	return list, s.CurrentID(), nil
}

// New discards the open document and starts an unsaved empty one.
func (s *Session) New() *domain.Resume {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.doc = domain.NewResume()
	s.currentID = ""
	s.log.Info("new resume created")
	return s.doc.Clone()
}

// Load replaces the open document with a stored one. On failure the
// open document is left untouched.
func (s *Session) Load(ctx context.Context, id string) (*domain.Resume, string, error) {
	id, err := store.NormalizeID(id)
	if err != nil {
		return nil, "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.store.Load(ctx, id)
	if err != nil {
		s.log.Warn("resume load failed", logger.String("id", id), logger.Error(err))
		return nil, "", err
	}
	doc.Sort()
	s.doc = doc
	s.currentID = id
	s.log.Info("resume loaded", logger.String("id", id))
	return s.doc.Clone(), id, nil
}

// Save persists the open document and returns the identifier used.
//
// An explicit id wins, then the current id, then a synthesized one. The
// current id only changes when saveAs is set or none was set yet.
func (s *Session) Save(ctx context.Context, id string, saveAs bool) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(ctx, id, saveAs)
}

func (s *Session) saveLocked(ctx context.Context, id string, saveAs bool) (string, error) {
	s.doc.Sort()

	switch {
	case id != "":
		normalized, err := store.NormalizeID(id)
		if err != nil {
			return "", err
		}
		id = normalized
	case s.currentID != "":
		id = s.currentID
	default:
		id = domain.SynthesizeID(s.doc.Basics.Name, s.now())
	}

	if err := s.store.Save(ctx, id, s.doc); err != nil {
		s.log.Error("resume save failed", logger.String("id", id), logger.Error(err))
		return "", fmt.Errorf("save %s: %w", id, err)
	}
	if saveAs || s.currentID == "" {
		s.currentID = id
	}
	s.log.Debug("resume saved", logger.String("id", id), logger.String("backend", s.store.Kind()))
	return id, nil
}

// Delete removes a stored document. The open document and the current
// identifier are not affected.
func (s *Session) Delete(ctx context.Context, id string) error {
	id, err := store.NormalizeID(id)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("resume deleted", logger.String("id", id))
	return nil
}

// Data returns a sorted snapshot of the open document.
func (s *Session) Data() *domain.Resume {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.doc.Sort()
	return s.doc.Clone()
}

func (s *Session) CurrentID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentID
}

// ─────────────────────────────────────────────────────────────────
// Mutators: each one persists the document after mutating it
// ─────────────────────────────────────────────────────────────────

// mutate applies fn and saves. A failed save keeps the in-memory change.
func (s *Session) mutate(ctx context.Context, fn func(doc *domain.Resume)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	fn(s.doc)
	_, err := s.saveLocked(ctx, "", false)
	return err
}

func (s *Session) UpdateBasics(ctx context.Context, in domain.BasicsInput) error {
	return s.mutate(ctx, func(doc *domain.Resume) { doc.UpdateBasics(in) })
}

// UpsertWork returns the id of the added or replaced entry.
func (s *Session) UpsertWork(ctx context.Context, in domain.WorkInput) (string, error) {
	var id string
	err := s.mutate(ctx, func(doc *domain.Resume) { id = doc.UpsertWork(in) })
	return id, err
}

// DeleteWork succeeds when the id is unknown.
func (s *Session) DeleteWork(ctx context.Context, id string) error {
	return s.mutate(ctx, func(doc *domain.Resume) { doc.DeleteWork(id) })
}

func (s *Session) UpsertEducation(ctx context.Context, in domain.EducationInput) (string, error) {
	var id string
	err := s.mutate(ctx, func(doc *domain.Resume) { id = doc.UpsertEducation(in) })
	return id, err
}

func (s *Session) DeleteEducation(ctx context.Context, id string) error {
	return s.mutate(ctx, func(doc *domain.Resume) { doc.DeleteEducation(id) })
}

// AddSkill reports whether the skill was added; duplicates are ignored.
func (s *Session) AddSkill(ctx context.Context, name string) (bool, error) {
	var added bool
	err := s.mutate(ctx, func(doc *domain.Resume) { added = doc.AddSkill(name) })
	return added, err
}

func (s *Session) DeleteSkill(ctx context.Context, index int) error {
	return s.mutate(ctx, func(doc *domain.Resume) { doc.DeleteSkill(index) })
}

// ─────────────────────────────────────────────────────────────────
// Exports
// ─────────────────────────────────────────────────────────────────

const (
	ContentTypePDF  = "application/pdf"
	ContentTypeHTML = "text/html; charset=utf-8"
)

// Artifact is a rendered export with its suggested download name.
type Artifact struct {
	Name        string
	ContentType string
	Body        []byte
}

// snapshot copies the document and its naming inputs under the lock;
// rendering then runs without holding it.
func (s *Session) snapshot() (*domain.Resume, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Clone(), s.currentID
}

func (s *Session) ExportPDF(ctx context.Context) (*Artifact, error) {
	doc, id := s.snapshot()
	body, err := s.renderer.PDF(ctx, doc)
	if err != nil {
		return nil, err
	}
	return &Artifact{
		Name:        domain.ExportName(id, doc.Basics.Name, ".pdf"),
		ContentType: ContentTypePDF,
		Body:        body,
	}, nil
}

func (s *Session) ExportHTML(ctx context.Context) (*Artifact, error) {
	doc, id := s.snapshot()
	body, err := s.renderer.HTML(ctx, doc)
	if err != nil {
		return nil, err
	}
	return &Artifact{
		Name:        domain.ExportName(id, doc.Basics.Name, ".html"),
		ContentType: ContentTypeHTML,
		Body:        body,
	}, nil
}
