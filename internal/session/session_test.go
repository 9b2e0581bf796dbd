package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/vitae/internal/domain"
	"github.com/MrSnakeDoc/vitae/internal/logger"
	"github.com/MrSnakeDoc/vitae/internal/render"
	"github.com/MrSnakeDoc/vitae/internal/store"
	"github.com/MrSnakeDoc/vitae/internal/store/file"
)

var fixedClock = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }

func newSession(t *testing.T) (*Session, *file.Store) {
	t.Helper()
	st, err := file.New(t.TempDir(), logger.NewNop())
	require.NoError(t, err)
	r := render.New(render.NewNativeEngine(), logger.NewNop())
	return New(st, r, logger.NewNop(), WithClock(fixedClock)), st
}

func TestScenarioActiveWorkFirst(t *testing.T) {
	s, st := newSession(t)
	ctx := context.Background()

	s.New()
	_, err := s.UpsertWork(ctx, domain.WorkInput{Company: "Acme", Position: "Engineer", StartDate: "2020-01-01", CurrentlyWorking: true})
	require.NoError(t, err)
	_, err = s.UpsertWork(ctx, domain.WorkInput{Company: "Old Co", Position: "Intern", StartDate: "2018-06-01"})
	require.NoError(t, err)

	data := s.Data()
	require.Len(t, data.Work, 2)
	assert.Equal(t, "Acme", data.Work[0].Company)
	assert.Equal(t, "Old Co", data.Work[1].Company)

	// the first mutation synthesized an identifier and persisted there
	assert.Equal(t, "Resume_2024-01-02_03-04-05.json", s.CurrentID())
	stored, err := st.Load(ctx, s.CurrentID())
	require.NoError(t, err)
	assert.Len(t, stored.Work, 2)
}

func TestScenarioSkillCaseInsensitive(t *testing.T) {
	s, _ := newSession(t)
	ctx := context.Background()

	added, err := s.AddSkill(ctx, "Python")
	require.NoError(t, err)
	assert.True(t, added)

	added, err = s.AddSkill(ctx, "python")
	require.NoError(t, err)
	assert.False(t, added)

	assert.Len(t, s.Data().Skills.Technologies, 1)
}

func TestScenarioDeleteUnknownWork(t *testing.T) {
	s, _ := newSession(t)
	ctx := context.Background()

	id, err := s.UpsertWork(ctx, domain.WorkInput{Company: "Acme"})
	require.NoError(t, err)

	require.NoError(t, s.DeleteWork(ctx, "does-not-exist"))
	work := s.Data().Work
	require.Len(t, work, 1)
	assert.Equal(t, id, work[0].ID)

	require.NoError(t, s.DeleteWork(ctx, id))
	assert.Empty(t, s.Data().Work)
}

func TestScenarioEmptyRender(t *testing.T) {
	s, _ := newSession(t)

	a, err := s.ExportHTML(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "resume.html", a.Name)
	assert.Equal(t, ContentTypeHTML, a.ContentType)
	assert.Contains(t, string(a.Body), render.EmptyPlaceholder)
	assert.NotContains(t, string(a.Body), "<section")
	assert.NotContains(t, string(a.Body), `class="section-title"`)
}

func TestSaveSemantics(t *testing.T) {
	s, st := newSession(t)
	ctx := context.Background()

	require.NoError(t, s.UpdateBasics(ctx, domain.BasicsInput{Name: "Ada Lovelace"}))
	first := s.CurrentID()
	assert.Equal(t, "Ada_Lovelace_2024-01-02_03-04-05.json", first)

	// explicit id without save-as writes a copy but keeps the current id
	id, err := s.Save(ctx, "copy", false)
	require.NoError(t, err)
	assert.Equal(t, "copy.json", id)
	assert.Equal(t, first, s.CurrentID())
	assert.FileExists(t, filepath.Join(st.Dir(), "copy.json"))

	// save-as switches the current id
	id, err = s.Save(ctx, "renamed.json", true)
	require.NoError(t, err)
	assert.Equal(t, "renamed.json", s.CurrentID())

	// no id saves back to the current one
	id, err = s.Save(ctx, "", false)
	require.NoError(t, err)
	assert.Equal(t, "renamed.json", id)

	_, err = s.Save(ctx, "../escape", false)
	assert.ErrorIs(t, err, store.ErrInvalidID)
}

func TestLoadReplacesDocument(t *testing.T) {
	s, st := newSession(t)
	ctx := context.Background()

	stored := domain.NewResume()
	stored.UpdateBasics(domain.BasicsInput{Name: "Grace"})
	require.NoError(t, st.Save(ctx, "grace.json", stored))

	doc, id, err := s.Load(ctx, "grace")
	require.NoError(t, err)
	assert.Equal(t, "grace.json", id)
	assert.Equal(t, "Grace", doc.Basics.Name)
	assert.Equal(t, "grace.json", s.CurrentID())

	list, current, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Grace", list[0].Name)
	assert.Equal(t, "grace.json", current)

	s.New()
	assert.Empty(t, s.CurrentID())
	assert.Empty(t, s.Data().Basics.Name)
}

func TestLoadMissingKeepsDocument(t *testing.T) {
	s, _ := newSession(t)
	ctx := context.Background()

	require.NoError(t, s.UpdateBasics(ctx, domain.BasicsInput{Name: "Ada"}))
	before := s.CurrentID()

	_, _, err := s.Load(ctx, "missing.json")
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.Equal(t, "Ada", s.Data().Basics.Name)
	assert.Equal(t, before, s.CurrentID())
}

func TestDelete(t *testing.T) {
	s, st := newSession(t)
	ctx := context.Background()

	require.NoError(t, st.Save(ctx, "x.json", domain.NewResume()))
	require.NoError(t, s.Delete(ctx, "x.json"))
	assert.ErrorIs(t, s.Delete(ctx, "x.json"), store.ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, ""), store.ErrInvalidID)
	_, err := os.Stat(filepath.Join(st.Dir(), "x.json"))
	assert.True(t, os.IsNotExist(err))
}

func TestExportNames(t *testing.T) {
	s, _ := newSession(t)
	ctx := context.Background()

	require.NoError(t, s.UpdateBasics(ctx, domain.BasicsInput{Name: "Ada Lovelace"}))
	pdf, err := s.ExportPDF(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Ada_Lovelace_2024-01-02_03-04-05.pdf", pdf.Name)
	assert.Equal(t, ContentTypePDF, pdf.ContentType)
	assert.Equal(t, "%PDF-", string(pdf.Body[:5]))
}

type brokenStore struct{ store.Store }

func (brokenStore) Save(context.Context, string, *domain.Resume) error {
	return errors.New("disk full")
}
func (brokenStore) Kind() string { return "broken" }

func TestMutationKeptWhenPersistFails(t *testing.T) {
	r := render.New(render.NewNativeEngine(), logger.NewNop())
	s := New(brokenStore{}, r, logger.NewNop(), WithClock(fixedClock))
	ctx := context.Background()

	err := s.UpdateBasics(ctx, domain.BasicsInput{Name: "Ada Lovelace"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Equal(t, "Ada Lovelace", s.Data().Basics.Name)
	assert.Empty(t, s.CurrentID())

	// never saved, so the export name comes from the person's name
	a, err := s.ExportHTML(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Ada_Lovelace_resume.html", a.Name)
}

func TestConcurrentMutations(t *testing.T) {
	s, _ := newSession(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.AddSkill(ctx, fmt.Sprintf("skill-%d", i))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Len(t, s.Data().Skills.Technologies, 20)
}
