package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/go-cmp/cmp"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/vitae/internal/domain"
	"github.com/MrSnakeDoc/vitae/internal/logger"
	"github.com/MrSnakeDoc/vitae/internal/store"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewStore(client, logger.NewNop()), mr
}

func TestResumeKeys(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		wantID  string
		wantErr bool
	}{
		{name: "valid", key: ResumeKey("ada.json"), wantID: "ada.json"},
		{name: "prefix only", key: KeyPrefixResume, wantErr: true},
		{name: "other prefix", key: "jump:service:x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := ExtractResumeID(tt.key)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ExtractResumeID(%q) error = %v, wantErr %v", tt.key, err, tt.wantErr)
			}
			if id != tt.wantID {
				t.Errorf("ExtractResumeID(%q) = %q, want %q", tt.key, id, tt.wantID)
			}
		})
	}
}

func TestReindexPicksUpUnlistedDocuments(t *testing.T) {
	s, mr := newTestStore(t)
	ctx := context.Background()
	clock := time.UnixMilli(1_700_000_000_000)
	s.now = func() time.Time { return clock }

	r := domain.NewResume()
	r.UpdateBasics(domain.BasicsInput{Name: "Ada"})
	require.NoError(t, s.Save(ctx, "ada", r))

	data, err := store.Encode(r)
	require.NoError(t, err)
	require.NoError(t, mr.Set(ResumeKey("grace.json"), string(data)))
	require.NoError(t, mr.Set(ResumeKey("notes.txt"), "x"))
	require.NoError(t, mr.Set(KeyPrefixResume, "x"))

	n, err := s.Reindex(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	list, err := s.List(ctx)
	require.NoError(t, err)
	var ids []string
	for _, sum := range list {
		ids = append(ids, sum.ID)
	}
	assert.ElementsMatch(t, []string{"ada.json", "grace.json"}, ids)

	n, err = s.Reindex(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSaveLoad(t *testing.T) {
	s, mr := newTestStore(t)
	ctx := context.Background()

	r := domain.NewResume()
	r.UpdateBasics(domain.BasicsInput{Name: "Ada"})
	r.UpsertWork(domain.WorkInput{Company: "Old", StartDate: "2010-01-01"})
	r.UpsertWork(domain.WorkInput{Company: "New", StartDate: "2020-01-01"})

	require.NoError(t, s.Save(ctx, "ada", r))
	assert.True(t, mr.Exists(ResumeKey("ada.json")), "document key should be normalized with .json")

	back, err := s.Load(ctx, "ada.json")
	require.NoError(t, err)
	if diff := cmp.Diff(r, back); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadAndDeleteMissing(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	_, err := s.Load(ctx, "missing.json")
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, "missing.json"), store.ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, "../x"), store.ErrInvalidID)
}

func TestListAndDelete(t *testing.T) {
	s, mr := newTestStore(t)
	ctx := context.Background()

	clock := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return clock }

	first := domain.NewResume()
	first.UpdateBasics(domain.BasicsInput{Name: "First"})
	require.NoError(t, s.Save(ctx, "first.json", first))

	clock = clock.Add(time.Hour)
	require.NoError(t, s.Save(ctx, "second.json", domain.NewResume()))

	// index entry without a document is skipped
	_, err := mr.ZAdd(IndexKey(), float64(clock.Add(time.Hour).UnixMilli()), "ghost.json")
	require.NoError(t, err)

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "second.json", list[0].ID)
	assert.Equal(t, "", list[0].Name)
	assert.Equal(t, "first.json", list[1].ID)
	assert.Equal(t, "First", list[1].Name)
	assert.True(t, list[1].Modified.Equal(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)))
	assert.Equal(t, ResumeKey("first.json"), list[1].Path)

	require.NoError(t, s.Delete(ctx, "first.json"))
	list, err = s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "second.json", list[0].ID)
}

func TestPing(t *testing.T) {
	s, mr := newTestStore(t)
	require.NoError(t, s.Ping(context.Background()))

	mr.Close()
	assert.Error(t, s.Ping(context.Background()))
}
