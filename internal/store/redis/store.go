package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/vitae/internal/domain"
	"github.com/MrSnakeDoc/vitae/internal/logger"
	"github.com/MrSnakeDoc/vitae/internal/store"
)

// Store handles Redis operations for resume documents
type Store struct {
	client *redis.Client
	logger logger.Logger
	now    func() time.Time
}

var _ store.Store = (*Store)(nil)

// NewStore creates a new Redis store
func NewStore(client *redis.Client, log logger.Logger) *Store {
	return &Store{
		client: client,
		logger: log,
		now:    time.Now,
	}
}

// Kind implements store.Store.
func (s *Store) Kind() string { return "redis" }

// Ping checks the connection
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Save stores the document and bumps its modification time in the index
func (s *Store) Save(ctx context.Context, id string, r *domain.Resume) error {
	id, err := store.NormalizeID(id)
	if err != nil {
		return err
	}

	data, err := store.Encode(r)
	if err != nil {
		return err
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, ResumeKey(id), data, 0)
		pipe.ZAdd(ctx, IndexKey(), redis.Z{
			Score:  float64(s.now().UnixMilli()),
			Member: id,
		})
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save resume: %w", err)
	}
	return nil
}

// Load retrieves a document by ID
func (s *Store) Load(ctx context.Context, id string) (*domain.Resume, error) {
	id, err := store.NormalizeID(id)
	if err != nil {
		return nil, err
	}

	data, err := s.client.Get(ctx, ResumeKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%w: %s", store.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}

	return store.Decode(data)
}

// Delete removes a document and its index entry
func (s *Store) Delete(ctx context.Context, id string) error {
	id, err := store.NormalizeID(id)
	if err != nil {
		return err
	}

	var del *redis.IntCmd
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		del = pipe.Del(ctx, ResumeKey(id))
		pipe.ZRem(ctx, IndexKey(), id)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete resume: %w", err)
	}
	if del.Val() == 0 {
		return fmt.Errorf("%w: %s", store.ErrNotFound, id)
	}
	return nil
}

// Reindex adds documents that exist under the resume key prefix but are
// missing from the modification-time index, scoring them with the current
// time. Keys whose suffix is not a valid resume id are left alone.
// It returns the number of documents added to the index.
func (s *Store) Reindex(ctx context.Context) (int, error) {
	added := 0
	iter := s.client.Scan(ctx, 0, KeyPrefixResume+"*", 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		id, err := ExtractResumeID(key)
		if err != nil {
			continue
		}
		if norm, err := store.NormalizeID(id); err != nil || norm != id {
			s.logger.Debug("skipping foreign resume key", logger.String("key", key))
			continue
		}
		n, err := s.client.ZAddNX(ctx, IndexKey(), redis.Z{
			Score:  float64(s.now().UnixMilli()),
			Member: id,
		}).Result()
		if err != nil {
			return added, fmt.Errorf("failed to index resume %s: %w", id, err)
		}
		added += int(n)
	}
	if err := iter.Err(); err != nil {
		return added, fmt.Errorf("failed to scan resume keys: %w", err)
	}
	return added, nil
}

// List returns all indexed documents, newest first.
// Index entries whose document vanished are skipped.
func (s *Store) List(ctx context.Context) ([]store.Summary, error) {
	entries, err := s.client.ZRevRangeWithScores(ctx, IndexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get resume IDs: %w", err)
	}

	summaries := make([]store.Summary, 0, len(entries))
	for _, z := range entries {
		id, ok := z.Member.(string)
		if !ok {
			continue
		}

		data, err := s.client.Get(ctx, ResumeKey(id)).Bytes()
		if err != nil {
			if !errors.Is(err, redis.Nil) {
				s.logger.Debug("skipping unreadable resume", logger.String("id", id), logger.Error(err))
			}
			continue
		}
		name, err := store.DisplayName(data)
		if err != nil {
			s.logger.Debug("skipping unparsable resume", logger.String("id", id), logger.Error(err))
			continue
		}

		summaries = append(summaries, store.Summary{
			ID:       id,
			Name:     name,
			Modified: time.UnixMilli(int64(z.Score)),
			Path:     ResumeKey(id),
		})
	}

	store.SortSummaries(summaries)
	return summaries, nil
}
