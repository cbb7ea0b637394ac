package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/calvinyu/guessme/backend/internal/model/game"
)

const (
	cacheKeyPrefix   = "session:"
	archiveKeyPrefix = "dataset:"
)

// RedisStore persists sessions as JSON documents in Redis. Working
// cache entries live under "session:<id>" with a TTL; archived games
// live under "dataset:<id>" forever.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore wraps an existing client. ttl is the idle window for
// working-cache entries.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

// Load fetches a session from the working cache.
func (s *RedisStore) Load(ctx context.Context, id string) (*game.Session, error) {
	return s.get(ctx, cacheKeyPrefix+id)
}

// Save writes the full session document and resets its expiry window.
func (s *RedisStore) Save(ctx context.Context, sess *game.Session) error {
	return s.set(ctx, cacheKeyPrefix+sess.ID, sess, s.ttl)
}

// Archive writes the full session document to the permanent namespace.
// A repeated terminal write replaces the document with identical
// content, so re-entry cannot corrupt the archive.
func (s *RedisStore) Archive(ctx context.Context, sess *game.Session) error {
	return s.set(ctx, archiveKeyPrefix+sess.ID, sess, 0)
}

// LoadArchived fetches a completed session from the archive.
func (s *RedisStore) LoadArchived(ctx context.Context, id string) (*game.Session, error) {
	return s.get(ctx, archiveKeyPrefix+id)
}

func (s *RedisStore) get(ctx context.Context, key string) (*game.Session, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}

	var sess game.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", key, err)
	}
	return &sess, nil
}

func (s *RedisStore) set(ctx context.Context, key string, sess *game.Session, ttl time.Duration) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", sess.ID, err)
	}
	if err := s.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}
