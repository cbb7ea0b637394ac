package session

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/calvinyu/guessme/backend/internal/model/game"
)

// MemoryStore keeps sessions in process memory. It mirrors the redis
// store's full-document-replace semantics (documents are deep-copied
// through JSON) but does not expire entries. Intended for tests and
// local runs without Redis.
type MemoryStore struct {
	mu      sync.RWMutex
	cache   map[string][]byte
	archive map[string][]byte
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		cache:   make(map[string][]byte),
		archive: make(map[string][]byte),
	}
}

// Load fetches a session from the working cache.
func (s *MemoryStore) Load(_ context.Context, id string) (*game.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return decode(s.cache[id])
}

// Save stores a copy of the session in the working cache.
func (s *MemoryStore) Save(_ context.Context, sess *game.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.cache[sess.ID] = data
	s.mu.Unlock()
	return nil
}

// Archive stores a copy of the session in the permanent namespace.
func (s *MemoryStore) Archive(_ context.Context, sess *game.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.archive[sess.ID] = data
	s.mu.Unlock()
	return nil
}

// LoadArchived fetches a completed session from the archive.
func (s *MemoryStore) LoadArchived(_ context.Context, id string) (*game.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return decode(s.archive[id])
}

func decode(data []byte) (*game.Session, error) {
	if data == nil {
		return nil, ErrSessionNotFound
	}
	var sess game.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}
