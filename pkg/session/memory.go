package session

import (
	"context"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2/expirable"
)

// MemoryStore keeps sessions in an expirable LRU cache. The least recently
// used session is evicted once size is reached.
type MemoryStore struct {
	cache *lru.LRU[string, Record]
}

// NewMemoryStore creates a store holding at most size sessions for ttl each
func NewMemoryStore(size int, ttl time.Duration) *MemoryStore {
	if size < 1 {
		size = 1
	}
	return &MemoryStore{
		cache: lru.NewLRU[string, Record](size, nil, ttl),
	}
}

// Get retrieves a session
func (s *MemoryStore) Get(ctx context.Context, id string) (*Record, error) {
	rec, ok := s.cache.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	rec.Selection.ModuleIDs = append([]string(nil), rec.Selection.ModuleIDs...)
	return &rec, nil
}

// Put stores a session and refreshes its TTL
func (s *MemoryStore) Put(ctx context.Context, rec *Record) error {
	if rec == nil || rec.ID == "" {
		return fmt.Errorf("session record requires an id")
	}
	stored := *rec
	stored.Selection.ModuleIDs = append([]string(nil), rec.Selection.ModuleIDs...)
	s.cache.Add(rec.ID, stored)
	return nil
}

// Delete removes a session. Deleting an unknown id is not an error.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.cache.Remove(id)
	return nil
}

// Len returns the number of live sessions
func (s *MemoryStore) Len() int {
	return s.cache.Len()
}

// Ping always succeeds
func (s *MemoryStore) Ping(ctx context.Context) error {
	return nil
}

// Close drops every session
func (s *MemoryStore) Close() error {
	s.cache.Purge()
	return nil
}
