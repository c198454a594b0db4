package session

import (
	"context"
	"sync"
	"time"

	"github.com/kjstillabower/weather-lookup/internal/view"
)

// Store holds the latest view state per visitor session.
// Get returns (snapshot, true, nil) when present and unexpired; Set replaces the whole entry.
type Store interface {
	Get(ctx context.Context, id string) (view.Snapshot, bool, error)
	Set(ctx context.Context, id string, snap view.Snapshot, ttl time.Duration) error
}

// sweepEvery is how many writes pass between sweeps of expired entries.
const sweepEvery = 64

// InMemoryStore implements Store with a map and TTL-based expiration.
// Expired entries are removed on access and by a sweep every sweepEvery writes,
// so sessions that are never read again do not accumulate. Safe for concurrent use.
type InMemoryStore struct {
	mu     sync.Mutex
	data   map[string]entry
	writes int
}

type entry struct {
	snap      view.Snapshot
	expiresAt time.Time
}

// NewInMemoryStore creates an empty in-memory session store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		data: make(map[string]entry),
	}
}

// Get returns the snapshot for id if present and not expired.
func (s *InMemoryStore) Get(ctx context.Context, id string) (view.Snapshot, bool, error) {
	if ctx.Err() != nil {
		return view.Snapshot{}, false, ctx.Err()
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.data[id]
	if !ok {
		return view.Snapshot{}, false, nil
	}
	if time.Now().After(e.expiresAt) {
		delete(s.data, id)
		return view.Snapshot{}, false, nil
	}
	return e.snap, true, nil
}

// Set stores snap for id, replacing any previous entry.
func (s *InMemoryStore) Set(ctx context.Context, id string, snap view.Snapshot, ttl time.Duration) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	s.data[id] = entry{
		snap:      snap,
		expiresAt: now.Add(ttl),
	}
	s.writes++
	if s.writes%sweepEvery == 0 {
		s.sweepLocked(now)
	}
	return nil
}

func (s *InMemoryStore) sweepLocked(now time.Time) {
	for id, e := range s.data {
		if now.After(e.expiresAt) {
			delete(s.data, id)
		}
	}
}

// Len returns the number of stored entries, expired ones included until swept or accessed.
func (s *InMemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data)
}
