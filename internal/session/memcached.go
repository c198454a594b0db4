package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bradfitz/gomemcache/memcache"

	"github.com/kjstillabower/weather-lookup/internal/view"
)

const keyPrefix = "session:"

// maxRelativeExp is the largest expiration memcached treats as relative seconds.
const maxRelativeExp = 30 * 24 * 60 * 60

// MemcachedStore implements Store on memcached, so several instances can
// serve the same visitor.
type MemcachedStore struct {
	client *memcache.Client
}

// NewMemcachedStore creates a MemcachedStore. addrs is a comma-separated list
// (e.g. "localhost:11211" or "host1:11211,host2:11211"). timeout and maxIdleConns
// use package defaults if zero.
func NewMemcachedStore(addrs string, timeout time.Duration, maxIdleConns int) (*MemcachedStore, error) {
	servers := parseAddrs(addrs)
	if len(servers) == 0 {
		return nil, fmt.Errorf("memcached: no server addresses in %q", addrs)
	}
	client := memcache.New(servers...)
	if timeout > 0 {
		client.Timeout = timeout
	}
	if maxIdleConns > 0 {
		client.MaxIdleConns = maxIdleConns
	}
	return &MemcachedStore{client: client}, nil
}

func parseAddrs(s string) []string {
	var out []string
	for _, a := range strings.Split(s, ",") {
		a = strings.TrimSpace(a)
		if a != "" {
			out = append(out, a)
		}
	}
	return out
}

func (s *MemcachedStore) key(id string) string {
	return keyPrefix + id
}

// Get implements Store.Get. A miss is (zero, false, nil).
func (s *MemcachedStore) Get(ctx context.Context, id string) (view.Snapshot, bool, error) {
	if ctx.Err() != nil {
		return view.Snapshot{}, false, ctx.Err()
	}
	item, err := s.client.Get(s.key(id))
	if err != nil {
		if errors.Is(err, memcache.ErrCacheMiss) {
			return view.Snapshot{}, false, nil
		}
		return view.Snapshot{}, false, fmt.Errorf("memcached get: %w", err)
	}
	var snap view.Snapshot
	if err := json.Unmarshal(item.Value, &snap); err != nil {
		return view.Snapshot{}, false, fmt.Errorf("decode session: %w", err)
	}
	return snap, true, nil
}

// Set implements Store.Set.
func (s *MemcachedStore) Set(ctx context.Context, id string, snap view.Snapshot, ttl time.Duration) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.client.Set(&memcache.Item{
		Key:        s.key(id),
		Value:      raw,
		Expiration: expiration(ttl),
	}); err != nil {
		return fmt.Errorf("memcached set: %w", err)
	}
	return nil
}

// expiration converts ttl to a memcached expiration. memcached treats values above
// 30 days as an absolute unix time, so longer TTLs are sent that way. Non-positive
// TTLs fall back to 1h.
func expiration(ttl time.Duration) int32 {
	return expirationAt(time.Now(), ttl)
}

func expirationAt(now time.Time, ttl time.Duration) int32 {
	sec := int64(ttl.Seconds())
	if sec <= 0 {
		return 3600
	}
	if sec > maxRelativeExp {
		return int32(now.Add(ttl).Unix())
	}
	return int32(sec)
}

// Ping checks if memcached is reachable. Used for health checks.
func (s *MemcachedStore) Ping() error {
	return s.client.Ping()
}

// Close closes the memcached client connections. Call during shutdown.
func (s *MemcachedStore) Close() error {
	return s.client.Close()
}
