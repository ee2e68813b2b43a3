package cache

import (
	"context"
	"sync"
	"time"

	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/sports-fixtures/internal/platform/resilience"
)

var ErrLoaderRequired = crerr.New("cache loader is required")

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// Store is an in-process TTL map. A zero TTL keeps entries until evicted by
// the size cap.
type Store[V any] struct {
	mu         sync.RWMutex
	entries    map[string]entry[V]
	ttl        time.Duration
	maxEntries int
	flight     resilience.Group[V]
	now        func() time.Time
}

func NewStore[V any](ttl time.Duration, maxEntries int) *Store[V] {
	return &Store[V]{
		entries:    make(map[string]entry[V]),
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

func (s *Store[V]) Get(_ context.Context, key string) (V, bool) {
	var zero V
	if key == "" {
		return zero, false
	}

	now := s.now()
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return zero, false
	}
	if s.expired(e, now) {
		s.mu.Lock()
		if current, still := s.entries[key]; still && s.expired(current, now) {
			delete(s.entries, key)
		}
		s.mu.Unlock()
		return zero, false
	}

	return e.value, true
}

func (s *Store[V]) Set(_ context.Context, key string, value V) {
	if key == "" {
		return
	}

	now := s.now()
	expiresAt := time.Time{}
	if s.ttl > 0 {
		expiresAt = now.Add(s.ttl)
	}

	s.mu.Lock()
	if _, exists := s.entries[key]; !exists && s.maxEntries > 0 && len(s.entries) >= s.maxEntries {
		s.evictLocked(now)
	}
	s.entries[key] = entry[V]{value: value, expiresAt: expiresAt}
	s.mu.Unlock()
}

func (s *Store[V]) Delete(_ context.Context, key string) {
	if key == "" {
		return
	}

	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
}

func (s *Store[V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// GetOrLoad returns the cached value or loads it once across concurrent
// callers. Load errors are not cached. The loader runs detached from the
// caller's cancellation and must bound itself; a caller whose ctx ends stops
// waiting without failing the others.
func (s *Store[V]) GetOrLoad(ctx context.Context, key string, loader func(context.Context) (V, error)) (V, error) {
	var zero V
	if loader == nil {
		return zero, ErrLoaderRequired
	}
	if key == "" {
		return loader(ctx)
	}

	if value, ok := s.Get(ctx, key); ok {
		return value, nil
	}

	value, err, _ := s.flight.DoContext(ctx, key, func(loadCtx context.Context) (V, error) {
		if cached, ok := s.Get(loadCtx, key); ok {
			return cached, nil
		}

		loaded, loadErr := loader(loadCtx)
		if loadErr != nil {
			return zero, loadErr
		}
		s.Set(loadCtx, key, loaded)
		return loaded, nil
	})
	if err != nil {
		return zero, err
	}

	return value, nil
}

func (s *Store[V]) expired(e entry[V], now time.Time) bool {
	return s.ttl > 0 && !e.expiresAt.After(now)
}

// evictLocked drops expired entries, or the soonest-to-expire one when none
// have expired yet.
func (s *Store[V]) evictLocked(now time.Time) {
	var (
		victim    string
		victimExp time.Time
	)
	for key, e := range s.entries {
		if s.expired(e, now) {
			delete(s.entries, key)
			continue
		}
		if victim == "" || e.expiresAt.Before(victimExp) {
			victim = key
			victimExp = e.expiresAt
		}
	}
	if len(s.entries) >= s.maxEntries && victim != "" {
		delete(s.entries, victim)
	}
}
