package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

// SessionStore is an ephemeral string key-value store
type SessionStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
	// Keys returns every key starting with prefix, sorted
	Keys(ctx context.Context, prefix string) ([]string, error)
}

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// MemorySessionStore keeps session data in process memory. Used when no REDIS_ADDR is
// configured and in tests
type MemorySessionStore struct {
	mu   sync.RWMutex
	data map[string]memoryEntry
	ttl  time.Duration
	now  func() time.Time
}

// NewMemorySessionStore creates a store whose entries expire after ttl (<= 0: never)
func NewMemorySessionStore(ttl time.Duration) *MemorySessionStore {
	return &MemorySessionStore{data: make(map[string]memoryEntry), ttl: ttl, now: time.Now}
}

// Ensure MemorySessionStore implements SessionStore
var _ SessionStore = (*MemorySessionStore)(nil)

func (s *MemorySessionStore) expired(e memoryEntry) bool {
	return !e.expiresAt.IsZero() && !s.now().Before(e.expiresAt)
}

// Get implements SessionStore
func (s *MemorySessionStore) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.data[key]
	if !ok || s.expired(e) {
		return "", false, nil
	}
	return e.value, true, nil
}

// Set implements SessionStore
func (s *MemorySessionStore) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	e := memoryEntry{value: value}
	if s.ttl > 0 {
		e.expiresAt = s.now().Add(s.ttl)
	}
	s.mu.Lock()
	s.data[key] = e
	s.mu.Unlock()
	return nil
}

// Delete implements SessionStore
func (s *MemorySessionStore) Delete(ctx context.Context, keys ...string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	for _, k := range keys {
		delete(s.data, k)
	}
	s.mu.Unlock()
	return nil
}

// Keys implements SessionStore
func (s *MemorySessionStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := []string{}
	for k, e := range s.data {
		if strings.HasPrefix(k, prefix) && !s.expired(e) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// ScopedSessionStore namespaces every key of an underlying store under one browser session
type ScopedSessionStore struct {
	inner  SessionStore
	prefix string
}

// NewScopedSessionStore scopes inner to sessionID
func NewScopedSessionStore(inner SessionStore, sessionID string) *ScopedSessionStore {
	return &ScopedSessionStore{inner: inner, prefix: "session:" + sessionID + ":"}
}

// Ensure ScopedSessionStore implements SessionStore
var _ SessionStore = (*ScopedSessionStore)(nil)

// Get implements SessionStore
func (s *ScopedSessionStore) Get(ctx context.Context, key string) (string, bool, error) {
	return s.inner.Get(ctx, s.prefix+key)
}

// Set implements SessionStore
func (s *ScopedSessionStore) Set(ctx context.Context, key, value string) error {
	return s.inner.Set(ctx, s.prefix+key, value)
}

// Delete implements SessionStore
func (s *ScopedSessionStore) Delete(ctx context.Context, keys ...string) error {
	scoped := make([]string, len(keys))
	for i, k := range keys {
		scoped[i] = s.prefix + k
	}
	return s.inner.Delete(ctx, scoped...)
}

// Keys implements SessionStore, returning unscoped keys
func (s *ScopedSessionStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	keys, err := s.inner.Keys(ctx, s.prefix+prefix)
	if err != nil {
		return nil, err
	}
	for i, k := range keys {
		keys[i] = strings.TrimPrefix(k, s.prefix)
	}
	return keys, nil
}
