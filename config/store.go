package config

import (
	"sync"
	"sync/atomic"
)

// Store shares a Config between the UI (writer) and the worker goroutines
// (readers). Readers take a Snapshot at point of use; writers replace the
// whole value, so a reader never observes a half-applied update. The zero
// value is not usable; use NewStore.
type Store struct {
	cur atomic.Pointer[Config]
	mu  sync.Mutex // serialises writers
}

// NewStore returns a store seeded with a copy of cfg (defaults if nil).
func NewStore(cfg *Config) *Store {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	clone := *cfg
	s := &Store{}
	s.cur.Store(&clone)
	return s
}

// Snapshot returns a copy of the current configuration.
func (s *Store) Snapshot() Config {
	return *s.cur.Load()
}

// Update applies fn to a copy of the current configuration, validates it and
// publishes the result. It returns the published value.
func (s *Store) Update(fn func(*Config)) Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := *s.cur.Load()
	if fn != nil {
		fn(&next)
	}
	_ = next.Validate()
	s.cur.Store(&next)
	return next
}

// Replace publishes cfg wholesale.
func (s *Store) Replace(cfg Config) {
	s.Update(func(c *Config) { *c = cfg })
}
