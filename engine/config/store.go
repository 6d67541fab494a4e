package config

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// Store publishes the live Config snapshot. Get is lock-free and safe to call from the frame callback;
// Set validates before publishing, so an invalid update never reaches a reader.
type Store struct {
	current atomic.Pointer[Config]

	mu        sync.Mutex
	listeners []func(prev, next Config)
}

// NewStore creates a Store holding initial.
//
// Parameters:
//   - initial: the first snapshot
//
// Returns:
//   - *Store: the store
//   - error: the validation error if initial is out of range
func NewStore(initial Config) (*Store, error) {
	if err := initial.Validate(); err != nil {
		return nil, err
	}
	s := &Store{}
	s.current.Store(&initial)
	return s, nil
}

// Get returns a copy of the current snapshot.
func (s *Store) Get() Config {
	return *s.current.Load()
}

// Set validates next and publishes it. Listeners run synchronously on the caller's goroutine.
//
// Parameters:
//   - next: the new configuration
//
// Returns:
//   - error: the validation error, in which case the live snapshot is unchanged
func (s *Store) Set(next Config) error {
	if err := next.Validate(); err != nil {
		return fmt.Errorf("config rejected: %w", err)
	}

	prev := *s.current.Swap(&next)
	s.notify(prev, next)
	return nil
}

// Update applies fn to a copy of the current snapshot and publishes the result. If another Set or Update
// publishes first, fn runs again on the newer snapshot, so fn may be called more than once and should only
// mutate c.
//
// Parameters:
//   - fn: mutates the copy in place
//
// Returns:
//   - error: the validation error, in which case the live snapshot is unchanged
func (s *Store) Update(fn func(c *Config)) error {
	for {
		prev := s.current.Load()
		next := *prev
		fn(&next)
		if err := next.Validate(); err != nil {
			return fmt.Errorf("config rejected: %w", err)
		}
		if s.current.CompareAndSwap(prev, &next) {
			s.notify(*prev, next)
			return nil
		}
	}
}

func (s *Store) notify(prev, next Config) {
	s.mu.Lock()
	listeners := append([]func(prev, next Config){}, s.listeners...)
	s.mu.Unlock()

	for _, l := range listeners {
		l(prev, next)
	}
}

// OnChange registers a listener called after every successful Set or Update.
//
// Parameters:
//   - fn: receives the previous and the new snapshot
func (s *Store) OnChange(fn func(prev, next Config)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}
