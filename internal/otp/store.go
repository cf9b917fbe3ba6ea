// Package otp stores pending password-reset codes behind a narrow interface:
// put a code with a TTL, consume it exactly once. The memory implementation
// serves tests and single-process deployments; the redis implementation backs
// multi-process production.
package otp

import (
	"context"
	"sync"
	"time"
)

// Store is the pending-code table keyed by (lowercased) email.
type Store interface {
	// Put records a code for the email with the given TTL, overwriting any
	// prior pending code for that email.
	Put(ctx context.Context, email, code string, ttl time.Duration) error

	// Consume checks the code for the email. On a match the code is deleted
	// (one-time use) and true is returned. A missing, mismatched, or expired
	// code returns false. Consume never reveals which of the three it was.
	Consume(ctx context.Context, email, code string) (bool, error)
}

type memoryEntry struct {
	code      string
	expiresAt time.Time
}

// MemoryStore is the in-process Store. Entries expire lazily: nothing sweeps
// the map, an expired entry just fails its next Consume and is deleted then.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (s *MemoryStore) Put(_ context.Context, email, code string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[email] = memoryEntry{code: code, expiresAt: s.now().Add(ttl)}
	return nil
}

func (s *MemoryStore) Consume(_ context.Context, email, code string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[email]
	if !ok {
		return false, nil
	}
	if s.now().After(entry.expiresAt) {
		delete(s.entries, email)
		return false, nil
	}
	if entry.code != code {
		return false, nil
	}

	delete(s.entries, email)
	return true, nil
}
