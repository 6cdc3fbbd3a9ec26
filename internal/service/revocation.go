package service

import (
	"context"
	"sync"
	"time"
)

// RevocationStore holds tokens invalidated before their natural expiry. Entries
// only need to live as long as the token itself, so implementations take a TTL.
type RevocationStore interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// MemoryRevocationStore is the in-process implementation. State is lost on
// restart, which is acceptable: a restart also rotates nothing else.
type MemoryRevocationStore struct {
	mu      sync.RWMutex
	revoked map[string]time.Time
	now     func() time.Time
}

func NewMemoryRevocationStore() *MemoryRevocationStore {
	return &MemoryRevocationStore{
		revoked: make(map[string]time.Time),
		now:     time.Now,
	}
}

func (s *MemoryRevocationStore) Revoke(_ context.Context, token string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[token] = s.now().Add(ttl)
	return nil
}

func (s *MemoryRevocationStore) IsRevoked(_ context.Context, token string) (bool, error) {
	s.mu.RLock()
	deadline, ok := s.revoked[token]
	s.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if s.now().After(deadline) {
		// Entry outlived the token it was blocking.
		s.mu.Lock()
		delete(s.revoked, token)
		s.mu.Unlock()
		return false, nil
	}
	return true, nil
}
