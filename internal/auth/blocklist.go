// File: internal/auth/blocklist.go
package auth

import (
	"context"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

// TokenBlocklistService remembers ID tokens that were signed out before they expired.
type TokenBlocklistService interface {
	AddToBlocklist(ctx context.Context, idToken string, expiresAt time.Time) error
	IsBlocklisted(ctx context.Context, idToken string) (bool, error)
}

// InMemoryBlocklistService is an in-memory implementation of TokenBlocklistService using a cache.
type InMemoryBlocklistService struct {
	mu    sync.RWMutex
	cache *cache.Cache
}

// NewInMemoryBlocklistService creates a new in-memory blocklist service.
func NewInMemoryBlocklistService() *InMemoryBlocklistService {
	return &InMemoryBlocklistService{
		cache: cache.New(time.Hour, 10*time.Minute),
	}
}

// AddToBlocklist keeps the token blocked for as long as it would have been valid.
func (s *InMemoryBlocklistService) AddToBlocklist(ctx context.Context, idToken string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	duration := time.Until(expiresAt)
	if duration <= 0 {
		return nil
	}

	s.cache.Set(idToken, true, duration)
	return nil
}

func (s *InMemoryBlocklistService) IsBlocklisted(ctx context.Context, idToken string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, found := s.cache.Get(idToken)
	return found, nil
}
