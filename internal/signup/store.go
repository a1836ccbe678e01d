// File: internal/signup/store.go
package signup

import (
	"time"

	"studybuddy_backend/internal/config"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// Store keeps in-progress flows. Flows are transient and live in memory only.
type Store interface {
	Save(f *Flow)
	Get(id uuid.UUID) (*Flow, bool)
	Delete(id uuid.UUID)
}

// CacheStore is a TTL store; every Save restarts the flow's expiry.
type CacheStore struct {
	cache *cache.Cache
	ttl   time.Duration
}

var _ Store = (*CacheStore)(nil)

// NewCacheStore creates a store whose entries expire after SIGNUP_FLOW_TTL_MINUTES.
func NewCacheStore(cfg *config.Config) *CacheStore {
	return newCacheStore(cfg.SignupFlowTTL)
}

func newCacheStore(ttl time.Duration) *CacheStore {
	return &CacheStore{
		cache: cache.New(ttl, 2*ttl),
		ttl:   ttl,
	}
}

func (s *CacheStore) Save(f *Flow) {
	s.cache.Set(f.ID().String(), f, s.ttl)
}

func (s *CacheStore) Get(id uuid.UUID) (*Flow, bool) {
	v, found := s.cache.Get(id.String())
	if !found {
		return nil, false
	}
	f, ok := v.(*Flow)
	return f, ok
}

func (s *CacheStore) Delete(id uuid.UUID) {
	s.cache.Delete(id.String())
}
