package repository

import (
	"context"
	"sync"

	"github.com/okian/premia/internal/domain/model"
	"github.com/okian/premia/pkg/metrics"
)

// MemStore is the in-memory Store. A single RWMutex is plenty: the
// session is edited by one operator and every payload is small.
type MemStore struct {
	mu      sync.RWMutex
	session model.Session
	seed    func() model.Session
}

// Option applies a configuration option to the MemStore.
type Option func(*MemStore)

// WithSeed overrides the seed used for the initial session and Reset.
func WithSeed(seed func() model.Session) Option {
	return func(s *MemStore) {
		if seed != nil {
			s.seed = seed
		}
	}
}

// NewMemStore creates a session store populated from the seed.
func NewMemStore(opts ...Option) *MemStore {
	s := &MemStore{seed: model.DefaultSession}
	for _, opt := range opts {
		opt(s)
	}
	s.session = s.seed()
	s.publishGauges()
	return s
}

// Snapshot returns a copy of the current session.
func (s *MemStore) Snapshot(_ context.Context) model.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.Clone()
}

// Update applies fn to the session under the write lock.
func (s *MemStore) Update(_ context.Context, fn func(*model.Session)) error {
	if fn == nil {
		return ErrNilMutation
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.session)
	s.publishGauges()
	return nil
}

// Reset replaces the session with the seed defaults.
func (s *MemStore) Reset(_ context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = s.seed()
	s.publishGauges()
}

// publishGauges pushes table sizes to the metrics layer. Caller holds
// at least the read lock.
func (s *MemStore) publishGauges() {
	metrics.UpdateTierCount(len(s.session.Tiers))
	metrics.UpdateBonusCount(len(s.session.Bonuses))
	metrics.UpdateScenarioCount(len(s.session.Scenarios))
}
