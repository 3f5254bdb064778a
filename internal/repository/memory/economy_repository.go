package memory

import (
	"context"
	"sync"

	"github.com/gdugdh24/videochat-backend/internal/domain"
	"github.com/gdugdh24/videochat-backend/internal/repository"
)

type economyRepository struct {
	mu     sync.RWMutex
	states map[int]domain.EconomyState
}

// NewEconomyRepository returns a process-local economy store, used when no
// Redis is configured and in tests.
func NewEconomyRepository() repository.EconomyRepository {
	return &economyRepository{states: make(map[int]domain.EconomyState)}
}

func (r *economyRepository) Load(ctx context.Context, userID int) (domain.EconomyState, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.states[userID], nil
}

func (r *economyRepository) Save(ctx context.Context, userID int, state domain.EconomyState) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states[userID] = state
	return nil
}
