package memory

import (
	"context"
	"sync"

	"github.com/gdugdh24/videochat-backend/internal/domain"
	"github.com/gdugdh24/videochat-backend/internal/repository"
)

type settingsRepository struct {
	mu       sync.RWMutex
	settings map[int]domain.Settings
}

// NewSettingsRepository returns a process-local settings store.
func NewSettingsRepository() repository.SettingsRepository {
	return &settingsRepository{settings: make(map[int]domain.Settings)}
}

func (r *settingsRepository) Load(ctx context.Context, userID int) (domain.Settings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.settings[userID]
	if !ok {
		return domain.DefaultSettings(), nil
	}
	return s.Clone(), nil
}

func (r *settingsRepository) Save(ctx context.Context, userID int, settings domain.Settings) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.settings[userID] = settings.Clone()
	return nil
}
