package repository

import (
	"context"

	"github.com/gdugdh24/videochat-backend/internal/domain"
)

// EconomyRepository persists coins and the boost flag per user. A user with
// nothing stored loads as the zero state.
type EconomyRepository interface {
	Load(ctx context.Context, userID int) (domain.EconomyState, error)
	Save(ctx context.Context, userID int, state domain.EconomyState) error
}

// SettingsRepository persists saved filter settings per user. A user with
// nothing stored loads as domain.DefaultSettings.
type SettingsRepository interface {
	Load(ctx context.Context, userID int) (domain.Settings, error)
	Save(ctx context.Context, userID int, settings domain.Settings) error
}
