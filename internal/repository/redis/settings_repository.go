package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gdugdh24/videochat-backend/internal/domain"
	"github.com/gdugdh24/videochat-backend/internal/repository"
	"github.com/redis/go-redis/v9"
)

type settingsRepository struct {
	client *redis.Client
}

func NewSettingsRepository(client *redis.Client) repository.SettingsRepository {
	return &settingsRepository{client: client}
}

func (r *settingsRepository) Load(ctx context.Context, userID int) (domain.Settings, error) {
	raw, err := r.client.Get(ctx, userKey(userID, settingsField)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.DefaultSettings(), nil
		}
		return domain.Settings{}, fmt.Errorf("failed to load settings: %w", err)
	}

	settings := domain.DefaultSettings()
	if err := json.Unmarshal(raw, &settings); err != nil {
		// Corrupt entries are treated like missing ones.
		return domain.DefaultSettings(), nil
	}
	return settings, nil
}

func (r *settingsRepository) Save(ctx context.Context, userID int, settings domain.Settings) error {
	raw, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := r.client.Set(ctx, userKey(userID, settingsField), raw, 0).Err(); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}
