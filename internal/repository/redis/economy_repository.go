package redis

import (
	"context"
	"fmt"
	"strconv"

	"github.com/gdugdh24/videochat-backend/internal/domain"
	"github.com/gdugdh24/videochat-backend/internal/repository"
	"github.com/redis/go-redis/v9"
)

// Key names mirror the browser storage keys the client used to own.
const (
	coinsField    = "userCoins"
	boostField    = "userBoost"
	settingsField = "userSettings"
)

func userKey(userID int, field string) string {
	return fmt.Sprintf("user:%d:%s", userID, field)
}

type economyRepository struct {
	client *redis.Client
}

func NewEconomyRepository(client *redis.Client) repository.EconomyRepository {
	return &economyRepository{client: client}
}

func (r *economyRepository) Load(ctx context.Context, userID int) (domain.EconomyState, error) {
	values, err := r.client.MGet(ctx, userKey(userID, coinsField), userKey(userID, boostField)).Result()
	if err != nil {
		return domain.EconomyState{}, fmt.Errorf("failed to load economy state: %w", err)
	}

	var state domain.EconomyState
	if raw, ok := values[0].(string); ok {
		coins, err := strconv.Atoi(raw)
		if err != nil || coins < 0 {
			coins = 0
		}
		state.Coins = coins
	}
	if raw, ok := values[1].(string); ok {
		state.BoostActive = raw == "true"
	}
	return state, nil
}

func (r *economyRepository) Save(ctx context.Context, userID int, state domain.EconomyState) error {
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, userKey(userID, coinsField), strconv.Itoa(state.Coins), 0)
		pipe.Set(ctx, userKey(userID, boostField), strconv.FormatBool(state.BoostActive), 0)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save economy state: %w", err)
	}
	return nil
}
