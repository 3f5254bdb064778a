package redis

import (
	"context"
	"os"
	"testing"

	"github.com/gdugdh24/videochat-backend/internal/domain"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testClient connects to REDIS_TEST_ADDR and skips when it is unset. Each
// test gets a flushed database 15.
func testClient(t *testing.T) *redis.Client {
	t.Helper()
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}

	client := redis.NewClient(&redis.Options{Addr: addr, DB: 15})
	ctx := context.Background()
	require.NoError(t, client.Ping(ctx).Err())
	require.NoError(t, client.FlushDB(ctx).Err())
	t.Cleanup(func() {
		client.FlushDB(context.Background())
		client.Close()
	})
	return client
}

func TestUserKey(t *testing.T) {
	assert.Equal(t, "user:7:userCoins", userKey(7, coinsField))
	assert.Equal(t, "user:7:userSettings", userKey(7, settingsField))
}

func TestEconomyRepositoryRoundTrip(t *testing.T) {
	client := testClient(t)
	repo := NewEconomyRepository(client)
	ctx := context.Background()

	state, err := repo.Load(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.EconomyState{}, state)

	require.NoError(t, repo.Save(ctx, 1, domain.EconomyState{Coins: 35, BoostActive: true}))
	state, err = repo.Load(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.EconomyState{Coins: 35, BoostActive: true}, state)
}

func TestEconomyRepositoryIgnoresGarbage(t *testing.T) {
	client := testClient(t)
	repo := NewEconomyRepository(client)
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, userKey(2, coinsField), "lots", 0).Err())
	require.NoError(t, client.Set(ctx, userKey(2, boostField), "yes", 0).Err())

	state, err := repo.Load(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, domain.EconomyState{}, state)
}

func TestSettingsRepository(t *testing.T) {
	client := testClient(t)
	repo := NewSettingsRepository(client)
	ctx := context.Background()

	settings, err := repo.Load(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSettings(), settings)

	saved := domain.Settings{AgeRange: &domain.AgeRange{Min: 21, Max: 29}, Gender: domain.GenderFemale}
	require.NoError(t, repo.Save(ctx, 3, saved))
	settings, err = repo.Load(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, saved, settings)

	require.NoError(t, client.Set(ctx, userKey(4, settingsField), "{not json", 0).Err())
	settings, err = repo.Load(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSettings(), settings)
}
