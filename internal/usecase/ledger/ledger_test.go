package ledger

import (
	"errors"
	"sync"
	"testing"

	"github.com/gdugdh24/videochat-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddCoinsIncreasesBalanceExactly(t *testing.T) {
	for _, n := range []int{0, 1, 4, 10, 1000, 1 << 20} {
		l := New(domain.EconomyState{Coins: 7}, DefaultCosts())

		_, err := l.AddCoins(n)
		require.NoError(t, err)
		assert.Equal(t, 7+n, l.Status().Coins)
	}
}

func TestAddCoinsRejectsNegative(t *testing.T) {
	l := New(domain.EconomyState{Coins: 7}, DefaultCosts())

	_, err := l.AddCoins(-1)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	assert.Equal(t, 7, l.State().Coins)
}

func TestPurchaseBoost(t *testing.T) {
	tests := []struct {
		name     string
		state    domain.EconomyState
		ok       bool
		expected domain.EconomyState
	}{
		{
			name:     "insufficient funds leaves state unchanged",
			state:    domain.EconomyState{Coins: 49},
			ok:       false,
			expected: domain.EconomyState{Coins: 49},
		},
		{
			name:     "exact balance",
			state:    domain.EconomyState{Coins: 50},
			ok:       true,
			expected: domain.EconomyState{Coins: 0, BoostActive: true},
		},
		{
			name:     "buying again while active still charges",
			state:    domain.EconomyState{Coins: 120, BoostActive: true},
			ok:       true,
			expected: domain.EconomyState{Coins: 70, BoostActive: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New(tt.state, DefaultCosts())

			state, ok := l.PurchaseBoost()
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, state)
			assert.Equal(t, tt.expected, l.State())
		})
	}
}

func TestChargeFilterUse(t *testing.T) {
	t.Run("deducts the filter cost", func(t *testing.T) {
		state, charged := ChargeFilterUse(domain.EconomyState{Coins: 25}, 10)
		assert.True(t, charged)
		assert.Equal(t, 15, state.Coins)
	})

	t.Run("no-op while boosted", func(t *testing.T) {
		state, charged := ChargeFilterUse(domain.EconomyState{Coins: 25, BoostActive: true}, 10)
		assert.False(t, charged)
		assert.Equal(t, 25, state.Coins)
	})

	t.Run("no-op below cost", func(t *testing.T) {
		state, charged := ChargeFilterUse(domain.EconomyState{Coins: 9}, 10)
		assert.False(t, charged)
		assert.Equal(t, 9, state.Coins)
	})
}

func TestFilterEligible(t *testing.T) {
	c := DefaultCosts()
	assert.False(t, FilterEligible(domain.EconomyState{Coins: 9}, c))
	assert.True(t, FilterEligible(domain.EconomyState{Coins: 10}, c))
	assert.True(t, FilterEligible(domain.EconomyState{BoostActive: true}, c))

	status := StatusOf(domain.EconomyState{Coins: 12}, c)
	assert.Equal(t, domain.EconomyStatus{Coins: 12, FilterEligible: true}, status)
}

func TestNewClampsNegativeBalance(t *testing.T) {
	l := New(domain.EconomyState{Coins: -5}, DefaultCosts())
	assert.Equal(t, 0, l.State().Coins)
}

func TestUpdateCommitsNothingOnFailure(t *testing.T) {
	l := New(domain.EconomyState{Coins: 5}, DefaultCosts())

	_, err := l.Update(func(s domain.EconomyState) (domain.EconomyState, error) {
		s.Coins = 100
		return s, errors.New("boom")
	})
	require.Error(t, err)
	assert.Equal(t, 5, l.State().Coins)

	_, err = l.Update(func(s domain.EconomyState) (domain.EconomyState, error) {
		s.Coins -= 6
		return s, nil
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
	assert.Equal(t, 5, l.State().Coins)
}

func TestConcurrentChargesNeverOverspend(t *testing.T) {
	l := New(domain.EconomyState{Coins: 100}, DefaultCosts())

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		charged int
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, ok := l.ChargeFilterUse(); ok {
				mu.Lock()
				charged++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, charged)
	assert.Equal(t, 0, l.State().Coins)
}

func TestOnCommitSeesStatesInOrder(t *testing.T) {
	l := New(domain.EconomyState{Coins: 5}, DefaultCosts())

	var seen []int
	l.OnCommit(func(s domain.EconomyState) {
		seen = append(seen, s.Coins)
	})

	_, err := l.AddCoins(10)
	require.NoError(t, err)
	_, err = l.AddCoins(0)
	require.NoError(t, err)
	_, ok := l.PurchaseBoost()
	assert.False(t, ok)
	_, ok = l.ChargeFilterUse()
	assert.True(t, ok)
	_, err = l.AddCoins(-1)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	// No-op and rejected updates are not reported.
	assert.Equal(t, []int{15, 5}, seen)
}

func TestOnCommitSerializesConcurrentWriters(t *testing.T) {
	l := New(domain.EconomyState{}, DefaultCosts())

	var last int
	l.OnCommit(func(s domain.EconomyState) {
		assert.Greater(t, s.Coins, last)
		last = s.Coins
	})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := l.AddCoins(1)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 20, last)
	assert.Equal(t, 20, l.State().Coins)
}
