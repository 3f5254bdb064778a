package match

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/gdugdh24/videochat-backend/internal/domain"
	"github.com/gdugdh24/videochat-backend/internal/repository/memory"
	"github.com/gdugdh24/videochat-backend/internal/usecase/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingDirectory struct{}

func (failingDirectory) ListOnline(ctx context.Context) ([]*domain.Candidate, error) {
	return nil, errors.New("connection refused")
}

func newTestSelector(delayer Delayer, buf *bytes.Buffer) *Selector {
	logger := slog.New(slog.NewTextHandler(buf, nil))
	return NewSelector(
		memory.NewSeededCandidateRepository(),
		NewSharedRoomPolicy("", ledger.DefaultCosts(), testDefaults),
		delayer,
		logger,
	)
}

func TestSelectorChargesFilteredMatch(t *testing.T) {
	var buf bytes.Buffer
	s := newTestSelector(nil, &buf)
	l := ledger.New(domain.EconomyState{Coins: 25}, ledger.DefaultCosts())

	res, err := s.FindMatch(context.Background(), Request{Preferences: femaleTwenties()}, l)
	require.NoError(t, err)
	require.True(t, res.Success)
	assert.Equal(t, 2, res.Match.ID)
	assert.Equal(t, 15, l.State().Coins)

	assert.Contains(t, buf.String(), "match found")
	assert.Contains(t, buf.String(), "charged=10")
}

func TestSelectorCancelledBeforeDelayLeavesLedgerUntouched(t *testing.T) {
	var buf bytes.Buffer
	s := newTestSelector(TimerDelayer{Duration: time.Hour}, &buf)
	l := ledger.New(domain.EconomyState{Coins: 25}, ledger.DefaultCosts())

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := s.FindMatch(ctx, Request{Preferences: femaleTwenties()}, l)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, domain.EconomyState{Coins: 25}, l.State())
	assert.Empty(t, buf.String())
}

func TestSelectorUsesInjectedDelayer(t *testing.T) {
	var buf bytes.Buffer
	calls := 0
	s := newTestSelector(DelayerFunc(func(ctx context.Context) error {
		calls++
		return nil
	}), &buf)
	l := ledger.New(domain.EconomyState{}, ledger.DefaultCosts())

	res, err := s.FindMatch(context.Background(), Request{}, l)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, 1, calls)
}

func TestSelectorDirectoryError(t *testing.T) {
	s := NewSelector(failingDirectory{}, NewSharedRoomPolicy("", ledger.DefaultCosts(), testDefaults), nil, nil)
	l := ledger.New(domain.EconomyState{Coins: 25}, ledger.DefaultCosts())

	_, err := s.FindMatch(context.Background(), Request{Preferences: femaleTwenties()}, l)
	assert.Error(t, err)
	assert.Equal(t, 25, l.State().Coins)
}

func TestTimerDelayer(t *testing.T) {
	require.NoError(t, TimerDelayer{}.Wait(context.Background()))
	require.NoError(t, TimerDelayer{Duration: time.Millisecond}.Wait(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, TimerDelayer{Duration: time.Hour}.Wait(ctx), context.Canceled)
	assert.ErrorIs(t, NoDelay.Wait(ctx), context.Canceled)
}
