// Package match produces a single match for the current user from the online
// pool, charging for preference filtering through the user's ledger.
package match

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gdugdh24/videochat-backend/internal/domain"
	"github.com/gdugdh24/videochat-backend/internal/repository"
	"github.com/gdugdh24/videochat-backend/internal/usecase/ledger"
)

type Selector struct {
	directory repository.CandidateRepository
	policy    Policy
	delayer   Delayer
	logger    *slog.Logger
}

func NewSelector(
	directory repository.CandidateRepository,
	policy Policy,
	delayer Delayer,
	logger *slog.Logger,
) *Selector {
	if delayer == nil {
		delayer = NoDelay
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Selector{
		directory: directory,
		policy:    policy,
		delayer:   delayer,
		logger:    logger,
	}
}

func (s *Selector) Policy() Policy {
	return s.policy
}

// FindMatch waits on the delayer, then selects a partner and applies the
// filter charge to l in one atomic step. If ctx ends before that step the
// ledger is left untouched and ctx.Err() is returned. Match failures such
// as an empty pool are reported in the result, not as an error.
func (s *Selector) FindMatch(ctx context.Context, req Request, l *ledger.Ledger) (domain.MatchResult, error) {
	if err := s.delayer.Wait(ctx); err != nil {
		return domain.MatchResult{}, err
	}

	online, err := s.directory.ListOnline(ctx)
	if err != nil {
		return domain.MatchResult{}, fmt.Errorf("failed to list online candidates: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return domain.MatchResult{}, err
	}

	var (
		result domain.MatchResult
		before domain.EconomyState
	)
	after, _ := l.Update(func(state domain.EconomyState) (domain.EconomyState, error) {
		var next domain.EconomyState
		result, next = s.policy.Select(online, req, state)
		before = state
		return next, nil
	})

	attrs := []any{
		slog.String("policy", s.policy.Name()),
		slog.Int("user_id", req.User.ID),
		slog.Int("online", len(online)),
		slog.Bool("filtered", req.Preferences != nil),
		slog.Int("charged", before.Coins-after.Coins),
	}
	if result.Success {
		s.logger.Info("match found", append(attrs, slog.Int("match_id", result.Match.ID))...)
	} else {
		s.logger.Info("match failed", append(attrs, slog.String("reason", result.Message))...)
	}

	return result, nil
}
