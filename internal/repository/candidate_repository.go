package repository

import (
	"context"

	"github.com/gdugdh24/videochat-backend/internal/domain"
)

// CandidateRepository is the user directory. Implementations never mutate
// the pool on behalf of callers.
type CandidateRepository interface {
	// ListOnline returns every online candidate in insertion order.
	ListOnline(ctx context.Context) ([]*domain.Candidate, error)
}
