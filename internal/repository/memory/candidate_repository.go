package memory

import (
	"context"

	"github.com/gdugdh24/videochat-backend/internal/domain"
	"github.com/gdugdh24/videochat-backend/internal/repository"
)

type candidateRepository struct {
	pool []*domain.Candidate
}

// NewCandidateRepository returns a directory over a fixed pool. The pool is
// copied; later changes to the argument are not observed.
func NewCandidateRepository(pool []*domain.Candidate) repository.CandidateRepository {
	cp := make([]*domain.Candidate, 0, len(pool))
	for _, c := range pool {
		cp = append(cp, c.Clone())
	}
	return &candidateRepository{pool: cp}
}

// NewSeededCandidateRepository returns a directory over SeedCandidates.
func NewSeededCandidateRepository() repository.CandidateRepository {
	return NewCandidateRepository(SeedCandidates())
}

func (r *candidateRepository) ListOnline(ctx context.Context) ([]*domain.Candidate, error) {
	online := make([]*domain.Candidate, 0, len(r.pool))
	for _, c := range r.pool {
		if c.IsOnline {
			online = append(online, c.Clone())
		}
	}
	return online, nil
}

// SeedCandidates returns the demo pool shipped with the application.
func SeedCandidates() []*domain.Candidate {
	seed := func(id int, name string, age int, gender domain.Gender, online bool, min, max int, wants domain.Gender) *domain.Candidate {
		return &domain.Candidate{
			ID:       id,
			Name:     name,
			Age:      age,
			Gender:   gender,
			IsOnline: online,
			Preferences: &domain.Preferences{
				AgeRange: &domain.AgeRange{Min: min, Max: max},
				Gender:   wants,
			},
		}
	}

	return []*domain.Candidate{
		seed(1, "Alex", 25, domain.GenderMale, true, 20, 30, domain.GenderFemale),
		seed(2, "Sarah", 23, domain.GenderFemale, true, 22, 28, domain.GenderMale),
		seed(3, "Mike", 27, domain.GenderMale, true, 20, 35, domain.GenderFemale),
		seed(4, "Emma", 24, domain.GenderFemale, true, 25, 30, domain.GenderMale),
		seed(5, "David", 26, domain.GenderMale, false, 22, 28, domain.GenderFemale),
		seed(6, "Lisa", 22, domain.GenderFemale, true, 20, 25, domain.GenderMale),
		seed(7, "John", 29, domain.GenderMale, true, 25, 35, domain.GenderFemale),
		seed(8, "Anna", 21, domain.GenderFemale, true, 20, 26, domain.GenderMale),
	}
}
