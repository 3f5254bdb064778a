package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/gdugdh24/videochat-backend/internal/domain"
	"github.com/gdugdh24/videochat-backend/internal/repository"
	"github.com/jmoiron/sqlx"
)

type candidateRepository struct {
	db *sqlx.DB
}

func NewCandidateRepository(db *sqlx.DB) repository.CandidateRepository {
	return &candidateRepository{db: db}
}

type candidateRow struct {
	ID         int            `db:"id"`
	Name       string         `db:"name"`
	Age        int            `db:"age"`
	Gender     string         `db:"gender"`
	IsOnline   bool           `db:"is_online"`
	PrefMinAge sql.NullInt64  `db:"pref_min_age"`
	PrefMaxAge sql.NullInt64  `db:"pref_max_age"`
	PrefGender sql.NullString `db:"pref_gender"`
}

func (row *candidateRow) toDomain() *domain.Candidate {
	c := &domain.Candidate{
		ID:       row.ID,
		Name:     row.Name,
		Age:      row.Age,
		Gender:   domain.Gender(row.Gender),
		IsOnline: row.IsOnline,
	}

	var prefs domain.Preferences
	hasPrefs := false
	// The schema requires both bounds together; rows from before that
	// constraint get an open-ended range on the missing side.
	if row.PrefMinAge.Valid || row.PrefMaxAge.Valid {
		r := domain.AgeRange{Min: 0, Max: domain.MaxAge}
		if row.PrefMinAge.Valid {
			r.Min = int(row.PrefMinAge.Int64)
		}
		if row.PrefMaxAge.Valid {
			r.Max = int(row.PrefMaxAge.Int64)
		}
		prefs.AgeRange = &r
		hasPrefs = true
	}
	if row.PrefGender.Valid && row.PrefGender.String != "" {
		prefs.Gender = domain.Gender(row.PrefGender.String)
		hasPrefs = true
	}
	if hasPrefs {
		c.Preferences = &prefs
	}
	return c
}

func (r *candidateRepository) ListOnline(ctx context.Context) ([]*domain.Candidate, error) {
	var rows []candidateRow
	query := `
		SELECT id, name, age, gender, is_online,
		       pref_min_age, pref_max_age, pref_gender
		FROM candidates
		WHERE is_online = true
		ORDER BY id
	`
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to list online candidates: %w", err)
	}

	candidates := make([]*domain.Candidate, 0, len(rows))
	for i := range rows {
		candidates = append(candidates, rows[i].toDomain())
	}
	return candidates, nil
}
