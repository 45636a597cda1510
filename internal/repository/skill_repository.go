package repository

import (
	"context"
	"strings"

	"jobpath/internal/database"

	"github.com/google/uuid"
)

type Skill struct {
	ID       uuid.UUID
	Name     string
	Category string
}

type SkillRepository interface {
	ListSkills(ctx context.Context, search string, limit int) ([]Skill, error)
	ExistsByID(ctx context.Context, skillID uuid.UUID) (bool, error)
	AllNames(ctx context.Context) ([]string, error)
}

type PostgresSkillRepository struct {
	db database.DB
}

func NewPostgresSkillRepository(db database.DB) *PostgresSkillRepository {
	return &PostgresSkillRepository{db: db}
}

func (r *PostgresSkillRepository) ListSkills(ctx context.Context, search string, limit int) ([]Skill, error) {
	if limit <= 0 || limit > 200 {
		limit = 100
	}
	search = strings.TrimSpace(search)

	rows, err := r.db.Query(ctx,
		`SELECT id, name, COALESCE(category, '')
		 FROM skills
		 WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')
		 ORDER BY name ASC
		 LIMIT $2`,
		search, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Skill, 0)
	for rows.Next() {
		var s Skill
		if err := rows.Scan(&s.ID, &s.Name, &s.Category); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresSkillRepository) ExistsByID(ctx context.Context, skillID uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM skills WHERE id = $1)`, skillID)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// AllNames feeds the ingest-side skill extraction: descriptions are matched
// against the catalog.
func (r *PostgresSkillRepository) AllNames(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT name FROM skills ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
