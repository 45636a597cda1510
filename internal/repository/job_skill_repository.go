package repository

import (
	"context"

	"jobpath/internal/database"

	"github.com/google/uuid"
)

type SkillDemand struct {
	SkillName string
	JobCount  int
}

type JobSkillRepository interface {
	FindByJobID(ctx context.Context, jobID uuid.UUID) ([]string, error)
	FindByJobIDs(ctx context.Context, jobIDs []uuid.UUID) (map[uuid.UUID][]string, error)
	// DemandBySkill counts, per skill name, how many active jobs require it.
	DemandBySkill(ctx context.Context) ([]SkillDemand, error)
}

type PostgresJobSkillRepository struct {
	db database.DB
}

func NewPostgresJobSkillRepository(db database.DB) *PostgresJobSkillRepository {
	return &PostgresJobSkillRepository{db: db}
}

func (r *PostgresJobSkillRepository) FindByJobID(ctx context.Context, jobID uuid.UUID) ([]string, error) {
	rows, err := r.db.Query(ctx,
		`SELECT skill_name FROM job_skills WHERE job_id = $1 ORDER BY skill_name ASC`,
		jobID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresJobSkillRepository) FindByJobIDs(ctx context.Context, jobIDs []uuid.UUID) (map[uuid.UUID][]string, error) {
	out := make(map[uuid.UUID][]string, len(jobIDs))
	if len(jobIDs) == 0 {
		return out, nil
	}

	rows, err := r.db.Query(ctx,
		`SELECT job_id, skill_name
		 FROM job_skills
		 WHERE job_id = ANY($1)
		 ORDER BY job_id, skill_name ASC`,
		jobIDs,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		var s string
		if err := rows.Scan(&id, &s); err != nil {
			return nil, err
		}
		out[id] = append(out[id], s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresJobSkillRepository) DemandBySkill(ctx context.Context) ([]SkillDemand, error) {
	rows, err := r.db.Query(ctx,
		`SELECT lower(trim(js.skill_name)) AS skill, COUNT(DISTINCT js.job_id)
		 FROM job_skills js
		 JOIN jobs j ON j.id = js.job_id
		 WHERE j.is_active AND trim(js.skill_name) <> ''
		 GROUP BY skill
		 ORDER BY COUNT(DISTINCT js.job_id) DESC, skill ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]SkillDemand, 0)
	for rows.Next() {
		var d SkillDemand
		if err := rows.Scan(&d.SkillName, &d.JobCount); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
