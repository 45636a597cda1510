package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"jobpath/internal/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrJobNotFound = errors.New("job not found")

type Job struct {
	ID          uuid.UUID
	Title       string
	Company     string
	Location    string
	Description string
	URL         string
	PostedAt    *time.Time
}

type JobFilter struct {
	Query  string
	Limit  int
	Offset int
}

type JobUpsert struct {
	SourceID       uuid.UUID
	ExternalJobID  string
	Title          string
	Company        string
	Location       string
	EmploymentType string
	Description    string
	URL            string
	PostedAt       *time.Time
	Skills         []string
}

type JobRepository interface {
	GetByID(ctx context.Context, jobID uuid.UUID) (Job, error)
	ExistsByID(ctx context.Context, jobID uuid.UUID) (bool, error)
	ListActiveJobs(ctx context.Context, f JobFilter) ([]Job, error)
	// ActiveCorpus returns every active job, in deterministic order, for the
	// recommendation engine.
	ActiveCorpus(ctx context.Context) ([]Job, error)
	CountActive(ctx context.Context) (int, error)
	UpsertJobs(ctx context.Context, items []JobUpsert) error
	DeactivateMissing(ctx context.Context, sourceID uuid.UUID, keepExternalIDs []string) error
}

type PostgresJobRepository struct {
	db database.DB
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

func (r *PostgresJobRepository) GetByID(ctx context.Context, jobID uuid.UUID) (Job, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, COALESCE(title, ''), COALESCE(company, ''), COALESCE(location, ''), COALESCE(description, ''), COALESCE(url, ''), posted_at
		 FROM jobs
		 WHERE id = $1`,
		jobID,
	)
	var j Job
	if err := row.Scan(&j.ID, &j.Title, &j.Company, &j.Location, &j.Description, &j.URL, &j.PostedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows) {
			return Job{}, ErrJobNotFound
		}
		return Job{}, err
	}
	return j, nil
}

func (r *PostgresJobRepository) ExistsByID(ctx context.Context, jobID uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM jobs WHERE id = $1 AND is_active)`, jobID)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresJobRepository) ListActiveJobs(ctx context.Context, f JobFilter) ([]Job, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 50 {
		limit = 50
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}
	query := strings.TrimSpace(f.Query)

	rows, err := r.db.Query(ctx,
		`SELECT id, COALESCE(title, ''), COALESCE(company, ''), COALESCE(location, ''), COALESCE(description, ''), COALESCE(url, ''), posted_at
		 FROM jobs
		 WHERE is_active
		   AND ($1 = '' OR title ILIKE '%' || $1 || '%' OR company ILIKE '%' || $1 || '%' OR location ILIKE '%' || $1 || '%')
		 ORDER BY posted_at DESC NULLS LAST, id
		 LIMIT $2 OFFSET $3`,
		query, limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanJobs(rows)
}

func (r *PostgresJobRepository) ActiveCorpus(ctx context.Context) ([]Job, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, COALESCE(title, ''), COALESCE(company, ''), COALESCE(location, ''), COALESCE(description, ''), COALESCE(url, ''), posted_at
		 FROM jobs
		 WHERE is_active
		 ORDER BY posted_at DESC NULLS LAST, id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanJobs(rows)
}

func (r *PostgresJobRepository) CountActive(ctx context.Context) (int, error) {
	var n int
	row := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM jobs WHERE is_active`)
	if err := row.Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *PostgresJobRepository) UpsertJobs(ctx context.Context, items []JobUpsert) error {
	if len(items) == 0 {
		return nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	for _, it := range items {
		row := tx.QueryRow(ctx,
			`INSERT INTO jobs (id, source_id, external_job_id, title, company, location, employment_type, description, url, is_active, posted_at, ingested_at)
			 VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, NULLIF($6, ''), $7, NULLIF($8, ''), TRUE, $9, now())
			 ON CONFLICT (source_id, external_job_id) DO UPDATE SET
				title = EXCLUDED.title,
				company = EXCLUDED.company,
				location = EXCLUDED.location,
				employment_type = EXCLUDED.employment_type,
				description = EXCLUDED.description,
				url = EXCLUDED.url,
				is_active = TRUE,
				posted_at = EXCLUDED.posted_at,
				ingested_at = now()
			 RETURNING id`,
			it.SourceID, it.ExternalJobID, it.Title, it.Company, it.Location,
			it.EmploymentType, it.Description, it.URL, it.PostedAt,
		)

		var jobID uuid.UUID
		if err := row.Scan(&jobID); err != nil {
			return err
		}

		if _, err := tx.Exec(ctx, `DELETE FROM job_skills WHERE job_id = $1`, jobID); err != nil {
			return err
		}
		for _, s := range it.Skills {
			s = strings.TrimSpace(s)
			if s == "" {
				continue
			}
			if _, err := tx.Exec(ctx,
				`INSERT INTO job_skills (job_id, skill_name) VALUES ($1, $2) ON CONFLICT (job_id, skill_name) DO NOTHING`,
				jobID, s,
			); err != nil {
				return err
			}
		}
	}

	return tx.Commit(ctx)
}

func (r *PostgresJobRepository) DeactivateMissing(ctx context.Context, sourceID uuid.UUID, keepExternalIDs []string) error {
	if sourceID == uuid.Nil {
		return nil
	}
	_, err := r.db.Exec(ctx,
		`UPDATE jobs SET is_active = FALSE
		 WHERE source_id = $1 AND NOT (external_job_id = ANY($2))`,
		sourceID, keepExternalIDs,
	)
	return err
}

func scanJobs(rows database.Rows) ([]Job, error) {
	out := make([]Job, 0)
	for rows.Next() {
		var j Job
		if err := rows.Scan(&j.ID, &j.Title, &j.Company, &j.Location, &j.Description, &j.URL, &j.PostedAt); err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
