package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"jobpath/internal/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrApplicationNotFound = errors.New("application not found")
	ErrApplicationExists   = errors.New("application already exists")
)

type Application struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	JobID     uuid.UUID
	Status    string
	Note      string
	AppliedAt time.Time
	UpdatedAt time.Time
}

type ApplicationWithJob struct {
	Application Application
	Job         Job
}

type ApplicationRepository interface {
	Create(ctx context.Context, a Application) error
	FindByUserAndJob(ctx context.Context, userID uuid.UUID, jobID uuid.UUID) (Application, error)
	UpdateStatus(ctx context.Context, userID uuid.UUID, jobID uuid.UUID, status, note string) (Application, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]ApplicationWithJob, error)
}

type PostgresApplicationRepository struct {
	db database.DB
}

func NewPostgresApplicationRepository(db database.DB) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{db: db}
}

func (r *PostgresApplicationRepository) Create(ctx context.Context, a Application) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO applications (id, user_id, job_id, status, note) VALUES ($1, $2, $3, $4, $5)`,
		a.ID, a.UserID, a.JobID, a.Status, a.Note,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrApplicationExists
		}
		return err
	}
	return nil
}

func (r *PostgresApplicationRepository) FindByUserAndJob(ctx context.Context, userID uuid.UUID, jobID uuid.UUID) (Application, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, user_id, job_id, status, COALESCE(note, ''), applied_at, updated_at
		 FROM applications
		 WHERE user_id = $1 AND job_id = $2`,
		userID, jobID,
	)
	return scanApplication(row)
}

func (r *PostgresApplicationRepository) UpdateStatus(ctx context.Context, userID uuid.UUID, jobID uuid.UUID, status, note string) (Application, error) {
	affected, err := r.db.Exec(ctx,
		`UPDATE applications SET status = $1, note = $2, updated_at = now()
		 WHERE user_id = $3 AND job_id = $4`,
		status, note, userID, jobID,
	)
	if err != nil {
		return Application{}, err
	}
	if affected == 0 {
		return Application{}, ErrApplicationNotFound
	}
	return r.FindByUserAndJob(ctx, userID, jobID)
}

func (r *PostgresApplicationRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]ApplicationWithJob, error) {
	rows, err := r.db.Query(ctx,
		`SELECT a.id, a.user_id, a.job_id, a.status, COALESCE(a.note, ''), a.applied_at, a.updated_at,
		        j.id, COALESCE(j.title, ''), COALESCE(j.company, ''), COALESCE(j.location, ''), COALESCE(j.description, ''), COALESCE(j.url, ''), j.posted_at
		 FROM applications a
		 JOIN jobs j ON j.id = a.job_id
		 WHERE a.user_id = $1
		 ORDER BY a.updated_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]ApplicationWithJob, 0)
	for rows.Next() {
		var aj ApplicationWithJob
		if err := rows.Scan(
			&aj.Application.ID, &aj.Application.UserID, &aj.Application.JobID,
			&aj.Application.Status, &aj.Application.Note, &aj.Application.AppliedAt, &aj.Application.UpdatedAt,
			&aj.Job.ID, &aj.Job.Title, &aj.Job.Company, &aj.Job.Location, &aj.Job.Description, &aj.Job.URL, &aj.Job.PostedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, aj)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanApplication(row database.Row) (Application, error) {
	var a Application
	if err := row.Scan(&a.ID, &a.UserID, &a.JobID, &a.Status, &a.Note, &a.AppliedAt, &a.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows) {
			return Application{}, ErrApplicationNotFound
		}
		return Application{}, err
	}
	return a, nil
}
