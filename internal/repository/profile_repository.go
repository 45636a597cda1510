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

var ErrProfileEntryNotFound = errors.New("profile entry not found")

type EducationEntry struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	Institution  string
	Degree       string
	FieldOfStudy string
	StartYear    *int
	EndYear      *int
}

type ExperienceEntry struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Company     string
	Title       string
	Description string
	StartDate   *time.Time
	EndDate     *time.Time
}

type Preferences struct {
	UserID             uuid.UUID
	DesiredRoles       []string
	PreferredLocations []string
	MinSalary          *int64
	MaxSalary          *int64
	RemoteOK           bool
}

type ProfileRepository interface {
	ListEducation(ctx context.Context, userID uuid.UUID) ([]EducationEntry, error)
	CreateEducation(ctx context.Context, e EducationEntry) error
	DeleteEducation(ctx context.Context, userID uuid.UUID, id uuid.UUID) error

	ListExperience(ctx context.Context, userID uuid.UUID) ([]ExperienceEntry, error)
	CreateExperience(ctx context.Context, e ExperienceEntry) error
	DeleteExperience(ctx context.Context, userID uuid.UUID, id uuid.UUID) error

	GetPreferences(ctx context.Context, userID uuid.UUID) (Preferences, bool, error)
	UpsertPreferences(ctx context.Context, p Preferences) error
}

type PostgresProfileRepository struct {
	db database.DB
}

func NewPostgresProfileRepository(db database.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{db: db}
}

func (r *PostgresProfileRepository) ListEducation(ctx context.Context, userID uuid.UUID) ([]EducationEntry, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, institution, COALESCE(degree, ''), COALESCE(field_of_study, ''), start_year, end_year
		 FROM education_entries
		 WHERE user_id = $1
		 ORDER BY end_year DESC NULLS FIRST, start_year DESC NULLS LAST`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]EducationEntry, 0)
	for rows.Next() {
		var e EducationEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Institution, &e.Degree, &e.FieldOfStudy, &e.StartYear, &e.EndYear); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresProfileRepository) CreateEducation(ctx context.Context, e EducationEntry) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO education_entries (id, user_id, institution, degree, field_of_study, start_year, end_year)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		e.ID, e.UserID, e.Institution, e.Degree, e.FieldOfStudy, e.StartYear, e.EndYear,
	)
	return err
}

func (r *PostgresProfileRepository) DeleteEducation(ctx context.Context, userID uuid.UUID, id uuid.UUID) error {
	affected, err := r.db.Exec(ctx,
		`DELETE FROM education_entries WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrProfileEntryNotFound
	}
	return nil
}

func (r *PostgresProfileRepository) ListExperience(ctx context.Context, userID uuid.UUID) ([]ExperienceEntry, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, company, title, COALESCE(description, ''), start_date, end_date
		 FROM experience_entries
		 WHERE user_id = $1
		 ORDER BY end_date DESC NULLS FIRST, start_date DESC NULLS LAST`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]ExperienceEntry, 0)
	for rows.Next() {
		var e ExperienceEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Company, &e.Title, &e.Description, &e.StartDate, &e.EndDate); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresProfileRepository) CreateExperience(ctx context.Context, e ExperienceEntry) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO experience_entries (id, user_id, company, title, description, start_date, end_date)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		e.ID, e.UserID, e.Company, e.Title, e.Description, e.StartDate, e.EndDate,
	)
	return err
}

func (r *PostgresProfileRepository) DeleteExperience(ctx context.Context, userID uuid.UUID, id uuid.UUID) error {
	affected, err := r.db.Exec(ctx,
		`DELETE FROM experience_entries WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrProfileEntryNotFound
	}
	return nil
}

func (r *PostgresProfileRepository) GetPreferences(ctx context.Context, userID uuid.UUID) (Preferences, bool, error) {
	row := r.db.QueryRow(ctx,
		`SELECT user_id, desired_roles, preferred_locations, min_salary, max_salary, remote_ok
		 FROM user_preferences
		 WHERE user_id = $1`,
		userID,
	)
	var p Preferences
	if err := row.Scan(&p.UserID, &p.DesiredRoles, &p.PreferredLocations, &p.MinSalary, &p.MaxSalary, &p.RemoteOK); err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows) {
			return Preferences{}, false, nil
		}
		return Preferences{}, false, err
	}
	return p, true, nil
}

func (r *PostgresProfileRepository) UpsertPreferences(ctx context.Context, p Preferences) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO user_preferences (user_id, desired_roles, preferred_locations, min_salary, max_salary, remote_ok, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, now())
		 ON CONFLICT (user_id) DO UPDATE SET
			desired_roles = EXCLUDED.desired_roles,
			preferred_locations = EXCLUDED.preferred_locations,
			min_salary = EXCLUDED.min_salary,
			max_salary = EXCLUDED.max_salary,
			remote_ok = EXCLUDED.remote_ok,
			updated_at = now()`,
		p.UserID, p.DesiredRoles, p.PreferredLocations, p.MinSalary, p.MaxSalary, p.RemoteOK,
	)
	return err
}
