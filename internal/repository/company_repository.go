package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"jobpath/internal/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrCompanyNotFound = errors.New("company not found")

type Company struct {
	ID          uuid.UUID
	Name        string
	Website     string
	Industry    string
	Description string
	OpenJobs    int
}

type CompanyRepository interface {
	ListCompanies(ctx context.Context, search string, limit, offset int) ([]Company, error)
	GetByID(ctx context.Context, id uuid.UUID) (Company, error)
	// OpenJobsByCompanyName lists active jobs whose company field matches the
	// directory entry. Ingested jobs carry a free-text company name, so the
	// join is by name.
	OpenJobsByCompanyName(ctx context.Context, name string, limit int) ([]Job, error)
}

type PostgresCompanyRepository struct {
	db database.DB
}

func NewPostgresCompanyRepository(db database.DB) *PostgresCompanyRepository {
	return &PostgresCompanyRepository{db: db}
}

func (r *PostgresCompanyRepository) ListCompanies(ctx context.Context, search string, limit, offset int) ([]Company, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	search = strings.TrimSpace(search)

	rows, err := r.db.Query(ctx,
		`SELECT c.id, c.name, COALESCE(c.website, ''), COALESCE(c.industry, ''), COALESCE(c.description, ''),
		        (SELECT COUNT(*) FROM jobs j WHERE j.is_active AND j.company = c.name)
		 FROM companies c
		 WHERE ($1 = '' OR c.name ILIKE '%' || $1 || '%' OR c.industry ILIKE '%' || $1 || '%')
		 ORDER BY c.name ASC
		 LIMIT $2 OFFSET $3`,
		search, limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Company, 0)
	for rows.Next() {
		var c Company
		if err := rows.Scan(&c.ID, &c.Name, &c.Website, &c.Industry, &c.Description, &c.OpenJobs); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresCompanyRepository) GetByID(ctx context.Context, id uuid.UUID) (Company, error) {
	row := r.db.QueryRow(ctx,
		`SELECT c.id, c.name, COALESCE(c.website, ''), COALESCE(c.industry, ''), COALESCE(c.description, ''),
		        (SELECT COUNT(*) FROM jobs j WHERE j.is_active AND j.company = c.name)
		 FROM companies c
		 WHERE c.id = $1`,
		id,
	)
	var c Company
	if err := row.Scan(&c.ID, &c.Name, &c.Website, &c.Industry, &c.Description, &c.OpenJobs); err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows) {
			return Company{}, ErrCompanyNotFound
		}
		return Company{}, err
	}
	return c, nil
}

func (r *PostgresCompanyRepository) OpenJobsByCompanyName(ctx context.Context, name string, limit int) ([]Job, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	rows, err := r.db.Query(ctx,
		`SELECT id, COALESCE(title, ''), COALESCE(company, ''), COALESCE(location, ''), COALESCE(description, ''), COALESCE(url, ''), posted_at
		 FROM jobs
		 WHERE is_active AND company = $1
		 ORDER BY posted_at DESC NULLS LAST, id
		 LIMIT $2`,
		name, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanJobs(rows)
}
