package repository

import (
	"context"
	"errors"
	"time"

	"jobpath/internal/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrBookmarkNotFound = errors.New("bookmark not found")
	ErrBookmarkExists   = errors.New("bookmark already exists")
)

type Bookmark struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	JobID     uuid.UUID
	CreatedAt time.Time
}

type BookmarkedJob struct {
	Bookmark Bookmark
	Job      Job
}

type BookmarkRepository interface {
	Create(ctx context.Context, b Bookmark) error
	Delete(ctx context.Context, userID uuid.UUID, jobID uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]BookmarkedJob, error)
}

type PostgresBookmarkRepository struct {
	db database.DB
}

func NewPostgresBookmarkRepository(db database.DB) *PostgresBookmarkRepository {
	return &PostgresBookmarkRepository{db: db}
}

func (r *PostgresBookmarkRepository) Create(ctx context.Context, b Bookmark) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO bookmarks (id, user_id, job_id) VALUES ($1, $2, $3)`,
		b.ID, b.UserID, b.JobID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrBookmarkExists
		}
		return err
	}
	return nil
}

func (r *PostgresBookmarkRepository) Delete(ctx context.Context, userID uuid.UUID, jobID uuid.UUID) error {
	affected, err := r.db.Exec(ctx,
		`DELETE FROM bookmarks WHERE user_id = $1 AND job_id = $2`,
		userID, jobID,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrBookmarkNotFound
	}
	return nil
}

func (r *PostgresBookmarkRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]BookmarkedJob, error) {
	rows, err := r.db.Query(ctx,
		`SELECT b.id, b.user_id, b.job_id, b.created_at,
		        j.id, COALESCE(j.title, ''), COALESCE(j.company, ''), COALESCE(j.location, ''), COALESCE(j.description, ''), COALESCE(j.url, ''), j.posted_at
		 FROM bookmarks b
		 JOIN jobs j ON j.id = b.job_id
		 WHERE b.user_id = $1
		 ORDER BY b.created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]BookmarkedJob, 0)
	for rows.Next() {
		var bj BookmarkedJob
		if err := rows.Scan(
			&bj.Bookmark.ID, &bj.Bookmark.UserID, &bj.Bookmark.JobID, &bj.Bookmark.CreatedAt,
			&bj.Job.ID, &bj.Job.Title, &bj.Job.Company, &bj.Job.Location, &bj.Job.Description, &bj.Job.URL, &bj.Job.PostedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, bj)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}
