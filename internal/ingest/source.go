package ingest

import (
	"context"
	"fmt"
	"strings"

	"jobpath/internal/database"

	"github.com/google/uuid"
)

// EnsureJobSource registers the named source if missing and returns its id.
func EnsureJobSource(ctx context.Context, db database.DB, name, baseURL string) (uuid.UUID, error) {
	if db == nil {
		return uuid.Nil, fmt.Errorf("nil db")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return uuid.Nil, fmt.Errorf("empty source name")
	}

	_, _ = db.Exec(ctx,
		`INSERT INTO job_sources (name, base_url) VALUES ($1, NULLIF($2, '')) ON CONFLICT (name) DO NOTHING`,
		name, strings.TrimSpace(baseURL),
	)

	row := db.QueryRow(ctx, `SELECT id FROM job_sources WHERE name = $1 LIMIT 1`, name)
	var id uuid.UUID
	if err := row.Scan(&id); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}
