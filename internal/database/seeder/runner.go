package seeder

import (
	"context"
	"fmt"

	"jobpath/internal/database"
)

type Runner struct {
	Seeders []Seeder
}

func (r Runner) Run(ctx context.Context, db database.DB) error {
	if db == nil {
		return fmt.Errorf("nil db")
	}
	for _, s := range r.Seeders {
		if s == nil {
			continue
		}
		if err := s.Run(ctx, db); err != nil {
			return fmt.Errorf("seed %s: %w", s.Name(), err)
		}
	}
	return nil
}

// Defaults is the seed set a fresh install needs before the first ingest
// run: the skill catalog and the company directory.
func Defaults() Runner {
	return Runner{Seeders: []Seeder{
		SkillsSeeder{},
		CompaniesSeeder{},
	}}
}
