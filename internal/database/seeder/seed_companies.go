package seeder

import (
	"context"
	"fmt"

	"jobpath/internal/database"
)

type CompaniesSeeder struct{}

func (CompaniesSeeder) Name() string { return "companies" }

func (CompaniesSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "companies", "id", "name", "website", "industry", "description", "created_at"); err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	items := []struct {
		Name        string
		Website     string
		Industry    string
		Description string
	}{
		{
			Name:        "Northwind Labs",
			Website:     "https://northwindlabs.example.com",
			Industry:    "Software",
			Description: "Developer tooling and cloud infrastructure products.",
		},
		{
			Name:        "Brightline Health",
			Website:     "https://brightline.example.com",
			Industry:    "Healthcare",
			Description: "Telehealth platform connecting patients with specialists.",
		},
		{
			Name:        "Harbor Analytics",
			Website:     "https://harboranalytics.example.com",
			Industry:    "Data",
			Description: "Business intelligence and data pipeline services.",
		},
		{
			Name:        "Copperfield Commerce",
			Website:     "https://copperfield.example.com",
			Industry:    "E-commerce",
			Description: "Marketplace infrastructure for independent retailers.",
		},
		{
			Name:        "Atlas Mobility",
			Website:     "https://atlasmobility.example.com",
			Industry:    "Transportation",
			Description: "Fleet routing and logistics optimization.",
		},
	}

	for _, it := range items {
		_, err := tx.Exec(
			ctx,
			`INSERT INTO companies (id, name, website, industry, description)
			 VALUES (gen_random_uuid(), $1, $2, $3, $4)
			 ON CONFLICT (name) DO NOTHING`,
			it.Name, it.Website, it.Industry, it.Description,
		)
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
