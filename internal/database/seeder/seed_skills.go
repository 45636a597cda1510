package seeder

import (
	"context"
	"fmt"

	"jobpath/internal/database"
)

type SkillsSeeder struct{}

func (SkillsSeeder) Name() string { return "skills" }

func (SkillsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "skills", "id", "name", "category", "created_at"); err != nil {
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
		Name     string
		Category string
	}{
		{Name: "Go", Category: "Programming Language"},
		{Name: "JavaScript", Category: "Programming Language"},
		{Name: "TypeScript", Category: "Programming Language"},
		{Name: "Python", Category: "Programming Language"},
		{Name: "Java", Category: "Programming Language"},
		{Name: "C++", Category: "Programming Language"},
		{Name: "Rust", Category: "Programming Language"},
		{Name: "PHP", Category: "Programming Language"},
		{Name: "Ruby", Category: "Programming Language"},
		{Name: "Kotlin", Category: "Programming Language"},
		{Name: "Swift", Category: "Programming Language"},
		{Name: "SQL", Category: "Database"},
		{Name: "PostgreSQL", Category: "Database"},
		{Name: "MySQL", Category: "Database"},
		{Name: "MongoDB", Category: "Database"},
		{Name: "Redis", Category: "Database"},
		{Name: "Elasticsearch", Category: "Database"},
		{Name: "React", Category: "Frontend"},
		{Name: "Vue", Category: "Frontend"},
		{Name: "Angular", Category: "Frontend"},
		{Name: "Next.js", Category: "Frontend"},
		{Name: "HTML", Category: "Frontend"},
		{Name: "CSS", Category: "Frontend"},
		{Name: "Tailwind", Category: "Frontend"},
		{Name: "Node.js", Category: "Backend"},
		{Name: "Express", Category: "Backend"},
		{Name: "Django", Category: "Backend"},
		{Name: "Spring Boot", Category: "Backend"},
		{Name: "GraphQL", Category: "Backend"},
		{Name: "REST", Category: "Backend"},
		{Name: "gRPC", Category: "Backend"},
		{Name: "Docker", Category: "DevOps"},
		{Name: "Kubernetes", Category: "DevOps"},
		{Name: "Terraform", Category: "DevOps"},
		{Name: "CI/CD", Category: "DevOps"},
		{Name: "Linux", Category: "DevOps"},
		{Name: "AWS", Category: "Cloud"},
		{Name: "GCP", Category: "Cloud"},
		{Name: "Azure", Category: "Cloud"},
		{Name: "Kafka", Category: "Data"},
		{Name: "Spark", Category: "Data"},
		{Name: "Pandas", Category: "Data"},
		{Name: "Machine Learning", Category: "Data"},
		{Name: "Git", Category: "Tooling"},
		{Name: "Figma", Category: "Design"},
		{Name: "Communication", Category: "Soft Skill"},
		{Name: "Leadership", Category: "Soft Skill"},
		{Name: "Teamwork", Category: "Soft Skill"},
		{Name: "Problem Solving", Category: "Soft Skill"},
		{Name: "Time Management", Category: "Soft Skill"},
	}

	for _, it := range items {
		_, err := tx.Exec(
			ctx,
			`INSERT INTO skills (id, name, category) VALUES (gen_random_uuid(), $1, $2) ON CONFLICT (name) DO NOTHING`,
			it.Name,
			it.Category,
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
