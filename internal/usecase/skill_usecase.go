package usecase

import (
	"context"

	"jobpath/internal/repository"

	"github.com/google/uuid"
)

type SkillItem struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Category string    `json:"category"`
}

// SkillCatalogUsecase serves the read-only skill catalog users pick from.
type SkillCatalogUsecase interface {
	ListSkills(ctx context.Context, search string, limit int) ([]SkillItem, error)
}

type SkillCatalog struct {
	repo repository.SkillRepository
}

func NewSkillCatalogUsecase(repo repository.SkillRepository) *SkillCatalog {
	return &SkillCatalog{repo: repo}
}

func (u *SkillCatalog) ListSkills(ctx context.Context, search string, limit int) ([]SkillItem, error) {
	items, err := u.repo.ListSkills(ctx, search, limit)
	if err != nil {
		return nil, ErrInternal
	}

	out := make([]SkillItem, 0, len(items))
	for _, it := range items {
		out = append(out, SkillItem{ID: it.ID, Name: it.Name, Category: it.Category})
	}
	return out, nil
}
