package usecase

import (
	"context"
	"errors"

	"jobpath/internal/domain/skill"
	"jobpath/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrSkillAlreadyExists = errors.New("skill already exists")
	ErrSkillNotFound      = errors.New("skill not found")
	ErrInvalidSkillKind   = errors.New("invalid skill kind")
)

type AddUserSkillInput struct {
	SkillID uuid.UUID
	Kind    string
}

type UserSkillItem struct {
	ID        uuid.UUID
	SkillID   uuid.UUID
	SkillName string
	Kind      string
}

type UserSkillUsecase interface {
	ListUserSkills(ctx context.Context, userID uuid.UUID) ([]UserSkillItem, error)
	AddUserSkill(ctx context.Context, userID uuid.UUID, in AddUserSkillInput) (UserSkillItem, error)
	UpdateUserSkillKind(ctx context.Context, userID uuid.UUID, skillID uuid.UUID, kind string) (UserSkillItem, error)
	RemoveUserSkill(ctx context.Context, userID uuid.UUID, skillID uuid.UUID) error
}

type UserSkill struct {
	repo   repository.UserSkillRepository
	skills repository.SkillRepository
}

func NewUserSkillUsecase(repo repository.UserSkillRepository, skills repository.SkillRepository) *UserSkill {
	return &UserSkill{repo: repo, skills: skills}
}

func (u *UserSkill) ListUserSkills(ctx context.Context, userID uuid.UUID) ([]UserSkillItem, error) {
	items, err := u.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	out := make([]UserSkillItem, 0, len(items))
	for _, it := range items {
		out = append(out, toUserSkillItem(it))
	}
	return out, nil
}

func (u *UserSkill) AddUserSkill(ctx context.Context, userID uuid.UUID, in AddUserSkillInput) (UserSkillItem, error) {
	if in.SkillID == uuid.Nil {
		return UserSkillItem{}, ErrInvalidInput
	}
	if !skill.ValidKind(in.Kind) {
		return UserSkillItem{}, ErrInvalidSkillKind
	}

	exists, err := u.skills.ExistsByID(ctx, in.SkillID)
	if err != nil {
		return UserSkillItem{}, ErrInternal
	}
	if !exists {
		return UserSkillItem{}, ErrSkillNotFound
	}

	_, err = u.repo.FindByUserAndSkill(ctx, userID, in.SkillID)
	if err == nil {
		return UserSkillItem{}, ErrSkillAlreadyExists
	}
	if !errors.Is(err, repository.ErrUserSkillNotFound) {
		return UserSkillItem{}, ErrInternal
	}

	created, err := u.repo.Create(ctx, repository.UserSkill{
		ID:      uuid.New(),
		UserID:  userID,
		SkillID: in.SkillID,
		Kind:    in.Kind,
	})
	if err != nil {
		return UserSkillItem{}, ErrInternal
	}
	return toUserSkillItem(created), nil
}

func (u *UserSkill) UpdateUserSkillKind(ctx context.Context, userID uuid.UUID, skillID uuid.UUID, kind string) (UserSkillItem, error) {
	if skillID == uuid.Nil {
		return UserSkillItem{}, ErrInvalidInput
	}
	if !skill.ValidKind(kind) {
		return UserSkillItem{}, ErrInvalidSkillKind
	}

	updated, err := u.repo.UpdateKind(ctx, userID, skillID, kind)
	if err != nil {
		if errors.Is(err, repository.ErrUserSkillNotFound) {
			return UserSkillItem{}, ErrSkillNotFound
		}
		return UserSkillItem{}, ErrInternal
	}
	return toUserSkillItem(updated), nil
}

func (u *UserSkill) RemoveUserSkill(ctx context.Context, userID uuid.UUID, skillID uuid.UUID) error {
	if skillID == uuid.Nil {
		return ErrInvalidInput
	}
	if err := u.repo.Delete(ctx, userID, skillID); err != nil {
		if errors.Is(err, repository.ErrUserSkillNotFound) {
			return ErrSkillNotFound
		}
		return ErrInternal
	}
	return nil
}

func toUserSkillItem(us repository.UserSkill) UserSkillItem {
	return UserSkillItem{
		ID:        us.ID,
		SkillID:   us.SkillID,
		SkillName: us.SkillName,
		Kind:      us.Kind,
	}
}
