package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"jobpath/internal/repository"

	"github.com/google/uuid"
)

var ErrProfileEntryNotFound = errors.New("profile entry not found")

type EducationInput struct {
	Institution  string
	Degree       string
	FieldOfStudy string
	StartYear    *int
	EndYear      *int
}

type ExperienceInput struct {
	Company     string
	Title       string
	Description string
	StartDate   *time.Time
	EndDate     *time.Time
}

type PreferencesInput struct {
	DesiredRoles       []string
	PreferredLocations []string
	MinSalary          *int64
	MaxSalary          *int64
	RemoteOK           bool
}

// Completeness drives the profile wizard: each step flips to done
// independently.
type Completeness struct {
	Education   bool `json:"education"`
	Experience  bool `json:"experience"`
	Skills      bool `json:"skills"`
	Preferences bool `json:"preferences"`
}

func (c Completeness) Percent() int {
	done := 0
	for _, b := range []bool{c.Education, c.Experience, c.Skills, c.Preferences} {
		if b {
			done++
		}
	}
	return done * 100 / 4
}

type ProfileUsecase interface {
	ListEducation(ctx context.Context, userID uuid.UUID) ([]repository.EducationEntry, error)
	AddEducation(ctx context.Context, userID uuid.UUID, in EducationInput) (repository.EducationEntry, error)
	RemoveEducation(ctx context.Context, userID uuid.UUID, id uuid.UUID) error

	ListExperience(ctx context.Context, userID uuid.UUID) ([]repository.ExperienceEntry, error)
	AddExperience(ctx context.Context, userID uuid.UUID, in ExperienceInput) (repository.ExperienceEntry, error)
	RemoveExperience(ctx context.Context, userID uuid.UUID, id uuid.UUID) error

	GetPreferences(ctx context.Context, userID uuid.UUID) (repository.Preferences, error)
	SetPreferences(ctx context.Context, userID uuid.UUID, in PreferencesInput) (repository.Preferences, error)

	GetCompleteness(ctx context.Context, userID uuid.UUID) (Completeness, error)
}

type Profile struct {
	repo       repository.ProfileRepository
	userSkills repository.UserSkillRepository
}

func NewProfileUsecase(repo repository.ProfileRepository, userSkills repository.UserSkillRepository) *Profile {
	return &Profile{repo: repo, userSkills: userSkills}
}

func (u *Profile) ListEducation(ctx context.Context, userID uuid.UUID) ([]repository.EducationEntry, error) {
	out, err := u.repo.ListEducation(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (u *Profile) AddEducation(ctx context.Context, userID uuid.UUID, in EducationInput) (repository.EducationEntry, error) {
	if strings.TrimSpace(in.Institution) == "" {
		return repository.EducationEntry{}, ErrInvalidInput
	}
	if in.StartYear != nil && in.EndYear != nil && *in.EndYear < *in.StartYear {
		return repository.EducationEntry{}, ErrInvalidInput
	}

	e := repository.EducationEntry{
		ID:           uuid.New(),
		UserID:       userID,
		Institution:  strings.TrimSpace(in.Institution),
		Degree:       strings.TrimSpace(in.Degree),
		FieldOfStudy: strings.TrimSpace(in.FieldOfStudy),
		StartYear:    in.StartYear,
		EndYear:      in.EndYear,
	}
	if err := u.repo.CreateEducation(ctx, e); err != nil {
		return repository.EducationEntry{}, ErrInternal
	}
	return e, nil
}

func (u *Profile) RemoveEducation(ctx context.Context, userID uuid.UUID, id uuid.UUID) error {
	if id == uuid.Nil {
		return ErrInvalidInput
	}
	if err := u.repo.DeleteEducation(ctx, userID, id); err != nil {
		if errors.Is(err, repository.ErrProfileEntryNotFound) {
			return ErrProfileEntryNotFound
		}
		return ErrInternal
	}
	return nil
}

func (u *Profile) ListExperience(ctx context.Context, userID uuid.UUID) ([]repository.ExperienceEntry, error) {
	out, err := u.repo.ListExperience(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (u *Profile) AddExperience(ctx context.Context, userID uuid.UUID, in ExperienceInput) (repository.ExperienceEntry, error) {
	if strings.TrimSpace(in.Company) == "" || strings.TrimSpace(in.Title) == "" {
		return repository.ExperienceEntry{}, ErrInvalidInput
	}
	if in.StartDate != nil && in.EndDate != nil && in.EndDate.Before(*in.StartDate) {
		return repository.ExperienceEntry{}, ErrInvalidInput
	}

	e := repository.ExperienceEntry{
		ID:          uuid.New(),
		UserID:      userID,
		Company:     strings.TrimSpace(in.Company),
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
	}
	if err := u.repo.CreateExperience(ctx, e); err != nil {
		return repository.ExperienceEntry{}, ErrInternal
	}
	return e, nil
}

func (u *Profile) RemoveExperience(ctx context.Context, userID uuid.UUID, id uuid.UUID) error {
	if id == uuid.Nil {
		return ErrInvalidInput
	}
	if err := u.repo.DeleteExperience(ctx, userID, id); err != nil {
		if errors.Is(err, repository.ErrProfileEntryNotFound) {
			return ErrProfileEntryNotFound
		}
		return ErrInternal
	}
	return nil
}

func (u *Profile) GetPreferences(ctx context.Context, userID uuid.UUID) (repository.Preferences, error) {
	p, found, err := u.repo.GetPreferences(ctx, userID)
	if err != nil {
		return repository.Preferences{}, ErrInternal
	}
	if !found {
		return repository.Preferences{UserID: userID, DesiredRoles: []string{}, PreferredLocations: []string{}}, nil
	}
	return p, nil
}

func (u *Profile) SetPreferences(ctx context.Context, userID uuid.UUID, in PreferencesInput) (repository.Preferences, error) {
	if in.MinSalary != nil && in.MaxSalary != nil && *in.MaxSalary < *in.MinSalary {
		return repository.Preferences{}, ErrInvalidInput
	}

	p := repository.Preferences{
		UserID:             userID,
		DesiredRoles:       trimNonEmpty(in.DesiredRoles),
		PreferredLocations: trimNonEmpty(in.PreferredLocations),
		MinSalary:          in.MinSalary,
		MaxSalary:          in.MaxSalary,
		RemoteOK:           in.RemoteOK,
	}
	if err := u.repo.UpsertPreferences(ctx, p); err != nil {
		return repository.Preferences{}, ErrInternal
	}
	return p, nil
}

func (u *Profile) GetCompleteness(ctx context.Context, userID uuid.UUID) (Completeness, error) {
	var c Completeness

	edu, err := u.repo.ListEducation(ctx, userID)
	if err != nil {
		return Completeness{}, ErrInternal
	}
	c.Education = len(edu) > 0

	exp, err := u.repo.ListExperience(ctx, userID)
	if err != nil {
		return Completeness{}, ErrInternal
	}
	c.Experience = len(exp) > 0

	skills, err := u.userSkills.FindByUserID(ctx, userID)
	if err != nil {
		return Completeness{}, ErrInternal
	}
	c.Skills = len(skills) > 0

	_, found, err := u.repo.GetPreferences(ctx, userID)
	if err != nil {
		return Completeness{}, ErrInternal
	}
	c.Preferences = found

	return c, nil
}

func trimNonEmpty(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}
