package usecase

import (
	"context"
	"testing"

	"jobpath/internal/repository"

	"github.com/google/uuid"
)

type stubProfileUsecase struct {
	completeness Completeness
}

func (s stubProfileUsecase) ListEducation(context.Context, uuid.UUID) ([]repository.EducationEntry, error) {
	return nil, nil
}
func (s stubProfileUsecase) AddEducation(context.Context, uuid.UUID, EducationInput) (repository.EducationEntry, error) {
	return repository.EducationEntry{}, nil
}
func (s stubProfileUsecase) RemoveEducation(context.Context, uuid.UUID, uuid.UUID) error { return nil }
func (s stubProfileUsecase) ListExperience(context.Context, uuid.UUID) ([]repository.ExperienceEntry, error) {
	return nil, nil
}
func (s stubProfileUsecase) AddExperience(context.Context, uuid.UUID, ExperienceInput) (repository.ExperienceEntry, error) {
	return repository.ExperienceEntry{}, nil
}
func (s stubProfileUsecase) RemoveExperience(context.Context, uuid.UUID, uuid.UUID) error { return nil }
func (s stubProfileUsecase) GetPreferences(context.Context, uuid.UUID) (repository.Preferences, error) {
	return repository.Preferences{}, nil
}
func (s stubProfileUsecase) SetPreferences(context.Context, uuid.UUID, PreferencesInput) (repository.Preferences, error) {
	return repository.Preferences{}, nil
}
func (s stubProfileUsecase) GetCompleteness(context.Context, uuid.UUID) (Completeness, error) {
	return s.completeness, nil
}

func TestResumeInsights_CoverageAndGaps(t *testing.T) {
	skills := userSkills("Go", "Docker")
	skills[1].Kind = "soft"

	uc := NewResumeInsightUsecase(
		mockUserSkillRepo{items: skills},
		mockJobSkillRepo{demand: []repository.SkillDemand{
			{SkillName: "go", JobCount: 12},
			{SkillName: "kubernetes", JobCount: 9},
			{SkillName: "docker", JobCount: 7},
			{SkillName: "terraform", JobCount: 3},
		}},
		mockJobRepo{corpus: []repository.Job{{ID: uuid.New()}, {ID: uuid.New()}}},
		stubProfileUsecase{completeness: Completeness{Skills: true}},
	)

	got, err := uc.GetInsights(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("GetInsights: %v", err)
	}

	if got.SkillCount != 2 || got.HardSkillCount != 1 || got.SoftSkillCount != 1 {
		t.Fatalf("skill counts = %d/%d/%d", got.SkillCount, got.HardSkillCount, got.SoftSkillCount)
	}
	// 2 of 4 in-demand skills covered.
	if got.CoveragePercent != 50 {
		t.Fatalf("coverage = %d, want 50", got.CoveragePercent)
	}
	if len(got.MissingSkills) != 2 {
		t.Fatalf("missing = %+v", got.MissingSkills)
	}
	if got.MissingSkills[0].SkillName != "kubernetes" || got.MissingSkills[0].JobCount != 9 {
		t.Fatalf("top gap = %+v", got.MissingSkills[0])
	}
	if got.TotalActiveJobs != 2 {
		t.Fatalf("total active = %d", got.TotalActiveJobs)
	}
	if !got.Completeness.Skills {
		t.Fatalf("completeness not carried: %+v", got.Completeness)
	}
}

func TestResumeInsights_NoDemandData(t *testing.T) {
	uc := NewResumeInsightUsecase(
		mockUserSkillRepo{items: userSkills("Go")},
		mockJobSkillRepo{},
		mockJobRepo{},
		stubProfileUsecase{},
	)

	got, err := uc.GetInsights(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("GetInsights: %v", err)
	}
	if got.CoveragePercent != 0 {
		t.Fatalf("coverage = %d, want 0", got.CoveragePercent)
	}
	if len(got.MissingSkills) != 0 {
		t.Fatalf("missing = %+v", got.MissingSkills)
	}
}

func TestResumeInsights_NilUser(t *testing.T) {
	uc := NewResumeInsightUsecase(mockUserSkillRepo{}, mockJobSkillRepo{}, mockJobRepo{}, stubProfileUsecase{})
	if _, err := uc.GetInsights(context.Background(), uuid.Nil); err != ErrUnauthorized {
		t.Fatalf("err = %v, want ErrUnauthorized", err)
	}
}
