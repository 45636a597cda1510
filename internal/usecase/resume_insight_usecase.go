package usecase

import (
	"context"

	"jobpath/internal/domain/recommend"
	"jobpath/internal/repository"

	"github.com/google/uuid"
)

const topMissingSkillCount = 8

type SkillGap struct {
	SkillName string `json:"skill_name"`
	JobCount  int    `json:"job_count"`
}

type ResumeInsight struct {
	TotalActiveJobs int `json:"total_active_jobs"`
	SkillCount      int `json:"skill_count"`
	HardSkillCount  int `json:"hard_skill_count"`
	SoftSkillCount  int `json:"soft_skill_count"`
	// CoveragePercent is the share of in-demand skills the user already has.
	CoveragePercent int          `json:"coverage_percent"`
	MissingSkills   []SkillGap   `json:"missing_skills"`
	Completeness    Completeness `json:"completeness"`
}

type ResumeInsightUsecase interface {
	GetInsights(ctx context.Context, userID uuid.UUID) (ResumeInsight, error)
}

type ResumeInsights struct {
	userSkills repository.UserSkillRepository
	jobSkills  repository.JobSkillRepository
	jobs       repository.JobRepository
	profile    ProfileUsecase
}

func NewResumeInsightUsecase(
	userSkills repository.UserSkillRepository,
	jobSkills repository.JobSkillRepository,
	jobs repository.JobRepository,
	profile ProfileUsecase,
) *ResumeInsights {
	return &ResumeInsights{
		userSkills: userSkills,
		jobSkills:  jobSkills,
		jobs:       jobs,
		profile:    profile,
	}
}

func (u *ResumeInsights) GetInsights(ctx context.Context, userID uuid.UUID) (ResumeInsight, error) {
	if userID == uuid.Nil {
		return ResumeInsight{}, ErrUnauthorized
	}

	skills, err := u.userSkills.FindByUserID(ctx, userID)
	if err != nil {
		return ResumeInsight{}, ErrInternal
	}

	owned := make(map[string]struct{}, len(skills))
	hard, soft := 0, 0
	for _, s := range skills {
		owned[recommend.NormalizeToken(s.SkillName)] = struct{}{}
		switch s.Kind {
		case "hard":
			hard++
		case "soft":
			soft++
		}
	}

	demand, err := u.jobSkills.DemandBySkill(ctx)
	if err != nil {
		return ResumeInsight{}, ErrInternal
	}

	covered := 0
	missing := make([]SkillGap, 0, topMissingSkillCount)
	for _, d := range demand {
		name := recommend.NormalizeToken(d.SkillName)
		if _, ok := owned[name]; ok {
			covered++
			continue
		}
		if len(missing) < topMissingSkillCount {
			missing = append(missing, SkillGap{SkillName: name, JobCount: d.JobCount})
		}
	}

	coverage := 0
	if len(demand) > 0 {
		coverage = covered * 100 / len(demand)
	}

	total, err := u.jobs.CountActive(ctx)
	if err != nil {
		return ResumeInsight{}, ErrInternal
	}

	completeness, err := u.profile.GetCompleteness(ctx, userID)
	if err != nil {
		return ResumeInsight{}, ErrInternal
	}

	return ResumeInsight{
		TotalActiveJobs: total,
		SkillCount:      len(skills),
		HardSkillCount:  hard,
		SoftSkillCount:  soft,
		CoveragePercent: coverage,
		MissingSkills:   missing,
		Completeness:    completeness,
	}, nil
}
