package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"jobpath/internal/repository"

	"github.com/google/uuid"
)

var ErrJobNotFound = errors.New("job not found")

const jobListCacheTTL = 5 * time.Minute

type JobListParams struct {
	Query  string
	Limit  int
	Offset int
}

type JobItem struct {
	JobID          uuid.UUID  `json:"job_id"`
	Title          string     `json:"title"`
	Company        string     `json:"company"`
	Location       string     `json:"location"`
	Description    string     `json:"description"`
	URL            string     `json:"url"`
	PostedAt       *time.Time `json:"posted_at"`
	RequiredSkills []string   `json:"required_skills"`
}

type JobUsecase interface {
	ListJobs(ctx context.Context, params JobListParams) ([]JobItem, error)
	GetJob(ctx context.Context, jobID uuid.UUID) (JobItem, error)
}

type Jobs struct {
	jobs      repository.JobRepository
	jobSkills repository.JobSkillRepository
	cache     Cache
}

func NewJobUsecase(jobs repository.JobRepository, jobSkills repository.JobSkillRepository, cache Cache) *Jobs {
	return &Jobs{jobs: jobs, jobSkills: jobSkills, cache: cache}
}

func (u *Jobs) ListJobs(ctx context.Context, params JobListParams) ([]JobItem, error) {
	if params.Limit < 0 || params.Offset < 0 {
		return nil, ErrInvalidInput
	}

	key := jobListCacheKey(params)
	if u.cache != nil {
		var cached []JobItem
		if hit, err := u.cache.GetJSON(ctx, key, &cached); err == nil && hit {
			return cached, nil
		}
	}

	jobs, err := u.jobs.ListActiveJobs(ctx, repository.JobFilter{
		Query:  params.Query,
		Limit:  params.Limit,
		Offset: params.Offset,
	})
	if err != nil {
		return nil, ErrInternal
	}

	out, err := u.attachSkills(ctx, jobs)
	if err != nil {
		return nil, ErrInternal
	}

	if u.cache != nil {
		_ = u.cache.SetJSON(ctx, key, out, jobListCacheTTL)
	}
	return out, nil
}

func (u *Jobs) GetJob(ctx context.Context, jobID uuid.UUID) (JobItem, error) {
	if jobID == uuid.Nil {
		return JobItem{}, ErrInvalidInput
	}

	j, err := u.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return JobItem{}, ErrJobNotFound
		}
		return JobItem{}, ErrInternal
	}

	skills, err := u.jobSkills.FindByJobID(ctx, jobID)
	if err != nil {
		return JobItem{}, ErrInternal
	}

	return toJobItem(j, skills), nil
}

func (u *Jobs) attachSkills(ctx context.Context, jobs []repository.Job) ([]JobItem, error) {
	ids := make([]uuid.UUID, 0, len(jobs))
	for _, j := range jobs {
		ids = append(ids, j.ID)
	}
	skillsByJob, err := u.jobSkills.FindByJobIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]JobItem, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, toJobItem(j, skillsByJob[j.ID]))
	}
	return out, nil
}

func toJobItem(j repository.Job, skills []string) JobItem {
	if skills == nil {
		skills = []string{}
	}
	return JobItem{
		JobID:          j.ID,
		Title:          j.Title,
		Company:        j.Company,
		Location:       j.Location,
		Description:    j.Description,
		URL:            j.URL,
		PostedAt:       j.PostedAt,
		RequiredSkills: skills,
	}
}

func jobListCacheKey(params JobListParams) string {
	q := strings.ToLower(strings.TrimSpace(params.Query))
	return fmt.Sprintf("jobs:list:%s:%d:%d", q, params.Limit, params.Offset)
}
