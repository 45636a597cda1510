package usecase

import (
	"context"
	"time"

	"jobpath/internal/domain/recommend"
	"jobpath/internal/repository"

	"github.com/google/uuid"
)

type RecommendationParams struct {
	// Limit caps the result list; zero means the engine default (10).
	Limit int
	// MinScore overrides the similarity floor; zero means the engine default
	// (0.01).
	MinScore float64
}

type RecommendedJob struct {
	JobID           uuid.UUID
	Title           string
	Company         string
	Location        string
	Description     string
	URL             string
	PostedAt        *time.Time
	RequiredSkills  []string
	SimilarityScore float64
}

type RecommendationUsecase interface {
	GetRecommendations(ctx context.Context, userID uuid.UUID, params RecommendationParams) ([]RecommendedJob, error)
}

type Recommendation struct {
	jobs       repository.JobRepository
	jobSkills  repository.JobSkillRepository
	userSkills repository.UserSkillRepository
}

func NewRecommendationUsecase(jobs repository.JobRepository, jobSkills repository.JobSkillRepository, userSkills repository.UserSkillRepository) *Recommendation {
	return &Recommendation{jobs: jobs, jobSkills: jobSkills, userSkills: userSkills}
}

// GetRecommendations assembles the two input feeds (the user's merged
// hard+soft skill set and the active job corpus with required skills) and
// hands them to the pure engine. The vocabulary and vectors live only for the
// duration of this call.
func (u *Recommendation) GetRecommendations(ctx context.Context, userID uuid.UUID, params RecommendationParams) ([]RecommendedJob, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}

	us, err := u.userSkills.FindByUserID(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	if len(us) == 0 {
		return nil, ErrUserSkillProfileEmpty
	}

	jobs, err := u.jobs.ActiveCorpus(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	if len(jobs) == 0 {
		return nil, ErrNoJobsFound
	}

	jobIDs := make([]uuid.UUID, 0, len(jobs))
	for _, j := range jobs {
		jobIDs = append(jobIDs, j.ID)
	}
	skillsByJob, err := u.jobSkills.FindByJobIDs(ctx, jobIDs)
	if err != nil {
		return nil, ErrInternal
	}

	// Hard and soft skills collapse into one flat set for scoring.
	userTokens := make([]string, 0, len(us))
	for _, it := range us {
		userTokens = append(userTokens, it.SkillName)
	}

	byID := make(map[string]repository.Job, len(jobs))
	engineJobs := make([]recommend.JobSkills, 0, len(jobs))
	for _, j := range jobs {
		id := j.ID.String()
		byID[id] = j
		engineJobs = append(engineJobs, recommend.JobSkills{
			ID:             id,
			RequiredSkills: skillsByJob[j.ID],
		})
	}

	scored := recommend.Recommend(userTokens, engineJobs, recommend.Options{
		MinScore: params.MinScore,
		Limit:    params.Limit,
	})

	out := make([]RecommendedJob, 0, len(scored))
	for _, s := range scored {
		j, ok := byID[s.ID]
		if !ok {
			continue
		}
		out = append(out, RecommendedJob{
			JobID:           j.ID,
			Title:           j.Title,
			Company:         j.Company,
			Location:        j.Location,
			Description:     j.Description,
			URL:             j.URL,
			PostedAt:        j.PostedAt,
			RequiredSkills:  skillsByJob[j.ID],
			SimilarityScore: s.Score,
		})
	}

	return out, nil
}
