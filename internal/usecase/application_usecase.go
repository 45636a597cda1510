package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"jobpath/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrApplicationNotFound = errors.New("application not found")
	ErrAlreadyApplied      = errors.New("already applied")
	ErrInvalidStatus       = errors.New("invalid application status")
	ErrInvalidTransition   = errors.New("invalid status transition")
)

const (
	StatusApplied      = "applied"
	StatusInterviewing = "interviewing"
	StatusOffered      = "offered"
	StatusRejected     = "rejected"
	StatusWithdrawn    = "withdrawn"
)

// allowedTransitions encodes the tracker's forward-only lifecycle. Terminal
// states accept no further updates.
var allowedTransitions = map[string][]string{
	StatusApplied:      {StatusInterviewing, StatusRejected, StatusWithdrawn},
	StatusInterviewing: {StatusOffered, StatusRejected, StatusWithdrawn},
	StatusOffered:      {StatusRejected, StatusWithdrawn},
	StatusRejected:     {},
	StatusWithdrawn:    {},
}

type ApplicationItem struct {
	ApplicationID uuid.UUID `json:"application_id"`
	Status        string    `json:"status"`
	Note          string    `json:"note"`
	AppliedAt     time.Time `json:"applied_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	Job           JobItem   `json:"job"`
}

type ApplicationUsecase interface {
	Apply(ctx context.Context, userID uuid.UUID, jobID uuid.UUID, note string) (ApplicationItem, error)
	UpdateStatus(ctx context.Context, userID uuid.UUID, jobID uuid.UUID, status, note string) (ApplicationItem, error)
	ListApplications(ctx context.Context, userID uuid.UUID) ([]ApplicationItem, error)
}

type Applications struct {
	repo repository.ApplicationRepository
	jobs repository.JobRepository
}

func NewApplicationUsecase(repo repository.ApplicationRepository, jobs repository.JobRepository) *Applications {
	return &Applications{repo: repo, jobs: jobs}
}

func (u *Applications) Apply(ctx context.Context, userID uuid.UUID, jobID uuid.UUID, note string) (ApplicationItem, error) {
	if jobID == uuid.Nil {
		return ApplicationItem{}, ErrInvalidInput
	}

	j, err := u.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return ApplicationItem{}, ErrJobNotFound
		}
		return ApplicationItem{}, ErrInternal
	}

	a := repository.Application{
		ID:     uuid.New(),
		UserID: userID,
		JobID:  jobID,
		Status: StatusApplied,
		Note:   strings.TrimSpace(note),
	}
	if err := u.repo.Create(ctx, a); err != nil {
		if errors.Is(err, repository.ErrApplicationExists) {
			return ApplicationItem{}, ErrAlreadyApplied
		}
		return ApplicationItem{}, ErrInternal
	}

	created, err := u.repo.FindByUserAndJob(ctx, userID, jobID)
	if err != nil {
		return ApplicationItem{}, ErrInternal
	}
	return toApplicationItem(created, j), nil
}

func (u *Applications) UpdateStatus(ctx context.Context, userID uuid.UUID, jobID uuid.UUID, status, note string) (ApplicationItem, error) {
	if jobID == uuid.Nil {
		return ApplicationItem{}, ErrInvalidInput
	}
	status = strings.ToLower(strings.TrimSpace(status))
	if _, ok := allowedTransitions[status]; !ok {
		return ApplicationItem{}, ErrInvalidStatus
	}

	current, err := u.repo.FindByUserAndJob(ctx, userID, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrApplicationNotFound) {
			return ApplicationItem{}, ErrApplicationNotFound
		}
		return ApplicationItem{}, ErrInternal
	}

	if !transitionAllowed(current.Status, status) {
		return ApplicationItem{}, ErrInvalidTransition
	}

	if strings.TrimSpace(note) == "" {
		note = current.Note
	}
	updated, err := u.repo.UpdateStatus(ctx, userID, jobID, status, strings.TrimSpace(note))
	if err != nil {
		if errors.Is(err, repository.ErrApplicationNotFound) {
			return ApplicationItem{}, ErrApplicationNotFound
		}
		return ApplicationItem{}, ErrInternal
	}

	j, err := u.jobs.GetByID(ctx, jobID)
	if err != nil {
		return ApplicationItem{}, ErrInternal
	}
	return toApplicationItem(updated, j), nil
}

func (u *Applications) ListApplications(ctx context.Context, userID uuid.UUID) ([]ApplicationItem, error) {
	items, err := u.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}

	out := make([]ApplicationItem, 0, len(items))
	for _, it := range items {
		out = append(out, toApplicationItem(it.Application, it.Job))
	}
	return out, nil
}

func transitionAllowed(from, to string) bool {
	if from == to {
		return true
	}
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func toApplicationItem(a repository.Application, j repository.Job) ApplicationItem {
	return ApplicationItem{
		ApplicationID: a.ID,
		Status:        a.Status,
		Note:          a.Note,
		AppliedAt:     a.AppliedAt,
		UpdatedAt:     a.UpdatedAt,
		Job:           toJobItem(j, nil),
	}
}
