package usecase

import (
	"context"
	"errors"
	"time"

	"jobpath/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrBookmarkNotFound  = errors.New("bookmark not found")
	ErrAlreadyBookmarked = errors.New("job already bookmarked")
)

type BookmarkItem struct {
	BookmarkID uuid.UUID `json:"bookmark_id"`
	SavedAt    time.Time `json:"saved_at"`
	Job        JobItem   `json:"job"`
}

type BookmarkUsecase interface {
	SaveJob(ctx context.Context, userID uuid.UUID, jobID uuid.UUID) error
	UnsaveJob(ctx context.Context, userID uuid.UUID, jobID uuid.UUID) error
	ListSavedJobs(ctx context.Context, userID uuid.UUID) ([]BookmarkItem, error)
}

type Bookmarks struct {
	repo repository.BookmarkRepository
	jobs repository.JobRepository
}

func NewBookmarkUsecase(repo repository.BookmarkRepository, jobs repository.JobRepository) *Bookmarks {
	return &Bookmarks{repo: repo, jobs: jobs}
}

func (u *Bookmarks) SaveJob(ctx context.Context, userID uuid.UUID, jobID uuid.UUID) error {
	if jobID == uuid.Nil {
		return ErrInvalidInput
	}

	exists, err := u.jobs.ExistsByID(ctx, jobID)
	if err != nil {
		return ErrInternal
	}
	if !exists {
		return ErrJobNotFound
	}

	err = u.repo.Create(ctx, repository.Bookmark{
		ID:     uuid.New(),
		UserID: userID,
		JobID:  jobID,
	})
	if err != nil {
		if errors.Is(err, repository.ErrBookmarkExists) {
			return ErrAlreadyBookmarked
		}
		return ErrInternal
	}
	return nil
}

func (u *Bookmarks) UnsaveJob(ctx context.Context, userID uuid.UUID, jobID uuid.UUID) error {
	if jobID == uuid.Nil {
		return ErrInvalidInput
	}
	if err := u.repo.Delete(ctx, userID, jobID); err != nil {
		if errors.Is(err, repository.ErrBookmarkNotFound) {
			return ErrBookmarkNotFound
		}
		return ErrInternal
	}
	return nil
}

func (u *Bookmarks) ListSavedJobs(ctx context.Context, userID uuid.UUID) ([]BookmarkItem, error) {
	items, err := u.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}

	out := make([]BookmarkItem, 0, len(items))
	for _, it := range items {
		out = append(out, BookmarkItem{
			BookmarkID: it.Bookmark.ID,
			SavedAt:    it.Bookmark.CreatedAt,
			Job:        toJobItem(it.Job, nil),
		})
	}
	return out, nil
}
