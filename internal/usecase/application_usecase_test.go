package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"jobpath/internal/repository"

	"github.com/google/uuid"
)

type mockApplicationRepo struct {
	byJob     map[uuid.UUID]repository.Application
	createErr error
	findErr   error
}

func newMockApplicationRepo() *mockApplicationRepo {
	return &mockApplicationRepo{byJob: map[uuid.UUID]repository.Application{}}
}

func (m *mockApplicationRepo) Create(_ context.Context, a repository.Application) error {
	if m.createErr != nil {
		return m.createErr
	}
	if _, ok := m.byJob[a.JobID]; ok {
		return repository.ErrApplicationExists
	}
	a.AppliedAt = time.Now()
	a.UpdatedAt = a.AppliedAt
	m.byJob[a.JobID] = a
	return nil
}

func (m *mockApplicationRepo) FindByUserAndJob(_ context.Context, _ uuid.UUID, jobID uuid.UUID) (repository.Application, error) {
	if m.findErr != nil {
		return repository.Application{}, m.findErr
	}
	a, ok := m.byJob[jobID]
	if !ok {
		return repository.Application{}, repository.ErrApplicationNotFound
	}
	return a, nil
}

func (m *mockApplicationRepo) UpdateStatus(_ context.Context, _ uuid.UUID, jobID uuid.UUID, status, note string) (repository.Application, error) {
	a, ok := m.byJob[jobID]
	if !ok {
		return repository.Application{}, repository.ErrApplicationNotFound
	}
	a.Status = status
	a.Note = note
	a.UpdatedAt = time.Now()
	m.byJob[jobID] = a
	return a, nil
}

func (m *mockApplicationRepo) ListByUser(context.Context, uuid.UUID) ([]repository.ApplicationWithJob, error) {
	out := make([]repository.ApplicationWithJob, 0, len(m.byJob))
	for _, a := range m.byJob {
		out = append(out, repository.ApplicationWithJob{Application: a})
	}
	return out, nil
}

func applicationFixture() (*Applications, *mockApplicationRepo, uuid.UUID) {
	jobID := uuid.New()
	jobs := mockJobRepo{byID: map[uuid.UUID]repository.Job{
		jobID: {ID: jobID, Title: "Backend Engineer", Company: "Acme"},
	}}
	repo := newMockApplicationRepo()
	return NewApplicationUsecase(repo, jobs), repo, jobID
}

func TestApplication_Apply(t *testing.T) {
	uc, _, jobID := applicationFixture()

	got, err := uc.Apply(context.Background(), uuid.New(), jobID, "  referred by a friend  ")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.Status != StatusApplied {
		t.Fatalf("expected status %q, got %q", StatusApplied, got.Status)
	}
	if got.Note != "referred by a friend" {
		t.Fatalf("note not trimmed: %q", got.Note)
	}
	if got.Job.Title != "Backend Engineer" {
		t.Fatalf("job fields not attached: %+v", got.Job)
	}
}

func TestApplication_Apply_JobNotFound(t *testing.T) {
	uc, _, _ := applicationFixture()

	_, err := uc.Apply(context.Background(), uuid.New(), uuid.New(), "")
	if !errors.Is(err, ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound, got %v", err)
	}
}

func TestApplication_Apply_Duplicate(t *testing.T) {
	uc, _, jobID := applicationFixture()
	userID := uuid.New()

	if _, err := uc.Apply(context.Background(), userID, jobID, ""); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	_, err := uc.Apply(context.Background(), userID, jobID, "")
	if !errors.Is(err, ErrAlreadyApplied) {
		t.Fatalf("expected ErrAlreadyApplied, got %v", err)
	}
}

func TestApplication_UpdateStatus(t *testing.T) {
	uc, _, jobID := applicationFixture()
	userID := uuid.New()

	if _, err := uc.Apply(context.Background(), userID, jobID, "first note"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	got, err := uc.UpdateStatus(context.Background(), userID, jobID, "Interviewing", "")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.Status != StatusInterviewing {
		t.Fatalf("expected status %q, got %q", StatusInterviewing, got.Status)
	}
	if got.Note != "first note" {
		t.Fatalf("blank note should keep the existing one, got %q", got.Note)
	}

	got, err = uc.UpdateStatus(context.Background(), userID, jobID, "offered", "got an offer")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.Status != StatusOffered || got.Note != "got an offer" {
		t.Fatalf("unexpected item: %+v", got)
	}
}

func TestApplication_UpdateStatus_UnknownStatus(t *testing.T) {
	uc, _, jobID := applicationFixture()

	_, err := uc.UpdateStatus(context.Background(), uuid.New(), jobID, "ghosted", "")
	if !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestApplication_UpdateStatus_NotFound(t *testing.T) {
	uc, _, jobID := applicationFixture()

	_, err := uc.UpdateStatus(context.Background(), uuid.New(), jobID, StatusInterviewing, "")
	if !errors.Is(err, ErrApplicationNotFound) {
		t.Fatalf("expected ErrApplicationNotFound, got %v", err)
	}
}

func TestApplication_UpdateStatus_TerminalIsFrozen(t *testing.T) {
	uc, repo, jobID := applicationFixture()
	userID := uuid.New()

	if _, err := uc.Apply(context.Background(), userID, jobID, ""); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, err := uc.UpdateStatus(context.Background(), userID, jobID, StatusRejected, ""); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	_, err := uc.UpdateStatus(context.Background(), userID, jobID, StatusInterviewing, "")
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	if repo.byJob[jobID].Status != StatusRejected {
		t.Fatalf("terminal status mutated: %q", repo.byJob[jobID].Status)
	}
}

func TestTransitionAllowed(t *testing.T) {
	cases := []struct {
		from string
		to   string
		want bool
	}{
		{StatusApplied, StatusInterviewing, true},
		{StatusApplied, StatusRejected, true},
		{StatusApplied, StatusWithdrawn, true},
		{StatusApplied, StatusOffered, false},
		{StatusInterviewing, StatusOffered, true},
		{StatusInterviewing, StatusApplied, false},
		{StatusOffered, StatusWithdrawn, true},
		{StatusOffered, StatusInterviewing, false},
		{StatusRejected, StatusInterviewing, false},
		{StatusWithdrawn, StatusApplied, false},
		{StatusOffered, StatusOffered, true},
	}

	for _, tc := range cases {
		if got := transitionAllowed(tc.from, tc.to); got != tc.want {
			t.Errorf("transitionAllowed(%q, %q) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}
