package usecase

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"jobpath/internal/repository"

	"github.com/google/uuid"
)

type mockJobRepo struct {
	corpus []repository.Job
	byID   map[uuid.UUID]repository.Job
	err    error
}

func (m mockJobRepo) GetByID(_ context.Context, id uuid.UUID) (repository.Job, error) {
	if j, ok := m.byID[id]; ok {
		return j, nil
	}
	return repository.Job{}, repository.ErrJobNotFound
}
func (m mockJobRepo) ExistsByID(context.Context, uuid.UUID) (bool, error) { return false, nil }
func (m mockJobRepo) ListActiveJobs(context.Context, repository.JobFilter) ([]repository.Job, error) {
	return nil, nil
}
func (m mockJobRepo) ActiveCorpus(context.Context) ([]repository.Job, error) {
	return m.corpus, m.err
}
func (m mockJobRepo) CountActive(context.Context) (int, error)                 { return len(m.corpus), nil }
func (m mockJobRepo) UpsertJobs(context.Context, []repository.JobUpsert) error { return nil }
func (m mockJobRepo) DeactivateMissing(context.Context, uuid.UUID, []string) error {
	return nil
}

type mockJobSkillRepo struct {
	m      map[uuid.UUID][]string
	demand []repository.SkillDemand
	err    error
}

func (m mockJobSkillRepo) FindByJobID(context.Context, uuid.UUID) ([]string, error) {
	return nil, nil
}
func (m mockJobSkillRepo) FindByJobIDs(context.Context, []uuid.UUID) (map[uuid.UUID][]string, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.m, nil
}
func (m mockJobSkillRepo) DemandBySkill(context.Context) ([]repository.SkillDemand, error) {
	return m.demand, m.err
}

type mockUserSkillRepo struct {
	items []repository.UserSkill
	err   error
}

func (m mockUserSkillRepo) FindByUserID(context.Context, uuid.UUID) ([]repository.UserSkill, error) {
	return m.items, m.err
}
func (m mockUserSkillRepo) FindByUserAndSkill(context.Context, uuid.UUID, uuid.UUID) (repository.UserSkill, error) {
	return repository.UserSkill{}, repository.ErrUserSkillNotFound
}
func (m mockUserSkillRepo) Create(context.Context, repository.UserSkill) (repository.UserSkill, error) {
	return repository.UserSkill{}, nil
}
func (m mockUserSkillRepo) UpdateKind(context.Context, uuid.UUID, uuid.UUID, string) (repository.UserSkill, error) {
	return repository.UserSkill{}, nil
}
func (m mockUserSkillRepo) Delete(context.Context, uuid.UUID, uuid.UUID) error { return nil }

func userSkills(names ...string) []repository.UserSkill {
	out := make([]repository.UserSkill, 0, len(names))
	for _, n := range names {
		out = append(out, repository.UserSkill{
			ID:        uuid.New(),
			SkillID:   uuid.New(),
			SkillName: n,
			Kind:      "hard",
		})
	}
	return out
}

func TestRecommendation_EmptySkillProfile(t *testing.T) {
	uc := NewRecommendationUsecase(mockJobRepo{}, mockJobSkillRepo{}, mockUserSkillRepo{})
	_, err := uc.GetRecommendations(context.Background(), uuid.New(), RecommendationParams{})
	if !errors.Is(err, ErrUserSkillProfileEmpty) {
		t.Fatalf("expected ErrUserSkillProfileEmpty, got %v", err)
	}
}

func TestRecommendation_NilUser(t *testing.T) {
	uc := NewRecommendationUsecase(mockJobRepo{}, mockJobSkillRepo{}, mockUserSkillRepo{})
	_, err := uc.GetRecommendations(context.Background(), uuid.Nil, RecommendationParams{})
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestRecommendation_EmptyCorpus(t *testing.T) {
	uc := NewRecommendationUsecase(
		mockJobRepo{},
		mockJobSkillRepo{},
		mockUserSkillRepo{items: userSkills("Go")},
	)
	_, err := uc.GetRecommendations(context.Background(), uuid.New(), RecommendationParams{})
	if !errors.Is(err, ErrNoJobsFound) {
		t.Fatalf("expected ErrNoJobsFound, got %v", err)
	}
}

func TestRecommendation_RanksAndAnnotates(t *testing.T) {
	exact := uuid.New()
	partial := uuid.New()
	none := uuid.New()

	uc := NewRecommendationUsecase(
		mockJobRepo{corpus: []repository.Job{
			{ID: partial, Title: "Fullstack Engineer", Company: "Beta"},
			{ID: exact, Title: "React Engineer", Company: "Acme"},
			{ID: none, Title: "Data Scientist", Company: "Gamma"},
		}},
		mockJobSkillRepo{m: map[uuid.UUID][]string{
			exact:   {"reactjs", "communication"},
			partial: {"ReactJS", "Node.js", "GraphQL"},
			none:    {"Python", "Pandas"},
		}},
		mockUserSkillRepo{items: userSkills("ReactJS", "Communication")},
	)

	out, err := uc.GetRecommendations(context.Background(), uuid.New(), RecommendationParams{})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 results, got %d", len(out))
	}
	if out[0].JobID != exact {
		t.Fatalf("expected exact-match job first, got %v", out[0].JobID)
	}
	if out[0].SimilarityScore <= out[1].SimilarityScore {
		t.Fatalf("not ordered by score: %v then %v", out[0].SimilarityScore, out[1].SimilarityScore)
	}
	if out[0].SimilarityScore < 0 || out[0].SimilarityScore > 1 {
		t.Fatalf("score %v out of range", out[0].SimilarityScore)
	}
	if out[0].Title != "React Engineer" || out[0].Company != "Acme" {
		t.Fatalf("display fields not carried through: %+v", out[0])
	}
	if len(out[0].RequiredSkills) != 2 {
		t.Fatalf("required skills not attached: %+v", out[0].RequiredSkills)
	}
}

func TestRecommendation_Deterministic(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	uc := NewRecommendationUsecase(
		mockJobRepo{corpus: []repository.Job{
			{ID: a, Title: "A"}, {ID: b, Title: "B"}, {ID: c, Title: "C"},
		}},
		mockJobSkillRepo{m: map[uuid.UUID][]string{
			a: {"go", "docker"},
			b: {"go"},
			c: {"go", "docker", "kubernetes", "terraform"},
		}},
		mockUserSkillRepo{items: userSkills("Go", "Docker")},
	)

	first, err := uc.GetRecommendations(context.Background(), uuid.New(), RecommendationParams{})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := uc.GetRecommendations(context.Background(), uuid.New(), RecommendationParams{})
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d differs", i)
		}
	}
}

func TestRecommendation_RepoErrorIsInternal(t *testing.T) {
	uc := NewRecommendationUsecase(
		mockJobRepo{err: errors.New("boom")},
		mockJobSkillRepo{},
		mockUserSkillRepo{items: userSkills("Go")},
	)
	_, err := uc.GetRecommendations(context.Background(), uuid.New(), RecommendationParams{})
	if !errors.Is(err, ErrInternal) {
		t.Fatalf("expected ErrInternal, got %v", err)
	}
}
