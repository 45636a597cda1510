package recommend

import (
	"fmt"
	"math"
	"reflect"
	"testing"
)

func TestBuildVocabulary_NormalizesAndSorts(t *testing.T) {
	vocab := BuildVocabulary(
		[]string{"ReactJS", " Communication ", ""},
		[]JobSkills{
			{ID: "a", RequiredSkills: []string{"reactjs", "Node.js", "   "}},
			{ID: "b", RequiredSkills: []string{"REACTJS"}},
		},
	)
	want := []string{"communication", "node.js", "reactjs"}
	if !reflect.DeepEqual(vocab, want) {
		t.Fatalf("vocabulary = %v, want %v", vocab, want)
	}
}

func TestBuildVocabulary_OrderIndependent(t *testing.T) {
	a := BuildVocabulary([]string{"go", "sql"}, []JobSkills{
		{ID: "1", RequiredSkills: []string{"docker", "go"}},
		{ID: "2", RequiredSkills: []string{"aws"}},
	})
	b := BuildVocabulary([]string{"sql", "go"}, []JobSkills{
		{ID: "2", RequiredSkills: []string{"aws"}},
		{ID: "1", RequiredSkills: []string{"go", "docker"}},
	})
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("vocabulary depends on input order: %v vs %v", a, b)
	}
}

func TestEncode_EmptySetAndEmptyVocabulary(t *testing.T) {
	vocab := []string{"go", "sql"}
	vec := Encode(vocab, nil)
	if len(vec) != 2 || vec[0] != 0 || vec[1] != 0 {
		t.Fatalf("expected all-zero vector of len 2, got %v", vec)
	}

	empty := Encode(nil, map[string]struct{}{"go": {}})
	if len(empty) != 0 {
		t.Fatalf("expected zero-length vector, got %v", empty)
	}
}

func TestCosineSimilarity_ZeroMagnitudeGuard(t *testing.T) {
	if got := CosineSimilarity([]float64{0, 0}, []float64{1, 1}); got != 0 {
		t.Fatalf("zero-magnitude similarity = %v, want 0", got)
	}
	if got := CosineSimilarity(nil, nil); got != 0 {
		t.Fatalf("empty-vector similarity = %v, want 0", got)
	}
	if got := CosineSimilarity([]float64{1, 0}, []float64{1}); math.IsNaN(got) {
		t.Fatalf("length mismatch produced NaN")
	}
}

func TestCosineSimilarity_Range(t *testing.T) {
	got := CosineSimilarity([]float64{1, 1, 0}, []float64{1, 0, 1})
	if got < 0 || got > 1 {
		t.Fatalf("similarity %v out of [0,1]", got)
	}
	if math.Abs(got-0.5) > 1e-9 {
		t.Fatalf("similarity = %v, want 0.5", got)
	}
}

func TestRecommend_SelfSimilarityCeiling(t *testing.T) {
	out := Recommend(
		[]string{"ReactJS", "Communication"},
		[]JobSkills{{ID: "a", RequiredSkills: []string{"reactjs", "communication"}}},
		Options{},
	)
	if len(out) != 1 {
		t.Fatalf("expected 1 result, got %d", len(out))
	}
	if math.Abs(out[0].Score-1.0) > 1e-9 {
		t.Fatalf("identical skill sets: score = %v, want 1.0", out[0].Score)
	}
}

func TestRecommend_NoOverlapExcluded(t *testing.T) {
	out := Recommend(
		[]string{"ReactJS", "Communication"},
		[]JobSkills{
			{ID: "a", RequiredSkills: []string{"reactjs", "communication"}},
			{ID: "b", RequiredSkills: []string{"Node.js"}},
		},
		Options{},
	)
	if len(out) != 1 {
		t.Fatalf("expected 1 result, got %d: %v", len(out), out)
	}
	if out[0].ID != "a" {
		t.Fatalf("expected job a, got %s", out[0].ID)
	}
}

func TestRecommend_ThresholdBoundary(t *testing.T) {
	// One shared token out of many: user has 1 skill, job requires that skill
	// plus enough noise to push the score near the floor.
	// score = 1 / sqrt(1 * k) where k is the job's skill count.
	noisy := func(id string, k int) JobSkills {
		skills := []string{"go"}
		for i := 1; i < k; i++ {
			skills = append(skills, fmt.Sprintf("filler-%s-%d", id, i))
		}
		return JobSkills{ID: id, RequiredSkills: skills}
	}

	// k=4 -> 0.5, comfortably above; floor raised to exactly 0.5 must drop it.
	out := Recommend([]string{"go"}, []JobSkills{noisy("a", 4)}, Options{MinScore: 0.5})
	if len(out) != 0 {
		t.Fatalf("score equal to floor must be excluded, got %v", out)
	}

	out = Recommend([]string{"go"}, []JobSkills{noisy("a", 4)}, Options{MinScore: 0.49})
	if len(out) != 1 {
		t.Fatalf("score above floor must be included, got %v", out)
	}
}

func TestRecommend_CapEnforcement(t *testing.T) {
	jobs := make([]JobSkills, 0, 15)
	for i := 0; i < 15; i++ {
		// Every job overlaps on "go"; larger i means more noise, lower score.
		skills := []string{"go"}
		for n := 0; n < i; n++ {
			skills = append(skills, fmt.Sprintf("noise-%d-%d", i, n))
		}
		jobs = append(jobs, JobSkills{ID: fmt.Sprintf("job-%d", i), RequiredSkills: skills})
	}

	out := Recommend([]string{"go"}, jobs, Options{})
	if len(out) != DefaultLimit {
		t.Fatalf("expected %d results, got %d", DefaultLimit, len(out))
	}
	// Top-10 by score means the 10 least-noisy jobs, best first.
	for i := 0; i < len(out); i++ {
		want := fmt.Sprintf("job-%d", i)
		if out[i].ID != want {
			t.Fatalf("rank %d: got %s, want %s", i, out[i].ID, want)
		}
	}
}

func TestRecommend_SortedDescendingStableTies(t *testing.T) {
	jobs := []JobSkills{
		{ID: "low", RequiredSkills: []string{"go", "x1", "x2", "x3"}},
		{ID: "tie-1", RequiredSkills: []string{"go"}},
		{ID: "tie-2", RequiredSkills: []string{"go"}},
	}
	out := Recommend([]string{"go"}, jobs, Options{})
	if len(out) != 3 {
		t.Fatalf("expected 3 results, got %d", len(out))
	}
	for i := 1; i < len(out); i++ {
		if out[i].Score > out[i-1].Score {
			t.Fatalf("not sorted descending at %d: %v", i, out)
		}
	}
	if out[0].ID != "tie-1" || out[1].ID != "tie-2" {
		t.Fatalf("equal scores must keep input order, got %v", out)
	}
}

func TestRecommend_Deterministic(t *testing.T) {
	userSkills := []string{"Go", "PostgreSQL", "Docker", "Communication"}
	jobs := []JobSkills{
		{ID: "a", RequiredSkills: []string{"go", "docker", "kubernetes"}},
		{ID: "b", RequiredSkills: []string{"postgresql", "go"}},
		{ID: "c", RequiredSkills: []string{"communication", "teamwork"}},
		{ID: "d", RequiredSkills: []string{"rust"}},
	}

	first := Recommend(userSkills, jobs, Options{})
	for i := 0; i < 20; i++ {
		again := Recommend(userSkills, jobs, Options{})
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d differs: %v vs %v", i, first, again)
		}
	}
}

func TestRecommend_EmptyUserSkills(t *testing.T) {
	out := Recommend(nil, []JobSkills{
		{ID: "a", RequiredSkills: []string{"go"}},
		{ID: "b", RequiredSkills: []string{"sql"}},
	}, Options{})
	if len(out) != 0 {
		t.Fatalf("user with no skills must yield no results, got %v", out)
	}
}

func TestRecommend_EmptyCorpus(t *testing.T) {
	out := Recommend([]string{"go"}, nil, Options{})
	if len(out) != 0 {
		t.Fatalf("empty corpus must yield no results, got %v", out)
	}
}

func TestRecommend_CaseAndWhitespaceFolding(t *testing.T) {
	out := Recommend(
		[]string{"ReactJS"},
		[]JobSkills{{ID: "a", RequiredSkills: []string{" reactjs ", "REACTJS"}}},
		Options{},
	)
	if len(out) != 1 {
		t.Fatalf("expected 1 result, got %d", len(out))
	}
	if math.Abs(out[0].Score-1.0) > 1e-9 {
		t.Fatalf("folded duplicates must score 1.0, got %v", out[0].Score)
	}
}
