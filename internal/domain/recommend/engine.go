package recommend

import "sort"

// Policy defaults. Both are overridable through Options; neither is a derived
// value.
const (
	// DefaultMinScore excludes jobs with no or near-negligible skill overlap.
	// Scores at or below the floor never appear in results.
	DefaultMinScore = 0.01
	// DefaultLimit caps the ranked result list.
	DefaultLimit = 10
)

// JobSkills is one job's contribution to the scoring input: an opaque id and
// its raw required-skill strings (pre-normalization, duplicates and empties
// allowed).
type JobSkills struct {
	ID             string
	RequiredSkills []string
}

// ScoredJob is a job that survived thresholding, annotated with its cosine
// similarity against the user profile.
type ScoredJob struct {
	ID    string
	Score float64
}

type Options struct {
	// MinScore is the exclusive lower bound on similarity. Zero means
	// DefaultMinScore; use a negative value to disable the floor.
	MinScore float64
	// Limit caps the result length. Zero or negative means DefaultLimit.
	Limit int
}

func (o Options) minScore() float64 {
	if o.MinScore == 0 {
		return DefaultMinScore
	}
	return o.MinScore
}

func (o Options) limit() int {
	if o.Limit <= 0 {
		return DefaultLimit
	}
	return o.Limit
}

// Recommend ranks jobs against the user's flat skill set by cosine similarity
// over a shared binary skill vocabulary. The computation is pure and builds
// all of its state from the arguments, so concurrent calls never interact.
// The returned list is sorted descending by score, thresholded and capped;
// ties keep the input order of jobs, so identical input yields an identical
// ranking.
func Recommend(userSkills []string, jobs []JobSkills, opts Options) []ScoredJob {
	vocab := BuildVocabulary(userSkills, jobs)
	userVec := Encode(vocab, NormalizeSet(userSkills))

	minScore := opts.minScore()
	limit := opts.limit()

	out := make([]ScoredJob, 0, len(jobs))
	for _, j := range jobs {
		jobVec := Encode(vocab, NormalizeSet(j.RequiredSkills))
		score := CosineSimilarity(userVec, jobVec)
		if score <= minScore {
			continue
		}
		out = append(out, ScoredJob{ID: j.ID, Score: score})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
