package recommend

import "math"

// CosineSimilarity computes dot(a,b) / (|a|*|b|). If either vector has zero
// magnitude the result is 0, never NaN. Components here are non-negative, so
// the result is always in [0, 1]. A length mismatch is scored over the shorter
// prefix, treating missing components as 0, to keep the scorer total.
func CosineSimilarity(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += a[i] * b[i]
	}
	for _, v := range a {
		normA += v * v
	}
	for _, v := range b {
		normB += v * v
	}

	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
