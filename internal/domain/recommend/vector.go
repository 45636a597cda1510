package recommend

// Encode maps one entity's normalized token set onto the vocabulary as a
// binary membership vector. Component i is 1 iff vocab[i] belongs to the set.
// An empty set yields an all-zero vector of len(vocab); an empty vocabulary
// yields a zero-length vector.
func Encode(vocab []string, tokens map[string]struct{}) []float64 {
	vec := make([]float64, len(vocab))
	if len(tokens) == 0 {
		return vec
	}
	for i, tok := range vocab {
		if _, ok := tokens[tok]; ok {
			vec[i] = 1
		}
	}
	return vec
}
