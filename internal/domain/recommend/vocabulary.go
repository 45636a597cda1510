package recommend

import "sort"

// BuildVocabulary returns the sorted, deduplicated union of the user's skill
// tokens and every job's required-skill tokens. The order is lexicographic so
// that vector component indices are stable for a given input. The vocabulary
// is built fresh per call; nothing is shared or cached across requests.
func BuildVocabulary(userSkills []string, jobs []JobSkills) []string {
	seen := NormalizeSet(userSkills)
	for _, j := range jobs {
		for _, s := range j.RequiredSkills {
			tok := NormalizeToken(s)
			if tok == "" {
				continue
			}
			seen[tok] = struct{}{}
		}
	}

	vocab := make([]string, 0, len(seen))
	for tok := range seen {
		vocab = append(vocab, tok)
	}
	sort.Strings(vocab)
	return vocab
}
