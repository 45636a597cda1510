package recommend

import "strings"

// NormalizeToken folds a raw skill string into its canonical token form.
// Two skills are the same iff their normalized forms are equal.
func NormalizeToken(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// NormalizeSet normalizes every entry and drops the ones that collapse to
// the empty string. Duplicates collapse into one membership entry.
func NormalizeSet(raw []string) map[string]struct{} {
	out := make(map[string]struct{}, len(raw))
	for _, s := range raw {
		tok := NormalizeToken(s)
		if tok == "" {
			continue
		}
		out[tok] = struct{}{}
	}
	return out
}
