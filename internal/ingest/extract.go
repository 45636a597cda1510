package ingest

import (
	"sort"
	"strings"
)

// ExtractSkills scans free-text job copy for catalog skill names. Matching is
// case-insensitive and bounded: "go" must appear as a word, not inside
// "mongodb". Names containing symbols ("node.js", "c++") match as-is.
func ExtractSkills(text string, catalog []string) []string {
	text = strings.ToLower(text)
	if strings.TrimSpace(text) == "" || len(catalog) == 0 {
		return nil
	}

	found := make([]string, 0, 8)
	seen := make(map[string]struct{}, 8)
	for _, name := range catalog {
		needle := strings.ToLower(strings.TrimSpace(name))
		if needle == "" {
			continue
		}
		if _, ok := seen[needle]; ok {
			continue
		}
		if containsBounded(text, needle) {
			seen[needle] = struct{}{}
			found = append(found, strings.TrimSpace(name))
		}
	}

	if len(found) == 0 {
		return nil
	}
	sort.Strings(found)
	return found
}

func containsBounded(haystack, needle string) bool {
	from := 0
	for {
		i := strings.Index(haystack[from:], needle)
		if i < 0 {
			return false
		}
		start := from + i
		end := start + len(needle)
		if boundaryBefore(haystack, start) && boundaryAfter(haystack, end) {
			return true
		}
		from = start + 1
		if from >= len(haystack) {
			return false
		}
	}
}

func boundaryBefore(s string, i int) bool {
	if i == 0 {
		return true
	}
	return !isWordByte(s[i-1])
}

func boundaryAfter(s string, i int) bool {
	if i >= len(s) {
		return true
	}
	return !isWordByte(s[i])
}

// isWordByte treats ASCII letters and digits as word characters. Symbols in
// skill names ("+", ".", "#") act as boundaries, which lets "c++" match
// directly after "c".
func isWordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= '0' && b <= '9' || b >= 'A' && b <= 'Z'
}
