package ingest

import (
	"reflect"
	"testing"
)

func TestExtractSkills(t *testing.T) {
	catalog := []string{"Go", "PostgreSQL", "Node.js", "React", "Docker", "C++"}

	text := `We are looking for a backend engineer comfortable with Go and
	PostgreSQL. Experience with Docker is a plus. Frontend work uses React.`

	got := ExtractSkills(text, catalog)
	want := []string{"Docker", "Go", "PostgreSQL", "React"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ExtractSkills = %v, want %v", got, want)
	}
}

func TestExtractSkills_WordBoundaries(t *testing.T) {
	catalog := []string{"Go", "Java"}

	// "golang" and "javascript" must not count as Go/Java hits.
	if got := ExtractSkills("we use golang and javascript", catalog); got != nil {
		t.Fatalf("expected no hits, got %v", got)
	}
	if got := ExtractSkills("we use go, and java too", catalog); len(got) != 2 {
		t.Fatalf("expected 2 hits, got %v", got)
	}
}

func TestExtractSkills_SymbolNames(t *testing.T) {
	catalog := []string{"C++", "Node.js"}

	got := ExtractSkills("Senior C++ engineer, some Node.js on the side", catalog)
	want := []string{"C++", "Node.js"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ExtractSkills = %v, want %v", got, want)
	}
}

func TestExtractSkills_CaseInsensitive(t *testing.T) {
	got := ExtractSkills("DOCKER and docker and Docker", []string{"Docker"})
	if len(got) != 1 || got[0] != "Docker" {
		t.Fatalf("ExtractSkills = %v", got)
	}
}

func TestExtractSkills_Empty(t *testing.T) {
	if got := ExtractSkills("", []string{"Go"}); got != nil {
		t.Fatalf("expected nil for empty text, got %v", got)
	}
	if got := ExtractSkills("anything", nil); got != nil {
		t.Fatalf("expected nil for empty catalog, got %v", got)
	}
	if got := ExtractSkills("nothing relevant here", []string{"Go", "Rust"}); got != nil {
		t.Fatalf("expected nil when nothing matches, got %v", got)
	}
}
