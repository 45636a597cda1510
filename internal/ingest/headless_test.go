package ingest

import (
	"reflect"
	"testing"
)

func TestAbsolutizeLinks(t *testing.T) {
	hrefs := []string{
		"/job/backend-engineer",
		"https://jobs.example.com/job/data-engineer?ref=home#apply",
		"job/frontend-engineer",
		"/job/backend-engineer", // duplicate after normalization
		"  ",
	}

	got := absolutizeLinks(hrefs, "https://jobs.example.com/search?q=go", 0)
	want := []string{
		"https://jobs.example.com/job/backend-engineer",
		"https://jobs.example.com/job/data-engineer",
		"https://jobs.example.com/job/frontend-engineer",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("absolutizeLinks = %v, want %v", got, want)
	}
}

func TestAbsolutizeLinks_Limit(t *testing.T) {
	hrefs := []string{"/job/a", "/job/b", "/job/c"}

	got := absolutizeLinks(hrefs, "https://jobs.example.com/search", 2)
	if len(got) != 2 {
		t.Fatalf("expected 2 links, got %v", got)
	}
}

func TestAbsolutizeLinks_Empty(t *testing.T) {
	if got := absolutizeLinks(nil, "https://jobs.example.com", 0); len(got) != 0 {
		t.Fatalf("expected no links, got %v", got)
	}
}
