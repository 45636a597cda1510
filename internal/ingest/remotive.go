package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"jobpath/internal/repository"
)

const remotiveSourceName = "Remotive"

// RemotiveFetcher pulls remote job postings from the Remotive public API.
type RemotiveFetcher struct {
	client  *http.Client
	apiBase string
}

func NewRemotiveFetcher() *RemotiveFetcher {
	return &RemotiveFetcher{
		client:  &http.Client{Timeout: 25 * time.Second},
		apiBase: "https://remotive.com",
	}
}

func NewRemotiveFetcherWithBase(apiBase string) *RemotiveFetcher {
	f := NewRemotiveFetcher()
	if s := strings.TrimRight(strings.TrimSpace(apiBase), "/"); s != "" {
		f.apiBase = s
	}
	return f
}

func (f *RemotiveFetcher) SourceName() string { return remotiveSourceName }
func (f *RemotiveFetcher) BaseURL() string    { return f.apiBase }

type remotiveResponse struct {
	Jobs []remotiveJob `json:"jobs"`
}

type remotiveJob struct {
	ID          int      `json:"id"`
	URL         string   `json:"url"`
	Title       string   `json:"title"`
	CompanyName string   `json:"company_name"`
	Category    string   `json:"category"`
	JobType     string   `json:"job_type"`
	Location    string   `json:"candidate_required_location"`
	PublishedAt string   `json:"publication_date"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

// Fetch returns postings ready for upsert. The source id is filled in by the
// runner; skills come from tags plus catalog extraction over the description.
func (f *RemotiveFetcher) Fetch(ctx context.Context, search string, limit int) ([]repository.JobUpsert, error) {
	if f == nil {
		return nil, fmt.Errorf("nil fetcher")
	}
	if limit <= 0 {
		limit = 100
	}

	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	if s := strings.TrimSpace(search); s != "" {
		q.Set("search", s)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.apiBase+"/api/remote-jobs?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	res, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_, _ = io.Copy(io.Discard, res.Body)
		_ = res.Body.Close()
	}()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("remotive status %d", res.StatusCode)
	}

	var body remotiveResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, err
	}

	out := make([]repository.JobUpsert, 0, len(body.Jobs))
	for _, j := range body.Jobs {
		if j.ID == 0 || strings.TrimSpace(j.Title) == "" {
			continue
		}
		out = append(out, repository.JobUpsert{
			ExternalJobID:  strconv.Itoa(j.ID),
			Title:          strings.TrimSpace(j.Title),
			Company:        strings.TrimSpace(j.CompanyName),
			Location:       strings.TrimSpace(j.Location),
			EmploymentType: strings.TrimSpace(j.JobType),
			Description:    stripHTML(j.Description),
			URL:            strings.TrimSpace(j.URL),
			PostedAt:       parsePublishedAt(j.PublishedAt),
			Skills:         j.Tags,
		})
	}
	return out, nil
}

func parsePublishedAt(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t
		}
	}
	return nil
}

// stripHTML flattens markup into plain text good enough for keyword
// extraction and display snippets.
func stripHTML(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
			b.WriteByte(' ')
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
