package ingest

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"net/url"
	"strings"
	"time"

	"jobpath/internal/repository"

	"github.com/gocolly/colly/v2"
)

// BoardConfig describes an HTML job board well enough to walk its listing
// pages and pull detail pages.
type BoardConfig struct {
	SourceName       string
	BaseURL          string
	ListURLTemplate  string // fmt template with one %d page placeholder
	JobLinkFragment  string // substring identifying job detail anchors
	TitleSelector    string
	CompanySelector  string
	LocationSelector string
	BodySelector     string
}

// BoardScraper walks a classic server-rendered job board with colly.
type BoardScraper struct {
	cfg         BoardConfig
	allowedHost string
}

func NewBoardScraper(cfg BoardConfig) *BoardScraper {
	if cfg.TitleSelector == "" {
		cfg.TitleSelector = "h1"
	}
	if cfg.BodySelector == "" {
		cfg.BodySelector = "body"
	}
	return &BoardScraper{cfg: cfg, allowedHost: hostFromBaseURL(cfg.BaseURL)}
}

func (s *BoardScraper) SourceName() string { return s.cfg.SourceName }
func (s *BoardScraper) BaseURL() string    { return s.cfg.BaseURL }

// Fetch walks pages 1..pages, collects job links, then scrapes each detail
// page. Failures on individual pages are skipped so one broken posting does
// not sink the run.
func (s *BoardScraper) Fetch(ctx context.Context, pages int, pool *WorkerPool) ([]repository.JobUpsert, error) {
	if s == nil {
		return nil, fmt.Errorf("nil scraper")
	}
	if pages <= 0 {
		pages = 1
	}

	links := make([]string, 0)
	seen := map[string]struct{}{}
	for page := 1; page <= pages; page++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		pageLinks, err := s.listPage(fmt.Sprintf(s.cfg.ListURLTemplate, page))
		if err != nil {
			continue
		}
		for _, l := range pageLinks {
			if _, ok := seen[l]; ok {
				continue
			}
			seen[l] = struct{}{}
			links = append(links, l)
		}
	}

	return s.FetchLinks(ctx, links, pool)
}

// FetchLinks scrapes the given detail URLs through the pool. Link discovery
// is separate so headless-rendered listings can feed in here too.
func (s *BoardScraper) FetchLinks(ctx context.Context, links []string, pool *WorkerPool) ([]repository.JobUpsert, error) {
	if s == nil {
		return nil, fmt.Errorf("nil scraper")
	}

	results := pool.Run(ctx)
	collected := make(chan repository.JobUpsert, len(links))
	for _, link := range links {
		link := link
		pool.Submit(func(ctx context.Context) error {
			item, err := s.detailPage(ctx, link)
			if err != nil {
				return err
			}
			collected <- item
			return nil
		})
	}
	pool.Close()

	for range links {
		<-results
	}
	close(collected)

	out := make([]repository.JobUpsert, 0, len(collected))
	for item := range collected {
		out = append(out, item)
	}
	return out, nil
}

func (s *BoardScraper) listPage(listURL string) ([]string, error) {
	c := colly.NewCollector(colly.AllowedDomains(s.allowedHost))
	_ = c.Limit(&colly.LimitRule{
		DomainGlob:  "*" + s.allowedHost + "*",
		Parallelism: 2,
		Delay:       400 * time.Millisecond,
		RandomDelay: 750 * time.Millisecond,
	})

	links := make([]string, 0)
	c.OnHTML("a", func(e *colly.HTMLElement) {
		href := strings.TrimSpace(e.Attr("href"))
		if href == "" || !strings.Contains(href, s.cfg.JobLinkFragment) {
			return
		}
		if abs := e.Request.AbsoluteURL(href); abs != "" {
			links = append(links, normalizeURL(abs))
		}
	})

	var reqErr error
	c.OnError(func(_ *colly.Response, err error) { reqErr = err })

	if err := c.Visit(listURL); err != nil {
		return nil, err
	}
	c.Wait()
	if reqErr != nil {
		return nil, reqErr
	}
	return links, nil
}

func (s *BoardScraper) detailPage(ctx context.Context, jobURL string) (repository.JobUpsert, error) {
	if ctx.Err() != nil {
		return repository.JobUpsert{}, ctx.Err()
	}

	c := colly.NewCollector(colly.AllowedDomains(s.allowedHost))
	_ = c.Limit(&colly.LimitRule{
		DomainGlob:  "*" + s.allowedHost + "*",
		Parallelism: 2,
		Delay:       450 * time.Millisecond,
		RandomDelay: 850 * time.Millisecond,
	})

	out := repository.JobUpsert{
		ExternalJobID: stableExternalID(jobURL),
		URL:           jobURL,
	}

	c.OnHTML(s.cfg.TitleSelector, func(e *colly.HTMLElement) {
		if out.Title == "" {
			out.Title = strings.TrimSpace(e.Text)
		}
	})
	if s.cfg.CompanySelector != "" {
		c.OnHTML(s.cfg.CompanySelector, func(e *colly.HTMLElement) {
			if out.Company == "" {
				out.Company = strings.TrimSpace(e.Text)
			}
		})
	}
	if s.cfg.LocationSelector != "" {
		c.OnHTML(s.cfg.LocationSelector, func(e *colly.HTMLElement) {
			if out.Location == "" {
				out.Location = strings.TrimSpace(e.Text)
			}
		})
	}
	c.OnHTML(s.cfg.BodySelector, func(e *colly.HTMLElement) {
		if out.Description == "" {
			out.Description = strings.Join(strings.Fields(e.Text), " ")
		}
	})

	var reqErr error
	c.OnError(func(_ *colly.Response, err error) { reqErr = err })

	if err := c.Visit(jobURL); err != nil {
		return repository.JobUpsert{}, err
	}
	c.Wait()
	if reqErr != nil {
		return repository.JobUpsert{}, reqErr
	}
	if out.Title == "" {
		return repository.JobUpsert{}, fmt.Errorf("no title at %s", jobURL)
	}
	return out, nil
}

func hostFromBaseURL(base string) string {
	u, err := url.Parse(strings.TrimSpace(base))
	if err != nil || u.Host == "" {
		return ""
	}
	return u.Host
}

func normalizeURL(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return ""
	}
	u.Fragment = ""
	u.RawQuery = ""
	return u.String()
}

func stableExternalID(jobURL string) string {
	h := sha1.Sum([]byte(strings.TrimSpace(jobURL)))
	return "url-" + hex.EncodeToString(h[:])
}
