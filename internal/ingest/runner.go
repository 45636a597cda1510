package ingest

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"

	"jobpath/internal/config"
	"jobpath/internal/database"
	"jobpath/internal/infrastructure/cache"
	"jobpath/internal/repository"
	"jobpath/internal/ws"
)

// Runner drives one ingest cycle: fetch postings, tag them with catalog
// skills, upsert, and retire postings the source no longer lists.
type Runner struct {
	db     database.DB
	jobs   repository.JobRepository
	skills repository.SkillRepository
	cache  *cache.Redis
	logger *log.Logger
	cfg    config.IngestConfig
}

func NewRunner(db database.DB, jobs repository.JobRepository, skills repository.SkillRepository, c *cache.Redis, logger *log.Logger, cfg config.IngestConfig) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{db: db, jobs: jobs, skills: skills, cache: c, logger: logger, cfg: cfg}
}

func (r *Runner) RunRemotive(ctx context.Context, search string) error {
	fetcher := NewRemotiveFetcher()
	items, err := fetcher.Fetch(ctx, search, 200)
	if err != nil {
		return fmt.Errorf("remotive fetch: %w", err)
	}
	return r.store(ctx, fetcher.SourceName(), fetcher.BaseURL(), items)
}

func (r *Runner) RunBoard(ctx context.Context, cfg BoardConfig) error {
	scraper := NewBoardScraper(cfg)

	pool := NewWorkerPool(r.cfg.Workers, r.cfg.Workers*2)
	pool.SetRateLimit(r.cfg.RateLimit)

	items, err := scraper.Fetch(ctx, r.cfg.Pages, pool)
	if err != nil {
		return fmt.Errorf("board fetch %s: %w", cfg.SourceName, err)
	}
	return r.store(ctx, scraper.SourceName(), scraper.BaseURL(), items)
}

// RunHeadless covers boards that render their listings client-side: headless
// Chrome collects the detail links, then the regular colly scraper pulls each
// detail page through the pool.
func (r *Runner) RunHeadless(ctx context.Context, cfg BoardConfig, listURL string) error {
	links, err := FetchLinksHeadless(ctx, listURL, cfg.JobLinkFragment, 0)
	if err != nil {
		return fmt.Errorf("headless links %s: %w", cfg.SourceName, err)
	}

	scraper := NewBoardScraper(cfg)

	pool := NewWorkerPool(r.cfg.Workers, r.cfg.Workers*2)
	pool.SetRateLimit(r.cfg.RateLimit)

	items, err := scraper.FetchLinks(ctx, links, pool)
	if err != nil {
		return fmt.Errorf("headless fetch %s: %w", cfg.SourceName, err)
	}
	return r.store(ctx, scraper.SourceName(), scraper.BaseURL(), items)
}

func (r *Runner) store(ctx context.Context, sourceName, baseURL string, items []repository.JobUpsert) error {
	if len(items) == 0 {
		r.logger.Printf("ingest | source=%s nothing fetched", sourceName)
		return nil
	}

	sourceID, err := EnsureJobSource(ctx, r.db, sourceName, baseURL)
	if err != nil {
		return fmt.Errorf("ensure source: %w", err)
	}

	catalog, err := r.skills.AllNames(ctx)
	if err != nil {
		return fmt.Errorf("load skill catalog: %w", err)
	}

	keep := make([]string, 0, len(items))
	for i := range items {
		items[i].SourceID = sourceID
		items[i].Skills = mergeSkills(items[i].Skills, ExtractSkills(items[i].Title+" "+items[i].Description, catalog))
		keep = append(keep, items[i].ExternalJobID)
	}

	if err := r.jobs.UpsertJobs(ctx, items); err != nil {
		return fmt.Errorf("upsert jobs: %w", err)
	}
	if err := r.jobs.DeactivateMissing(ctx, sourceID, keep); err != nil {
		return fmt.Errorf("deactivate missing: %w", err)
	}

	if r.cache != nil {
		if err := r.cache.InvalidateJobCaches(ctx); err != nil {
			r.logger.Printf("ingest | cache invalidation failed err=%v", err)
		}
	}
	ws.NotifyJobsUpdated(sourceName, len(items))

	r.logger.Printf("ingest | source=%s upserted=%d", sourceName, len(items))
	return nil
}

// mergeSkills unions source tags with extracted catalog hits, folding case
// duplicates onto whichever spelling came first.
func mergeSkills(tags, extracted []string) []string {
	seen := make(map[string]struct{}, len(tags)+len(extracted))
	out := make([]string, 0, len(tags)+len(extracted))
	for _, group := range [][]string{tags, extracted} {
		for _, s := range group {
			s = strings.TrimSpace(s)
			if s == "" {
				continue
			}
			key := strings.ToLower(s)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}
