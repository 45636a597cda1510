package main

import (
	"context"
	"flag"
	"log"
	"strings"
	"time"

	"jobpath/internal/app"
	"jobpath/internal/config"
	"jobpath/internal/database/migration"
	"jobpath/internal/ingest"
	"jobpath/internal/repository"
)

func main() {
	source := flag.String("source", "remotive", "ingest source: remotive, board or headless")
	search := flag.String("search", "", "search term passed to the source")

	boardName := flag.String("board-name", "", "board source name")
	boardBase := flag.String("board-base-url", "", "board base URL")
	boardList := flag.String("board-list-template", "", "board listing URL template with a %d page placeholder")
	boardPage := flag.String("board-page-url", "", "listing page URL for headless ingest")
	boardFragment := flag.String("board-link-fragment", "/job/", "substring identifying job detail links")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	c, err := app.NewContainer(cfg)
	if err != nil {
		log.Fatalf("failed to init container: %v", err)
	}
	defer func() {
		_ = c.Close()
	}()

	migCtx, migCancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer migCancel()
	r := migration.Runner{Dir: "migrations"}
	if err := r.Run(migCtx, c.DB.SQLDB()); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	runner := ingest.NewRunner(
		c.DB,
		repository.NewPostgresJobRepository(c.DB),
		repository.NewPostgresSkillRepository(c.DB),
		c.Cache,
		c.Logger,
		cfg.Ingest,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	switch strings.ToLower(strings.TrimSpace(*source)) {
	case "remotive":
		if err := runner.RunRemotive(ctx, *search); err != nil {
			log.Fatalf("remotive ingest failed: %v", err)
		}
	case "board":
		if strings.TrimSpace(*boardName) == "" || strings.TrimSpace(*boardBase) == "" || strings.TrimSpace(*boardList) == "" {
			log.Fatalf("board ingest needs -board-name, -board-base-url and -board-list-template")
		}
		err := runner.RunBoard(ctx, ingest.BoardConfig{
			SourceName:      *boardName,
			BaseURL:         *boardBase,
			ListURLTemplate: *boardList,
			JobLinkFragment: *boardFragment,
		})
		if err != nil {
			log.Fatalf("board ingest failed: %v", err)
		}
	case "headless":
		if strings.TrimSpace(*boardName) == "" || strings.TrimSpace(*boardBase) == "" || strings.TrimSpace(*boardPage) == "" {
			log.Fatalf("headless ingest needs -board-name, -board-base-url and -board-page-url")
		}
		err := runner.RunHeadless(ctx, ingest.BoardConfig{
			SourceName:      *boardName,
			BaseURL:         *boardBase,
			JobLinkFragment: *boardFragment,
		}, *boardPage)
		if err != nil {
			log.Fatalf("headless ingest failed: %v", err)
		}
	default:
		log.Fatalf("unknown source %q", *source)
	}
}
