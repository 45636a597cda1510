package ingest

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
)

// FetchLinksHeadless renders a listing page in headless Chrome and pulls job
// detail links out of the DOM. Used for boards that build their listings
// client-side, where a plain HTTP fetch sees an empty shell.
func FetchLinksHeadless(ctx context.Context, pageURL, linkFragment string, limit int) ([]string, error) {
	if strings.TrimSpace(pageURL) == "" {
		return nil, fmt.Errorf("empty page url")
	}
	if limit <= 0 {
		limit = 30
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
			chromedp.UserAgent("Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36"),
		)...,
	)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	reqCtx, reqCancel := context.WithTimeout(browserCtx, 25*time.Second)
	defer reqCancel()

	script := fmt.Sprintf(`Array.from(document.querySelectorAll('a[href]'))
		.map(a => a.getAttribute('href'))
		.filter(h => h && h.includes(%q))`, linkFragment)

	var hrefs []string
	err := chromedp.Run(reqCtx,
		chromedp.Navigate(pageURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(1500*time.Millisecond),
		chromedp.EvaluateAsDevTools(script, &hrefs),
	)
	if err != nil {
		return nil, err
	}

	out := absolutizeLinks(hrefs, pageURL, limit)
	if len(out) == 0 {
		return nil, fmt.Errorf("no job links found (headless)")
	}
	return out, nil
}

// absolutizeLinks resolves raw hrefs against the listing page's origin,
// normalizes them, and dedups up to limit.
func absolutizeLinks(hrefs []string, pageURL string, limit int) []string {
	if limit <= 0 {
		limit = 30
	}

	base := baseFromPageURL(pageURL)
	seen := map[string]struct{}{}
	out := make([]string, 0, limit)
	for _, h := range hrefs {
		if len(out) >= limit {
			break
		}
		h = strings.TrimSpace(h)
		if h == "" {
			continue
		}
		if strings.HasPrefix(h, "/") {
			h = base + h
		} else if !strings.HasPrefix(h, "http://") && !strings.HasPrefix(h, "https://") {
			h = base + "/" + h
		}
		u := normalizeURL(h)
		if u == "" {
			continue
		}
		if _, ok := seen[u]; ok {
			continue
		}
		seen[u] = struct{}{}
		out = append(out, u)
	}
	return out
}

func baseFromPageURL(pageURL string) string {
	host := hostFromBaseURL(pageURL)
	if host == "" {
		return ""
	}
	if strings.HasPrefix(pageURL, "http://") {
		return "http://" + host
	}
	return "https://" + host
}
