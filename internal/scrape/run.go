package scrape

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"grantmatch-engine/internal/classify"
	"grantmatch-engine/internal/config"
	"grantmatch-engine/internal/domain"
	"grantmatch-engine/internal/fetch"
)

type RunTotals struct {
	Sites    []SiteSummary `json:"sites"`
	Inserted int           `json:"inserted"`
	Updated  int           `json:"updated"`
	Skipped  int           `json:"skipped"`
}

// RunAll crawls every configured site concurrently, one goroutine per site.
// Within a site fetches stay sequential and paced by the shared limiter.
// Site failures are collected, not fatal to the sibling sites.
func RunAll(ctx context.Context, cfg config.Config, pages int, sink Sink, onUpsert func(domain.GrantRecord, bool)) (RunTotals, error) {
	tags, err := classify.New(cfg.Classify.Sectors, cfg.Classify.Eligibility, cfg.Classify.DefaultTag)
	if err != nil {
		return RunTotals{}, err
	}

	httpFetcher := fetch.NewHTTPFetcher(fetch.HTTPOptions{
		UserAgent: cfg.Crawl.UserAgent,
		Timeout:   time.Duration(cfg.Crawl.FetchTimeoutSeconds) * time.Second,
	})

	var browser fetch.Fetcher
	for _, s := range cfg.Sites {
		if s.Render {
			browser = fetch.NewBrowserFetcher(fetch.BrowserOptions{
				UserAgent: cfg.Crawl.UserAgent,
				Timeout:   time.Duration(cfg.Crawl.RenderTimeoutSeconds) * time.Second,
			})
			break
		}
	}

	p := &Pipeline{
		HTTP:     httpFetcher,
		Browser:  browser,
		Limiter:  fetch.NewDelayLimiter(cfg.Crawl.DelayMS),
		Sink:     sink,
		Tags:     tags,
		OnUpsert: onUpsert,
	}

	var (
		mu     sync.Mutex
		totals RunTotals
		fails  []error
	)

	g, gctx := errgroup.WithContext(ctx)
	for _, site := range cfg.Sites {
		site := site
		g.Go(func() error {
			sum, err := p.CrawlSite(gctx, site, pages)
			mu.Lock()
			defer mu.Unlock()
			totals.Sites = append(totals.Sites, sum)
			totals.Inserted += sum.Inserted
			totals.Updated += sum.Updated
			totals.Skipped += sum.Skipped
			if err != nil {
				log.Printf("[crawl:%s] aborted: %v", site.Name, err)
				fails = append(fails, err)
			}
			return nil
		})
	}
	_ = g.Wait()

	return totals, errors.Join(fails...)
}
