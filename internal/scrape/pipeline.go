package scrape

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"grantmatch-engine/internal/classify"
	"grantmatch-engine/internal/config"
	"grantmatch-engine/internal/domain"
	"grantmatch-engine/internal/fetch"
	"grantmatch-engine/internal/normalize"
)

// Sink persists one canonical record keyed by its source URL. A sink
// failure is logged and the crawl moves on; it never rolls anything back.
type Sink interface {
	UpsertGrant(ctx context.Context, rec domain.GrantRecord) (inserted bool, err error)
}

type Pipeline struct {
	HTTP    fetch.Fetcher
	Browser fetch.Fetcher // nil unless some site needs rendering
	Limiter *fetch.HostLimiter
	Sink    Sink
	Tags    *classify.Classifier

	// OnUpsert fires after each successful persist (SSE events, counters).
	OnUpsert func(rec domain.GrantRecord, inserted bool)
}

type SiteSummary struct {
	Site     string `json:"site"`
	Pages    int    `json:"pages"`
	Links    int    `json:"links"`
	Inserted int    `json:"inserted"`
	Updated  int    `json:"updated"`
	Skipped  int    `json:"skipped"`
}

/// CrawlSite walks up to pages listing pages of one site sequentially:
// discover detail links, then fetch/extract/classify/normalize/upsert one
// link at a time with the politeness limiter pacing every fetch. Per-link
// failures are logged and skipped; a listing-page failure aborts this site
// only.
func (p *Pipeline) CrawlSite(ctx context.Context, site config.Site, pages int) (SiteSummary, error) {
	sum := SiteSummary{Site: site.Name}
	if pages <= 0 {
		pages = 1
	}

	fetcher := p.fetcherFor(site)

	for n := 1; n <= pages; n++ {
		listingURL := listingPageURL(site, n)

		if err := p.Limiter.WaitURL(ctx, listingURL); err != nil {
			return sum, err
		}
		page, err := fetcher.Fetch(ctx, listingURL)
		if err != nil {
			return sum, fmt.Errorf("listing page %d: %w", n, err)
		}
		sum.Pages++

		doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page.Body))
		if err != nil {
			return sum, fmt.Errorf("listing page %d: parse: %w", n, err)
		}

		links := DiscoverLinks(doc, site)
		sum.Links += len(links)
		log.Printf("[crawl:%s] page=%d links=%d", site.Name, n, len(links))

		for _, link := range links {
			if ctx.Err() != nil {
				return sum, ctx.Err()
			}
			rec, err := p.processLink(ctx, fetcher, site, link)
			if err != nil {
				sum.Skipped++
				log.Printf("[crawl:%s] skipped (%s) url=%q", site.Name, skipReason(err), link.URL)
				continue
			}

			inserted, err := p.Sink.UpsertGrant(ctx, *rec)
			if err != nil {
				sum.Skipped++
				log.Printf("[crawl:%s] upsert failed url=%q err=%v", site.Name, rec.SourceURL, err)
				continue
			}
			if inserted {
				sum.Inserted++
			} else {
				sum.Updated++
			}
			log.Printf("[crawl:%s] upserted (%s) title=%q url=%q", site.Name, outcome(inserted), rec.Title, rec.SourceURL)
			if p.OnUpsert != nil {
				p.OnUpsert(*rec, inserted)
			}
		}
	}

	return sum, nil
}

func (p *Pipeline) processLink(ctx context.Context, fetcher fetch.Fetcher, site config.Site, link Link) (*domain.GrantRecord, error) {
	if err := p.Limiter.WaitURL(ctx, link.URL); err != nil {
		return nil, err
	}

	page, err := fetcher.Fetch(ctx, link.URL)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page.Body))
	if err != nil {
		return nil, err
	}

	title, err := ExtractTitle(doc, link.URL)
	if err != nil {
		return nil, err
	}

	desc, strategy, err := ExtractDescription(doc, link.URL)
	if err != nil {
		return nil, err
	}
	log.Printf("[crawl:%s] extracted strategy=%s title=%q", site.Name, strategy, title)

	amount := ParseAmount(desc)
	if amount == "" {
		amount = AmountFromTitle(title)
	}

	deadline := ParseDeadline(desc)
	if deadline == "" {
		deadline = ParseDeadline(doc.Text())
	}

	rec := &domain.GrantRecord{
		Title:       title,
		Description: desc,
		Amount:      amount,
		Deadline:    deadline,
		SourceURL:   link.URL,
	}

	if err := normalize.Record(rec, site.DefaultLocation, site.DefaultAudience); err != nil {
		return nil, err
	}

	// Classifiers read the cleaned description only.
	rec.Sectors = p.Tags.Sectors(rec.Description)
	rec.EligibilityCriteria = p.Tags.Eligibility(rec.Description)

	return rec, nil
}

func (p *Pipeline) fetcherFor(site config.Site) fetch.Fetcher {
	if site.Render && p.Browser != nil {
		return p.Browser
	}
	return p.HTTP
}

func listingPageURL(site config.Site, n int) string {
	u := strings.TrimRight(site.BaseURL, "/") + site.ListingPath
	if n > 1 {
		sep := "?"
		if strings.Contains(u, "?") {
			sep = "&"
		}
		u += fmt.Sprintf("%spage=%d", sep, n)
	}
	return u
}

func outcome(inserted bool) string {
	if inserted {
		return "inserted"
	}
	return "updated"
}

func skipReason(err error) string {
	var fe *fetch.FetchError
	if errors.As(err, &fe) {
		return "fetch:" + string(fe.Kind)
	}
	var ee *ExtractionError
	if errors.As(err, &ee) {
		return string(ee.Kind)
	}
	var ve *normalize.ValidationError
	if errors.As(err, &ve) {
		return string(ve.Kind)
	}
	return "error"
}
