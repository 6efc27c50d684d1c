package scrape

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"grantmatch-engine/internal/config"
)

// Link is one discovered detail-page URL. Canonical (query and fragment
// stripped) is used only for deduplication; URL keeps the original form
// for the actual fetch.
type Link struct {
	URL       string
	Canonical string
}

// DiscoverLinks walks a listing page's anchors and returns the unique
// detail-page links in first-seen order.
func DiscoverLinks(doc *goquery.Document, site config.Site) []Link {
	base, err := url.Parse(site.BaseURL)
	if err != nil {
		return nil
	}

	seen := map[string]bool{}
	var out []Link

	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" || href == "#" || strings.HasPrefix(strings.ToLower(href), "javascript:") {
			return
		}

		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		u := base.ResolveReference(ref)

		if u.Host != base.Host {
			return
		}
		if !pathMatchesShape(u.Path, site) {
			return
		}

		lp := strings.ToLower(u.Path)
		for _, deny := range site.PathDeny {
			if strings.Contains(lp, strings.ToLower(deny)) {
				return
			}
		}

		label := strings.ToLower(strings.TrimSpace(a.Text()))
		for _, deny := range site.LabelDeny {
			if strings.Contains(label, strings.ToLower(deny)) {
				return
			}
		}

		canon := canonicalizeURL(u)
		if seen[canon] {
			return
		}
		seen[canon] = true
		out = append(out, Link{URL: u.String(), Canonical: canon})
	})

	return out
}

func pathMatchesShape(path string, site config.Site) bool {
	if !strings.HasPrefix(strings.ToLower(path), strings.ToLower(site.DetailPrefix)) {
		return false
	}
	segs := 0
	for _, s := range strings.Split(path, "/") {
		if s != "" {
			segs++
		}
	}
	return segs == site.DetailSegments
}

func canonicalizeURL(u *url.URL) string {
	c := *u
	c.RawQuery = ""
	c.Fragment = ""
	c.Scheme = strings.ToLower(c.Scheme)
	c.Host = strings.ToLower(c.Host)
	return c.String()
}
