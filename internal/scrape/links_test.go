package scrape

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"grantmatch-engine/internal/config"
)

func testSite() config.Site {
	return config.Site{
		Name:           "bold",
		BaseURL:        "https://bold.org",
		ListingPath:    "/scholarships/",
		DetailPrefix:   "/scholarships/",
		DetailSegments: 2,
		PathDeny:       []string{"see-all", "groups"},
		LabelDeny:      []string{"see all", "explore"},
	}
}

func docFromHTML(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestDiscoverLinks(t *testing.T) {
	html := `<html><body>
	  <a href="/scholarships/be-bold">Be Bold</a>
	  <a href="https://bold.org/scholarships/no-essay?utm_source=x">No Essay</a>
	  <a href="/scholarships/be-bold#apply">Be Bold again</a>
	  <a href="/scholarships/">Listing itself</a>
	  <a href="/scholarships/see-all-scholarships">See everything</a>
	  <a href="/scholarships/nursing/junior">Too deep</a>
	  <a href="https://other.org/scholarships/elsewhere">Off host</a>
	  <a href="/scholarships/explore-more">Explore more scholarships</a>
	  <a href="javascript:void(0)">noop</a>
	</body></html>`

	links := DiscoverLinks(docFromHTML(t, html), testSite())

	want := []string{
		"https://bold.org/scholarships/be-bold",
		"https://bold.org/scholarships/no-essay?utm_source=x",
	}
	if len(links) != len(want) {
		t.Fatalf("got %d links (%+v), want %d", len(links), links, len(want))
	}
	for i, w := range want {
		if links[i].URL != w {
			t.Errorf("links[%d] = %q, want %q", i, links[i].URL, w)
		}
	}
}

func TestDiscoverLinksCanonicalDedupe(t *testing.T) {
	html := `<html><body>
	  <a href="/scholarships/alpha?page=1">Alpha</a>
	  <a href="/scholarships/alpha?page=2">Alpha again</a>
	  <a href="/scholarships/alpha">Alpha plain</a>
	</body></html>`

	links := DiscoverLinks(docFromHTML(t, html), testSite())
	if len(links) != 1 {
		t.Fatalf("got %d links, want 1", len(links))
	}
	// First-seen form is kept for the fetch.
	if links[0].URL != "https://bold.org/scholarships/alpha?page=1" {
		t.Errorf("kept %q, want the first-seen URL", links[0].URL)
	}
	if links[0].Canonical != "https://bold.org/scholarships/alpha" {
		t.Errorf("canonical = %q", links[0].Canonical)
	}
}

func TestPathMatchesShape(t *testing.T) {
	site := testSite()
	tests := []struct {
		path string
		want bool
	}{
		{"/scholarships/be-bold", true},
		{"/scholarships/be-bold/", true}, // trailing slash, same segments
		{"/scholarships/", false},
		{"/scholarships/a/b", false},
		{"/blog/be-bold", false},
	}
	for _, tt := range tests {
		if got := pathMatchesShape(tt.path, site); got != tt.want {
			t.Errorf("pathMatchesShape(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
