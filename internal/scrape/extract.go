package scrape

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var junkTitlePrefixes = []string{"access ", "see all", "find"}

// ExtractTitle takes the first h1, falling back to a title derived from the
// URL's last path segment. Titles that look like listing/navigation pages
// are rejected outright.
func ExtractTitle(doc *goquery.Document, pageURL string) (string, error) {
	title := cleanText(doc.Find("h1").First().Text())

	if title == "" {
		title = titleFromURL(pageURL)
	}
	if title == "" {
		return "", &ExtractionError{Kind: KindMissingTitle, URL: pageURL}
	}

	lt := strings.ToLower(title)
	for _, p := range junkTitlePrefixes {
		if strings.HasPrefix(lt, p) {
			return "", &ExtractionError{Kind: KindJunkTitle, URL: pageURL, Detail: title}
		}
	}
	return title, nil
}

func titleFromURL(pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil {
		return ""
	}
	seg := ""
	for _, s := range strings.Split(u.Path, "/") {
		if s != "" {
			seg = s
		}
	}
	if seg == "" {
		return ""
	}
	words := strings.Split(strings.ReplaceAll(seg, "-", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.TrimSpace(strings.Join(words, " "))
}

// descStrategy is one way of pulling a description out of a page. The
// extractor tries each in order and stops at the first usable result.
type descStrategy struct {
	name string
	fn   func(*goquery.Document) string
}

var descStrategies = []descStrategy{
	{"labeled_container", descFromLabeledContainer},
	{"loose_container", descFromLooseContainer},
	{"first_paragraphs", descFromFirstParagraphs},
	{"official_rules", descFromOfficialRules},
	{"positional_scan", descFromPositionalScan},
}

const minDescriptionLen = 10

// ExtractDescription runs the fallback cascade. It also reports which
// strategy produced the text, for the skip/accept log line.
func ExtractDescription(doc *goquery.Document, pageURL string) (text, strategy string, err error) {
	for _, s := range descStrategies {
		if got := strings.TrimSpace(s.fn(doc)); len(got) >= minDescriptionLen {
			return got, s.name, nil
		}
	}
	return "", "", &ExtractionError{Kind: KindNoDescription, URL: pageURL}
}

var labeledContainerSelectors = []string{
	"div[data-testid='scholarship-description']",
	".scholarship-description",
	".award-description",
	".grant-description",
}

func descFromLabeledContainer(doc *goquery.Document) string {
	for _, sel := range labeledContainerSelectors {
		if text := joinParagraphs(doc.Find(sel).First()); text != "" {
			return text
		}
	}
	return ""
}

func descFromLooseContainer(doc *goquery.Document) string {
	var text string
	doc.Find("div, section, article").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		class, _ := s.Attr("class")
		id, _ := s.Attr("id")
		blob := strings.ToLower(class + " " + id)
		if !strings.Contains(blob, "description") {
			return true
		}
		if got := joinParagraphs(s); got != "" {
			text = got
			return false
		}
		return true
	})
	return text
}

func descFromFirstParagraphs(doc *goquery.Document) string {
	var parts []string
	doc.Find("p").EachWithBreak(func(_ int, p *goquery.Selection) bool {
		if t := cleanText(p.Text()); t != "" {
			parts = append(parts, t)
		}
		return len(parts) < 3
	})
	return strings.Join(parts, "\n\n")
}

// descFromOfficialRules reformats a structured "official rules /
// eligibility" section as heading and bullet lines. Many scholarship pages
// keep the only real content there.
func descFromOfficialRules(doc *goquery.Document) string {
	var sections []string
	seen := map[string]bool{}

	doc.Find("div, section, article").Each(func(_ int, s *goquery.Selection) {
		up := strings.ToUpper(s.Text())
		if !strings.Contains(up, "OFFICIAL") && !strings.Contains(up, "RULES") && !strings.Contains(up, "ELIGIBILITY") {
			return
		}
		s.Find("h1, h2, h3, h4, h5, h6, p, li").Each(func(_ int, el *goquery.Selection) {
			text := cleanText(el.Text())
			if len(text) <= 20 {
				return
			}
			if matchesUIDenylist(text) || !containsDomainKeyword(text) {
				return
			}
			key := normalizeForDedup(text)
			if seen[key] {
				return
			}
			seen[key] = true
			switch goquery.NodeName(el) {
			case "h1", "h2", "h3", "h4", "h5", "h6":
				sections = append(sections, strings.ToUpper(text))
			case "li":
				sections = append(sections, "• "+text)
			default:
				sections = append(sections, text)
			}
		})
	})

	return strings.Join(sections, "\n\n")
}

// descFromPositionalScan is the last resort: walk every text-bearing
// element in document order and keep the ones that read like scholarship
// content rather than chrome.
func descFromPositionalScan(doc *goquery.Document) string {
	var parts []string
	seen := map[string]bool{}

	doc.Find("p, h1, h2, h3, h4, h5, h6, li, strong, b, span").Each(func(_ int, el *goquery.Selection) {
		text := cleanText(el.Text())
		if len(text) <= 20 || len(text) > 2000 {
			return
		}
		if matchesUIDenylist(text) || !containsDomainKeyword(text) {
			return
		}
		key := normalizeForDedup(text)
		if seen[key] {
			return
		}
		seen[key] = true
		switch goquery.NodeName(el) {
		case "li":
			parts = append(parts, "• "+text)
		default:
			parts = append(parts, text)
		}
	})

	return strings.Join(parts, "\n\n")
}

var domainKeywords = []string{
	"scholarship", "award", "essay", "eligibility", "requirements", "deadline",
	"winner", "rules", "sponsor", "official", "selection", "judging",
	"applicants", "residents", "enrolled", "accredited", "institution",
	"postsecondary", "legal", "notified",
}

var uiDenylist = []string{
	"apply now", "apply with", "save", "continue", "sign up", "sign in",
	"get started", "view scholarships", "award amount", "application deadline",
	"application status", "not applied", "opens in new tab",
	"continue with google", "continue with email", "my education level",
	"sweepstakes", "scholarship contests", "see past winners",
	"sign up for access", "millions of scholarships",
}

func containsDomainKeyword(text string) bool {
	lt := strings.ToLower(text)
	for _, kw := range domainKeywords {
		if strings.Contains(lt, kw) {
			return true
		}
	}
	return false
}

func matchesUIDenylist(text string) bool {
	lt := strings.ToLower(text)
	for _, ui := range uiDenylist {
		if strings.Contains(lt, ui) {
			return true
		}
	}
	return false
}

func joinParagraphs(s *goquery.Selection) string {
	if s.Length() == 0 {
		return ""
	}
	var parts []string
	s.Find("p").Each(func(_ int, p *goquery.Selection) {
		if t := cleanText(p.Text()); t != "" {
			parts = append(parts, t)
		}
	})
	if len(parts) == 0 {
		if t := cleanText(s.Text()); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, "\n\n")
}

var wsRun = regexp.MustCompile(`\s+`)

func cleanText(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	return strings.TrimSpace(wsRun.ReplaceAllString(s, " "))
}

func normalizeForDedup(s string) string {
	return strings.ToLower(cleanText(s))
}
