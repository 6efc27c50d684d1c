package scrape

import (
	"regexp"
	"strings"
	"time"
)

// deadlineForm pairs a candidate regex with the time layouts that can
// parse what it matches. Candidates that fail to parse are skipped, not
// errors; a text with no parseable date simply has no deadline.
type deadlineForm struct {
	re      *regexp.Regexp
	layouts []string
}

var deadlineForms = []deadlineForm{
	{
		re:      regexp.MustCompile(`(?:January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{1,2},?\s+\d{4}`),
		layouts: []string{"January 2, 2006", "January 2 2006"},
	},
	{
		re:      regexp.MustCompile(`(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sept|Sep|Oct|Nov|Dec)\.?\s+\d{1,2},?\s+\d{4}`),
		layouts: []string{"Jan 2, 2006", "Jan 2 2006"},
	},
	{
		re:      regexp.MustCompile(`\d{4}-\d{2}-\d{2}`),
		layouts: []string{"2006-01-02"},
	},
	{
		re:      regexp.MustCompile(`\d{1,2}/\d{1,2}/\d{4}`),
		layouts: []string{"1/2/2006"},
	},
	{
		re:      regexp.MustCompile(`\b\d{1,2}-\d{1,2}-\d{4}\b`),
		layouts: []string{"1-2-2006"},
	},
}

// ParseDeadline finds the first parseable date in the text and re-emits it
// as an ISO-8601 date string, or "" when none is found.
func ParseDeadline(text string) string {
	if text == "" {
		return ""
	}
	for _, form := range deadlineForms {
		for _, candidate := range form.re.FindAllString(text, 10) {
			normalized := normalizeDateCandidate(candidate)
			for _, layout := range form.layouts {
				if t, err := time.Parse(layout, normalized); err == nil {
					return t.Format("2006-01-02")
				}
			}
		}
	}
	return ""
}

func normalizeDateCandidate(s string) string {
	s = cleanText(s)
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, "Sept ", "Sep ")
	return s
}
