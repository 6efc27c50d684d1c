package scrape

import "fmt"

type ExtractKind string

const (
	KindMissingTitle  ExtractKind = "missing_title"
	KindJunkTitle     ExtractKind = "junk_title"
	KindNoDescription ExtractKind = "no_description"
)

// ExtractionError means one detail page yielded no usable record. The
// pipeline logs it and moves on; it never aborts a crawl.
type ExtractionError struct {
	Kind   ExtractKind
	URL    string
	Detail string
}

func (e *ExtractionError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("extract %s: %s (%s)", e.URL, e.Kind, e.Detail)
	}
	return fmt.Sprintf("extract %s: %s", e.URL, e.Kind)
}
