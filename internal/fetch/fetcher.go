package fetch

import (
	"context"
	"fmt"
	"time"
)

// Page is the raw content of one fetched URL.
type Page struct {
	URL       string
	FinalURL  string
	Body      []byte
	Status    int
	Rendered  bool
	FetchedAt time.Time
}

// Fetcher retrieves page content for a URL. Implementations do not retry;
// that is the caller's call to make.
type Fetcher interface {
	Name() string
	Fetch(ctx context.Context, url string) (*Page, error)
}

type ErrorKind string

const (
	KindNetwork       ErrorKind = "network"
	KindTimeout       ErrorKind = "timeout"
	KindHTTPStatus    ErrorKind = "http_status"
	KindRenderTimeout ErrorKind = "render_timeout"
)

// FetchError is the single failure type the pipeline sees from a fetch,
// with Kind as the sub-reason.
type FetchError struct {
	Kind   ErrorKind
	URL    string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Kind == KindHTTPStatus {
		return fmt.Sprintf("fetch %s: status %d", e.URL, e.Status)
	}
	return fmt.Sprintf("fetch %s: %s: %v", e.URL, e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
