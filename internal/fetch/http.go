package fetch

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"
)

const maxBodyBytes = 5 << 20

type HTTPOptions struct {
	UserAgent string
	Timeout   time.Duration
}

// HTTPFetcher is the plain request/response fetcher for static sites.
type HTTPFetcher struct {
	hc        *http.Client
	userAgent string
}

func NewHTTPFetcher(opts HTTPOptions) *HTTPFetcher {
	if opts.Timeout <= 0 {
		opts.Timeout = 20 * time.Second
	}
	return &HTTPFetcher{
		hc:        &http.Client{Timeout: opts.Timeout},
		userAgent: opts.UserAgent,
	}
}

func (f *HTTPFetcher) Name() string { return "http" }

func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string) (*Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &FetchError{Kind: KindNetwork, URL: rawURL, Err: err}
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	res, err := f.hc.Do(req)
	if err != nil {
		kind := KindNetwork
		if errors.Is(err, context.DeadlineExceeded) {
			kind = KindTimeout
		}
		var ne interface{ Timeout() bool }
		if errors.As(err, &ne) && ne.Timeout() {
			kind = KindTimeout
		}
		return nil, &FetchError{Kind: kind, URL: rawURL, Err: err}
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		return nil, &FetchError{Kind: KindHTTPStatus, URL: rawURL, Status: res.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(res.Body, maxBodyBytes))
	if err != nil {
		return nil, &FetchError{Kind: KindNetwork, URL: rawURL, Err: err}
	}

	finalURL := rawURL
	if res.Request != nil && res.Request.URL != nil {
		finalURL = res.Request.URL.String()
	}

	return &Page{
		URL:       rawURL,
		FinalURL:  finalURL,
		Body:      body,
		Status:    res.StatusCode,
		FetchedAt: time.Now().UTC(),
	}, nil
}
