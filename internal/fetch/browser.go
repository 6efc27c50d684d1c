package fetch

import (
	"context"
	"errors"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/chromedp/chromedp/kb"
)

type BrowserOptions struct {
	UserAgent   string
	Timeout     time.Duration
	SettleDelay time.Duration
	Headful     bool
}

// BrowserFetcher drives a headless Chrome session for sites that render
// their listings client-side. It waits for the document to settle and
// dismisses interstitial modals before capturing the DOM.
type BrowserFetcher struct {
	opts BrowserOptions
}

func NewBrowserFetcher(opts BrowserOptions) *BrowserFetcher {
	if opts.Timeout <= 0 {
		opts.Timeout = 45 * time.Second
	}
	if opts.SettleDelay <= 0 {
		opts.SettleDelay = 1500 * time.Millisecond
	}
	return &BrowserFetcher{opts: opts}
}

func (f *BrowserFetcher) Name() string { return "browser" }

// modalCloseSelectors are tried one by one; any of them may be absent.
var modalCloseSelectors = []string{
	`button[aria-label='Close']`,
	`.modal-close`,
	`.close-button`,
	`[data-dismiss='modal']`,
	`.modal .close`,
	`button.close`,
}

func (f *BrowserFetcher) Fetch(parentCtx context.Context, rawURL string) (*Page, error) {
	ctx, cancel := context.WithTimeout(parentCtx, f.opts.Timeout)
	defer cancel()

	execOpts := []chromedp.ExecAllocatorOption{
		chromedp.Flag("headless", !f.opts.Headful),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("no-sandbox", true),
	}
	if f.opts.UserAgent != "" {
		execOpts = append(execOpts, chromedp.UserAgent(f.opts.UserAgent))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, execOpts...)
	defer allocCancel()

	chromeCtx, chromeCancel := chromedp.NewContext(allocCtx)
	defer chromeCancel()

	var html string
	var finalURL string

	actions := []chromedp.Action{
		chromedp.Navigate(rawURL),
		waitForDocumentReady(),
		chromedp.Sleep(f.opts.SettleDelay),
		dismissModals(),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
		chromedp.Location(&finalURL),
	}

	if err := chromedp.Run(chromeCtx, actions...); err != nil {
		kind := KindNetwork
		if errors.Is(err, context.DeadlineExceeded) {
			kind = KindRenderTimeout
		}
		return nil, &FetchError{Kind: kind, URL: rawURL, Err: err}
	}

	if len(html) > maxBodyBytes {
		html = html[:maxBodyBytes]
	}
	if finalURL == "" {
		finalURL = rawURL
	}

	return &Page{
		URL:       rawURL,
		FinalURL:  finalURL,
		Body:      []byte(html),
		Status:    200,
		Rendered:  true,
		FetchedAt: time.Now().UTC(),
	}, nil
}

func waitForDocumentReady() chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for {
			var readyState string
			if err := chromedp.Evaluate(`document.readyState`, &readyState).Do(ctx); err != nil {
				return err
			}
			if readyState == "complete" {
				return nil
			}
			select {
			case <-ticker.C:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	})
}

// dismissModals clicks through the usual close buttons, then falls back to
// Escape. Failures are ignored; a lingering modal only costs extraction
// some noise.
func dismissModals() chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		for _, sel := range modalCloseSelectors {
			clickCtx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
			err := chromedp.Run(clickCtx, chromedp.Click(sel, chromedp.ByQuery, chromedp.NodeVisible))
			cancel()
			if err == nil {
				break
			}
		}
		_ = chromedp.KeyEvent(kb.Escape).Do(ctx)
		return nil
	})
}
