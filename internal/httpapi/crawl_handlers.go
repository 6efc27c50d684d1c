package httpapi

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"sync/atomic"
	"time"

	"grantmatch-engine/internal/config"
	"grantmatch-engine/internal/domain"
	"grantmatch-engine/internal/events"
	"grantmatch-engine/internal/scrape"
	"grantmatch-engine/internal/store"
)

type CrawlHandler struct {
	DB          *sql.DB
	CfgVal      *atomic.Value // config.Config
	CrawlStatus *atomic.Value // httpapi.CrawlStatus
	Hub         *events.Hub
	RunCrawl    func(ctx context.Context, cfg config.Config, pages int, sink scrape.Sink, onUpsert func(domain.GrantRecord, bool)) (scrape.RunTotals, error)
}

func (h CrawlHandler) Status(w http.ResponseWriter, r *http.Request) {
	st := h.CrawlStatus.Load().(CrawlStatus)
	writeJSON(w, st)
}

func (h CrawlHandler) Run(w http.ResponseWriter, r *http.Request) {
	st := h.CrawlStatus.Load().(CrawlStatus)
	if st.Running {
		writeJSON(w, map[string]any{"ok": false, "msg": "already running"})
		return
	}

	var body struct {
		Pages int `json:"pages"`
	}
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&body) // empty body means defaults
	}
	if body.Pages <= 0 {
		body.Pages = 1
	}

	h.CrawlStatus.Store(CrawlStatus{
		LastRunAt: time.Now().Format(time.RFC3339),
		Running:   true,
		LastOkAt:  st.LastOkAt,
	})

	reqID := RequestIDFrom(r.Context())
	go func() {
		cfg := h.CfgVal.Load().(config.Config)
		h.Hub.Publish(events.CrawlStarted(reqID, len(cfg.Sites)))

		totals, err := h.RunCrawl(context.Background(), cfg, body.Pages, store.Sink{DB: h.DB}, func(rec domain.GrantRecord, inserted bool) {
			h.Hub.Publish(events.GrantUpserted(rec.Title, rec.SourceURL, inserted))
		})

		now := time.Now().Format(time.RFC3339)
		next := h.CrawlStatus.Load().(CrawlStatus)
		next.Running = false
		next.LastRunAt = now
		next.LastInserted = totals.Inserted
		next.LastUpdated = totals.Updated
		next.LastSkipped = totals.Skipped
		if err != nil {
			next.LastError = err.Error()
		} else {
			next.LastError = ""
			next.LastOkAt = now
		}
		h.CrawlStatus.Store(next)

		h.Hub.Publish(events.CrawlFinished(reqID, totals.Inserted, totals.Updated, totals.Skipped, next.LastError))
	}()

	writeJSON(w, map[string]any{"ok": true})
}
