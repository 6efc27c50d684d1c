package httpapi

import (
	"context"
	"database/sql"
	"sync/atomic"

	"grantmatch-engine/internal/config"
	"grantmatch-engine/internal/domain"
	"grantmatch-engine/internal/events"
	"grantmatch-engine/internal/scrape"
)

type Deps struct {
	DB *sql.DB

	Hub *events.Hub

	// Atomic stores
	CfgVal      *atomic.Value // stores config.Config
	CrawlStatus *atomic.Value // stores httpapi.CrawlStatus

	// Config persistence
	UserCfgPath string
	LoadCfg     func() (config.Config, error)

	// Maps a bearer token to a user id for /me and /profile.
	ResolveUser func(ctx context.Context, token string) (string, error)

	// Crawl entrypoint (inject for testability)
	RunCrawl func(ctx context.Context, cfg config.Config, pages int, sink scrape.Sink, onUpsert func(domain.GrantRecord, bool)) (scrape.RunTotals, error)
}
