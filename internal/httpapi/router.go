package httpapi

import "net/http"

// NewMux returns the raw mux so main() can wrap it with middleware.
func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	// Grants
	gh := GrantsHandler{DB: d.DB}
	mux.HandleFunc("/grants", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: gh.List,
	}))

	// Matching
	mh := MatchHandler{DB: d.DB}
	mux.HandleFunc("/match", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: mh.Match,
	}))

	// Profiles
	ph := ProfileHandler{DB: d.DB, ResolveUser: d.ResolveUser}
	mux.HandleFunc("/me", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ph.Me,
	}))
	mux.HandleFunc("/profile", methodMux(map[string]http.HandlerFunc{
		http.MethodPut: ph.Put,
	}))

	// Config
	ch := ConfigHandler{
		CfgVal:      d.CfgVal,
		Hub:         d.Hub,
		UserCfgPath: d.UserCfgPath,
		LoadCfg:     d.LoadCfg,
	}
	mux.HandleFunc("/config", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Get,
		http.MethodPut: ch.Put,
	}))
	mux.HandleFunc("/config/path", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Path,
	}))

	// Crawl
	crh := CrawlHandler{
		DB:          d.DB,
		CfgVal:      d.CfgVal,
		CrawlStatus: d.CrawlStatus,
		Hub:         d.Hub,
		RunCrawl:    d.RunCrawl,
	}
	mux.HandleFunc("/crawl/status", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: crh.Status,
	}))
	mux.HandleFunc("/crawl/run", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: crh.Run,
	}))

	// SSE events
	eh := EventsHandler{Hub: d.Hub}
	mux.HandleFunc("/events", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: eh.ServeSSE,
	}))

	// Health
	hh := HealthHandler{}
	mux.HandleFunc("/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: hh.Health,
	}))

	return mux
}
