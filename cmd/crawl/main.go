package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"grantmatch-engine/internal/config"
	"grantmatch-engine/internal/scrape"
	"grantmatch-engine/internal/store"
)

// One-shot crawl without the HTTP engine. Useful for cron and for
// debugging a single site.
func main() {
	var (
		cfgPath  = flag.String("config", "", "path to config.yml (default: bootstrap into data dir)")
		dbPath   = flag.String("db", "", "path to sqlite db (default: <data-dir>/grantmatch.db)")
		siteName = flag.String("site", "", "crawl only this site")
		pages    = flag.Int("pages", 1, "listing pages per site")
	)
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("[crawl] no .env file found, using environment variables")
	}

	dataDir := os.Getenv("GRANTMATCH_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatal(err)
	}

	path := *cfgPath
	if path == "" {
		p, err := config.EnsureUserConfig(dataDir, filepath.Join("config", "config.yml"))
		if err != nil {
			log.Fatalf("config bootstrap failed: %v", err)
		}
		path = p
	}
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("config load failed (%s): %v", path, err)
	}
	if err := config.OverlaySites(&cfg, filepath.Join(dataDir, "sites.yml")); err != nil {
		log.Fatalf("sites overlay failed: %v", err)
	}

	if *siteName != "" {
		var keep []config.Site
		for _, s := range cfg.Sites {
			if s.Name == *siteName {
				keep = append(keep, s)
			}
		}
		if len(keep) == 0 {
			log.Fatalf("no site named %q in config", *siteName)
		}
		cfg.Sites = keep
	}

	dbFile := *dbPath
	if dbFile == "" {
		dbFile = filepath.Join(dataDir, "grantmatch.db")
	}
	db, err := store.Open(dbFile)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := store.Migrate(db.Pool); err != nil {
		log.Fatal(err)
	}

	totals, runErr := scrape.RunAll(context.Background(), cfg, *pages, store.Sink{DB: db.Pool}, nil)

	for _, s := range totals.Sites {
		fmt.Printf("%-12s pages=%d links=%d inserted=%d updated=%d skipped=%d\n",
			s.Site, s.Pages, s.Links, s.Inserted, s.Updated, s.Skipped)
	}
	fmt.Printf("total inserted=%d updated=%d skipped=%d\n", totals.Inserted, totals.Updated, totals.Skipped)

	if runErr != nil {
		log.Fatalf("crawl finished with errors: %v", runErr)
	}
}
