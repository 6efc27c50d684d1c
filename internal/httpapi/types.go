package httpapi

type CrawlStatus struct {
	LastRunAt    string `json:"last_run_at"`
	LastOkAt     string `json:"last_ok_at"`
	LastError    string `json:"last_error"`
	LastInserted int    `json:"last_inserted"`
	LastUpdated  int    `json:"last_updated"`
	LastSkipped  int    `json:"last_skipped"`
	Running      bool   `json:"running"`
}
