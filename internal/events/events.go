package events

import (
	"encoding/json"
	"time"
)

// Event types published on the hub.
const (
	TypeGrantUpserted = "grant_upserted"
	TypeCrawlStarted  = "crawl_started"
	TypeCrawlFinished = "crawl_finished"
	TypeConfigUpdated = "config_updated"
)

type Event struct {
	Type      string          `json:"type"`
	Version   int             `json:"v"`
	At        time.Time       `json:"at"`
	RequestID string          `json:"request_id,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
}

func MakeEvent(reqID, typ string, v int, data any) string {
	var raw json.RawMessage
	if data != nil {
		b, _ := json.Marshal(data)
		raw = b
	}
	e := Event{
		Type:      typ,
		Version:   v,
		At:        time.Now().UTC(),
		RequestID: reqID,
		Data:      raw,
	}
	b, _ := json.Marshal(e)
	return string(b)
}

// GrantUpserted announces one stored record. Payload stays small on
// purpose; clients refetch /grants for the full row.
func GrantUpserted(title, sourceURL string, inserted bool) string {
	return MakeEvent("", TypeGrantUpserted, 1, map[string]any{
		"title":      title,
		"source_url": sourceURL,
		"inserted":   inserted,
	})
}

func CrawlStarted(reqID string, sites int) string {
	return MakeEvent(reqID, TypeCrawlStarted, 1, map[string]any{"sites": sites})
}

func CrawlFinished(reqID string, inserted, updated, skipped int, runErr string) string {
	data := map[string]any{
		"inserted": inserted,
		"updated":  updated,
		"skipped":  skipped,
	}
	if runErr != "" {
		data["error"] = runErr
	}
	return MakeEvent(reqID, TypeCrawlFinished, 1, data)
}
