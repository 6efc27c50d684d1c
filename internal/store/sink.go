package store

import (
	"context"
	"database/sql"

	"grantmatch-engine/internal/domain"
)

// Sink adapts the package-level upsert to the crawl pipeline's sink
// interface.
type Sink struct {
	DB *sql.DB
}

func (s Sink) UpsertGrant(ctx context.Context, rec domain.GrantRecord) (bool, error) {
	return UpsertGrant(ctx, s.DB, rec)
}
