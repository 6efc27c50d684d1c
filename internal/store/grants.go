package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"grantmatch-engine/internal/domain"
)

// UpsertGrant persists rec keyed by source_url: a fresh URL inserts, a
// known URL fully replaces the stored record. Returns whether the record
// was newly inserted.
func UpsertGrant(ctx context.Context, db *sql.DB, rec domain.GrantRecord) (inserted bool, err error) {
	if rec.SourceURL == "" {
		return false, fmt.Errorf("upsert grant: missing source_url")
	}

	var exists int
	err = db.QueryRowContext(ctx, `SELECT 1 FROM grants WHERE source_url = ? LIMIT 1;`, rec.SourceURL).Scan(&exists)
	if err != nil && err != sql.ErrNoRows {
		return false, fmt.Errorf("upsert grant: precheck: %w", err)
	}
	inserted = err == sql.ErrNoRows

	locB, _ := json.Marshal(emptySlice(rec.LocationEligible))
	tgB, _ := json.Marshal(emptySlice(rec.TargetGroup))
	secB, _ := json.Marshal(emptySlice(rec.Sectors))
	eligB, _ := json.Marshal(emptySlice(rec.EligibilityCriteria))

	now := time.Now().UTC().Format(time.RFC3339)

	_, err = db.ExecContext(ctx, `
INSERT INTO grants (title, description, amount, deadline, location_eligible, target_group, sectors, eligibility_criteria, source_url, first_seen, last_seen)
VALUES (?,?,?,?,?,?,?,?,?,?,?)
ON CONFLICT(source_url) DO UPDATE SET
  title = excluded.title,
  description = excluded.description,
  amount = excluded.amount,
  deadline = excluded.deadline,
  location_eligible = excluded.location_eligible,
  target_group = excluded.target_group,
  sectors = excluded.sectors,
  eligibility_criteria = excluded.eligibility_criteria,
  last_seen = excluded.last_seen;`,
		rec.Title, rec.Description, rec.Amount, rec.Deadline,
		string(locB), string(tgB), string(secB), string(eligB),
		rec.SourceURL, now, now,
	)
	if err != nil {
		return false, fmt.Errorf("upsert grant: %w", err)
	}
	return inserted, nil
}

type ListGrantsOpts struct {
	Sort  string // deadline | title
	Limit int
}

func ListGrants(ctx context.Context, db *sql.DB, opts ListGrantsOpts) ([]domain.GrantRecord, error) {
	// whitelist sort columns (prevents SQL injection)
	sortCol := map[string]string{
		"deadline": "deadline",
		"title":    "title",
	}[opts.Sort]
	order := "ASC"
	if sortCol == "" {
		sortCol = "id"
	}
	if opts.Limit <= 0 || opts.Limit > 50000 {
		opts.Limit = 50000
	}

	query := fmt.Sprintf(`
SELECT id, title, description, amount, deadline, location_eligible, target_group, sectors, eligibility_criteria, source_url
FROM grants
ORDER BY %s %s
LIMIT ?;`, sortCol, order)

	rows, err := db.QueryContext(ctx, query, opts.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.GrantRecord
	for rows.Next() {
		rec, err := scanGrant(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func GetGrantByURL(ctx context.Context, db *sql.DB, sourceURL string) (*domain.GrantRecord, error) {
	row := db.QueryRowContext(ctx, `
SELECT id, title, description, amount, deadline, location_eligible, target_group, sectors, eligibility_criteria, source_url
FROM grants
WHERE source_url = ?;`, sourceURL)

	rec, err := scanGrant(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGrant(row rowScanner) (domain.GrantRecord, error) {
	var rec domain.GrantRecord
	var locJSON, tgJSON, secJSON, eligJSON string
	if err := row.Scan(
		&rec.ID,
		&rec.Title,
		&rec.Description,
		&rec.Amount,
		&rec.Deadline,
		&locJSON,
		&tgJSON,
		&secJSON,
		&eligJSON,
		&rec.SourceURL,
	); err != nil {
		return rec, err
	}
	_ = json.Unmarshal([]byte(locJSON), &rec.LocationEligible)
	_ = json.Unmarshal([]byte(tgJSON), &rec.TargetGroup)
	_ = json.Unmarshal([]byte(secJSON), &rec.Sectors)
	_ = json.Unmarshal([]byte(eligJSON), &rec.EligibilityCriteria)
	return rec, nil
}

func emptySlice(xs []string) []string {
	if xs == nil {
		return []string{}
	}
	return xs
}
