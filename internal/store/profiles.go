package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"grantmatch-engine/internal/domain"
)

// UpsertProfile stores the caller's matching profile keyed by the user id
// the identity collaborator resolved.
func UpsertProfile(ctx context.Context, db *sql.DB, userID string, p domain.UserProfile) error {
	if userID == "" {
		return fmt.Errorf("upsert profile: missing user id")
	}
	interestsB, _ := json.Marshal(emptySlice(p.Interests))

	_, err := db.ExecContext(ctx, `
INSERT INTO profiles (user_id, user_type, location, major, race_or_ethnicity, interests, updated_at)
VALUES (?,?,?,?,?,?,?)
ON CONFLICT(user_id) DO UPDATE SET
  user_type = excluded.user_type,
  location = excluded.location,
  major = excluded.major,
  race_or_ethnicity = excluded.race_or_ethnicity,
  interests = excluded.interests,
  updated_at = excluded.updated_at;`,
		userID, p.UserType, p.Location, p.Major, p.RaceOrEthnicity,
		string(interestsB), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}
	return nil
}

func GetProfile(ctx context.Context, db *sql.DB, userID string) (*domain.UserProfile, error) {
	var p domain.UserProfile
	var interestsJSON string
	err := db.QueryRowContext(ctx, `
SELECT user_type, location, major, race_or_ethnicity, interests
FROM profiles
WHERE user_id = ?;`, userID).Scan(&p.UserType, &p.Location, &p.Major, &p.RaceOrEthnicity, &interestsJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	_ = json.Unmarshal([]byte(interestsJSON), &p.Interests)
	return &p, nil
}
