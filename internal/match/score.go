// Package match scores stored grants against a requester's profile.
// Scoring is pure: same inputs, same integer, no side effects.
package match

import (
	"sort"
	"strings"
	"time"

	"grantmatch-engine/internal/domain"
)

type ScoredGrant struct {
	domain.GrantRecord
	Score int `json:"score"`
}

// Score weights. Independent and commutative; max total is 115.
const (
	weightUserType = 25
	weightLocation = 25
	weightSector   = 20
	weightRace     = 20
	weightDeadline = 10
	weightInterest = 15
)

func Score(p domain.UserProfile, g domain.GrantRecord) int {
	return ScoreAt(time.Now().UTC(), p, g)
}

// ScoreAt evaluates every criterion against the grant. A malformed
// deadline string earns no points but raises no error; malformed profile
// fields simply fail to match.
func ScoreAt(now time.Time, p domain.UserProfile, g domain.GrantRecord) int {
	score := 0

	if p.UserType != "" && containsString(g.TargetGroup, p.UserType) {
		score += weightUserType
	}
	if p.Location != "" && containsString(g.LocationEligible, p.Location) {
		score += weightLocation
	}
	if sectorHit(p, g.Sectors) {
		score += weightSector
	}
	if p.RaceOrEthnicity != "" && containsFold(g.EligibilityCriteria, p.RaceOrEthnicity) {
		score += weightRace
	}
	if deadlineOpen(now, g.Deadline) {
		score += weightDeadline
	}
	if interestInDescription(p.Interests, g.Description) {
		score += weightInterest
	}

	return score
}

// Match returns the grants with positive score, sorted descending. Ties
// keep their original order.
func Match(p domain.UserProfile, grants []domain.GrantRecord) []ScoredGrant {
	out := make([]ScoredGrant, 0, len(grants))
	for _, g := range grants {
		if s := Score(p, g); s > 0 {
			out = append(out, ScoredGrant{GrantRecord: g, Score: s})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

func sectorHit(p domain.UserProfile, sectors []string) bool {
	if p.Major != "" && containsString(sectors, p.Major) {
		return true
	}
	for _, interest := range p.Interests {
		if interest != "" && containsString(sectors, interest) {
			return true
		}
	}
	return false
}

// deadlineOpen: an absent deadline is treated as open; a parseable one
// must fall on or after today; a malformed one is silently ignored.
func deadlineOpen(now time.Time, deadline string) bool {
	if deadline == "" {
		return true
	}
	d, err := time.Parse("2006-01-02", deadline)
	if err != nil {
		return false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return !d.Before(today)
}

func interestInDescription(interests []string, description string) bool {
	ld := strings.ToLower(description)
	for _, interest := range interests {
		if interest == "" {
			continue
		}
		if strings.Contains(ld, strings.ToLower(interest)) {
			return true
		}
	}
	return false
}

func containsString(xs []string, want string) bool {
	for _, x := range xs {
		if x == want {
			return true
		}
	}
	return false
}

func containsFold(xs []string, want string) bool {
	for _, x := range xs {
		if strings.EqualFold(x, want) {
			return true
		}
	}
	return false
}
