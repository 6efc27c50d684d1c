package match

import (
	"testing"
	"time"

	"grantmatch-engine/internal/domain"
)

var scoreNow = time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)

func fullMatchGrant() domain.GrantRecord {
	return domain.GrantRecord{
		Title:               "Future Coders Award",
		Description:         "For students who love robotics and community service.",
		Deadline:            "2026-06-01",
		LocationEligible:    []string{"USA"},
		TargetGroup:         []string{"students"},
		Sectors:             []string{"Computer Science"},
		EligibilityCriteria: []string{"BIPOC"},
		SourceURL:           "https://example.org/scholarships/future-coders",
	}
}

func fullMatchProfile() domain.UserProfile {
	return domain.UserProfile{
		UserType:        "students",
		Location:        "USA",
		Major:           "Computer Science",
		RaceOrEthnicity: "bipoc",
		Interests:       []string{"robotics"},
	}
}

func TestScoreAtFullMatch(t *testing.T) {
	if got := ScoreAt(scoreNow, fullMatchProfile(), fullMatchGrant()); got != 115 {
		t.Fatalf("got %d, want 115", got)
	}
}

func TestScoreAtDeterministic(t *testing.T) {
	p, g := fullMatchProfile(), fullMatchGrant()
	a := ScoreAt(scoreNow, p, g)
	b := ScoreAt(scoreNow, p, g)
	if a != b {
		t.Fatalf("scores differ: %d vs %d", a, b)
	}
}

func TestScoreAtCriteriaIndependent(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.UserProfile, *domain.GrantRecord)
		want   int
	}{
		{"drop user type", func(p *domain.UserProfile, g *domain.GrantRecord) { p.UserType = "parent" }, 90},
		{"drop location", func(p *domain.UserProfile, g *domain.GrantRecord) { p.Location = "Canada" }, 90},
		{"drop sector", func(p *domain.UserProfile, g *domain.GrantRecord) { g.Sectors = nil }, 95},
		{"drop race", func(p *domain.UserProfile, g *domain.GrantRecord) { p.RaceOrEthnicity = "" }, 95},
		{"past deadline", func(p *domain.UserProfile, g *domain.GrantRecord) { g.Deadline = "2025-12-31" }, 105},
		{"drop interests", func(p *domain.UserProfile, g *domain.GrantRecord) { p.Interests = nil }, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, g := fullMatchProfile(), fullMatchGrant()
			tt.mutate(&p, &g)
			if got := ScoreAt(scoreNow, p, g); got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestScoreAtDeadlines(t *testing.T) {
	p := domain.UserProfile{}
	tests := []struct {
		name     string
		deadline string
		want     int
	}{
		{"absent treated as open", "", 10},
		{"today still open", "2026-01-15", 10},
		{"future open", "2026-02-01", 10},
		{"past closed", "2026-01-14", 0},
		{"malformed earns nothing", "June 2026", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := domain.GrantRecord{Deadline: tt.deadline}
			if got := ScoreAt(scoreNow, p, g); got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestScoreAtSectorViaInterests(t *testing.T) {
	p := domain.UserProfile{Major: "History", Interests: []string{"Engineering"}}
	g := domain.GrantRecord{Sectors: []string{"Engineering"}, Deadline: "2025-01-01"}
	if got := ScoreAt(scoreNow, p, g); got != 20 {
		t.Fatalf("got %d, want 20", got)
	}
}

func TestScoreAtInterestInDescriptionCaseInsensitive(t *testing.T) {
	p := domain.UserProfile{Interests: []string{"Robotics"}}
	g := domain.GrantRecord{Description: "A robotics-focused award.", Deadline: "2025-01-01"}
	if got := ScoreAt(scoreNow, p, g); got != 15 {
		t.Fatalf("got %d, want 15", got)
	}
}

func TestMatchFiltersAndSorts(t *testing.T) {
	p := fullMatchProfile()
	full := fullMatchGrant()

	partial := fullMatchGrant()
	partial.Title = "Partial"
	partial.Sectors = nil
	partial.EligibilityCriteria = nil

	zero := domain.GrantRecord{
		Title:    "Closed and irrelevant",
		Deadline: "2020-01-01",
	}

	got := Match(p, []domain.GrantRecord{zero, partial, full})
	if len(got) != 2 {
		t.Fatalf("got %d results, want 2", len(got))
	}
	if got[0].Title != full.Title || got[1].Title != "Partial" {
		t.Errorf("wrong order: %q then %q", got[0].Title, got[1].Title)
	}
	if got[0].Score <= got[1].Score {
		t.Errorf("not sorted: %d then %d", got[0].Score, got[1].Score)
	}
}
