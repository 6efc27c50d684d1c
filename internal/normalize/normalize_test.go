package normalize

import (
	"errors"
	"strings"
	"testing"

	"grantmatch-engine/internal/domain"
)

func TestCleanDescriptionStripsArtifacts(t *testing.T) {
	in := "Apply Now This scholarship rewards community service. Award Amount"
	got, didClean := CleanDescription(in)
	if !didClean {
		t.Fatal("expected didClean")
	}
	if strings.Contains(got, "Apply Now") || strings.Contains(got, "Award Amount") {
		t.Errorf("artifacts survived: %q", got)
	}
	if !strings.Contains(got, "community service") {
		t.Errorf("content lost: %q", got)
	}
}

func TestCleanDescriptionPipesToBullets(t *testing.T) {
	in := "Requirements: must be enrolled | minimum 3.0 GPA | US resident"
	got, _ := CleanDescription(in)
	for _, want := range []string{"• must be enrolled", "• minimum 3.0 GPA", "• US resident"} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in %q", want, got)
		}
	}
}

func TestCleanDescriptionShortPipePartsDropped(t *testing.T) {
	in := "a | b | this longer part stays in the output"
	got, _ := CleanDescription(in)
	if strings.Contains(got, "• a") || strings.Contains(got, "• b") {
		t.Errorf("short parts kept: %q", got)
	}
	if !strings.Contains(got, "• this longer part stays") {
		t.Errorf("long part lost: %q", got)
	}
}

func TestCleanDescriptionUnchanged(t *testing.T) {
	in := "A clean description already."
	got, didClean := CleanDescription(in)
	if didClean {
		t.Errorf("didClean = true for untouched input")
	}
	if got != in {
		t.Errorf("got %q", got)
	}
}

func longDesc() string {
	return strings.Repeat("This scholarship supports students. ", 3)
}

func TestRecordLenientFloorWhenUntouched(t *testing.T) {
	// 10..49 chars is fine as long as cleaning changed nothing.
	rec := &domain.GrantRecord{Description: "Twenty good characters."}
	if err := Record(rec, nil, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRecordStrictFloorAfterCleaning(t *testing.T) {
	// Cleaning strips the artifact, leaving text under the strict floor.
	rec := &domain.GrantRecord{Description: "Apply Now short residue text"}
	err := Record(rec, nil, nil)
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Kind != KindTooShort {
		t.Fatalf("err = %v, want too_short", err)
	}
}

func TestRecordRejectsTiny(t *testing.T) {
	rec := &domain.GrantRecord{Description: "tooshort"}
	err := Record(rec, nil, nil)
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Kind != KindTooShort {
		t.Fatalf("err = %v, want too_short", err)
	}
}

func TestRecordRejectsLoginGated(t *testing.T) {
	rec := &domain.GrantRecord{Description: longDesc() + " You must login to apply for this award."}
	err := Record(rec, nil, nil)
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Kind != KindLoginGated {
		t.Fatalf("err = %v, want login_gated", err)
	}
}

func TestRecordStraySignInLinkNotGated(t *testing.T) {
	rec := &domain.GrantRecord{Description: longDesc() + " Use the sign in link for your dashboard."}
	if err := Record(rec, nil, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRecordAmountPlausibility(t *testing.T) {
	tests := []struct {
		amount string
		want   string
	}{
		{"$1,000", "$1,000"},
		{"$50", "Varies"},      // below lower bound
		{"$250,000", "Varies"}, // above upper bound
		{"", "Varies"},
	}
	for _, tt := range tests {
		rec := &domain.GrantRecord{Description: longDesc(), Amount: tt.amount}
		if err := Record(rec, nil, nil); err != nil {
			t.Fatalf("amount %q: %v", tt.amount, err)
		}
		if rec.Amount != tt.want {
			t.Errorf("amount %q -> %q, want %q", tt.amount, rec.Amount, tt.want)
		}
	}
}

func TestRecordFillsDefaults(t *testing.T) {
	rec := &domain.GrantRecord{Description: longDesc()}
	if err := Record(rec, []string{"USA"}, []string{"students"}); err != nil {
		t.Fatal(err)
	}
	if len(rec.LocationEligible) != 1 || rec.LocationEligible[0] != "USA" {
		t.Errorf("location = %v", rec.LocationEligible)
	}
	if len(rec.TargetGroup) != 1 || rec.TargetGroup[0] != "students" {
		t.Errorf("target group = %v", rec.TargetGroup)
	}
}

func TestRecordKeepsExplicitFields(t *testing.T) {
	rec := &domain.GrantRecord{
		Description:      longDesc(),
		LocationEligible: []string{"Texas"},
		TargetGroup:      []string{"graduate students"},
	}
	if err := Record(rec, []string{"USA"}, []string{"students"}); err != nil {
		t.Fatal(err)
	}
	if rec.LocationEligible[0] != "Texas" || rec.TargetGroup[0] != "graduate students" {
		t.Errorf("defaults overwrote explicit fields: %v %v", rec.LocationEligible, rec.TargetGroup)
	}
}
