// Package normalize turns extracted fields into a canonical GrantRecord,
// stripping residual UI noise and rejecting records that cannot be trusted.
package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"grantmatch-engine/internal/domain"
)

type ValidationKind string

const (
	KindTooShort   ValidationKind = "too_short"
	KindLoginGated ValidationKind = "login_gated"
)

type ValidationError struct {
	Kind   ValidationKind
	Detail string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validate: %s (%s)", e.Kind, e.Detail)
}

// uiArtifacts are substrings that survive extraction on some pages and
// carry no information about the grant itself.
var uiArtifacts = []string{
	"Apply Now", "Award Amount", "AWARD AMOUNT", "Application Deadline",
	"APPLICATION DEADLINE", "Application Status", "Not Applied",
	"View Scholarships", "Opens in new tab", "Millions of Scholarships",
	"Get started", "GET STARTED", "Sign Up For Access",
	"Continue With Google", "Continue with Email", "My Education Level",
	"High School Senior", "High School Junior", "High School Sophomore",
	"High School Freshman", "Graduate Student", "scholarship contests",
	"sweepstakes",
}

// loginGatePhrases are the strong signals that a grant cannot be read
// without an account. A stray "sign in" link elsewhere on the page is not
// enough to disqualify.
var loginGatePhrases = []string{
	"login required",
	"sign in required",
	"you must login",
	"you must log in",
	"you must sign in",
	"login to apply",
	"log in to apply",
	"sign in to apply",
	"register to apply",
	"create account to apply",
	"create an account to apply",
	"membership required to apply",
}

const (
	strictDescFloor  = 50
	lenientDescFloor = 10

	amountLowerBound = 100
	amountUpperBound = 100_000

	amountPlaceholder = "Varies"
)

var (
	reBlankRuns = regexp.MustCompile(`\n\s*\n\s*\n+`)
	reSpaceRuns = regexp.MustCompile(`[ \t]+`)
)

// CleanDescription strips UI artifacts, collapses whitespace, and turns
// pipe-separated lines into bullets. The second return reports whether
// anything actually changed, which decides the length floor applied later.
func CleanDescription(desc string) (string, bool) {
	orig := desc

	for _, a := range uiArtifacts {
		desc = strings.ReplaceAll(desc, a, "")
	}

	if strings.Contains(desc, "|") {
		desc = reformatPipes(desc)
	}

	desc = reBlankRuns.ReplaceAllString(desc, "\n\n")
	desc = reSpaceRuns.ReplaceAllString(desc, " ")

	var lines []string
	for _, line := range strings.Split(desc, "\n") {
		lines = append(lines, strings.TrimSpace(line))
	}
	desc = strings.TrimSpace(strings.Join(lines, "\n"))

	return desc, desc != orig
}

func reformatPipes(desc string) string {
	var out []string
	for _, line := range strings.Split(desc, "\n") {
		if !strings.Contains(line, "|") {
			out = append(out, line)
			continue
		}
		parts := strings.Split(line, "|")
		kept := 0
		for _, part := range parts {
			part = strings.TrimSpace(part)
			if len(part) > 5 {
				out = append(out, "• "+part)
				kept++
			}
		}
		if kept == 0 {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}

// Record finalizes rec in place: cleans the description, applies the
// validation rules, and fills defaults. defaultLocation and
// defaultAudience come from the source site's configuration.
func Record(rec *domain.GrantRecord, defaultLocation, defaultAudience []string) error {
	cleaned, didClean := CleanDescription(rec.Description)
	rec.Description = cleaned

	floor := lenientDescFloor
	if didClean {
		floor = strictDescFloor
	}
	if len(cleaned) < floor {
		return &ValidationError{Kind: KindTooShort, Detail: fmt.Sprintf("%d chars, floor %d", len(cleaned), floor)}
	}

	ld := strings.ToLower(cleaned)
	for _, phrase := range loginGatePhrases {
		if strings.Contains(ld, phrase) {
			return &ValidationError{Kind: KindLoginGated, Detail: phrase}
		}
	}

	if rec.Amount != "" && !amountPlausible(rec.Amount) {
		rec.Amount = ""
	}
	if rec.Amount == "" {
		rec.Amount = amountPlaceholder
	}

	if len(rec.LocationEligible) == 0 {
		rec.LocationEligible = append([]string(nil), defaultLocation...)
	}
	if len(rec.TargetGroup) == 0 {
		rec.TargetGroup = append([]string(nil), defaultAudience...)
	}
	if rec.Sectors == nil {
		rec.Sectors = []string{}
	}

	return nil
}

// amountPlausible checks the first numeric value in a currency string
// against the sanity bounds. Unparseable strings are kept as-is; only a
// clearly out-of-range number disqualifies.
func amountPlausible(amount string) bool {
	i := strings.IndexByte(amount, '$')
	if i < 0 {
		return true
	}
	j := i + 1
	for j < len(amount) && (amount[j] >= '0' && amount[j] <= '9' || amount[j] == ',') {
		j++
	}
	numStr := strings.ReplaceAll(amount[i+1:j], ",", "")
	if numStr == "" {
		return true
	}
	n, err := strconv.ParseInt(numStr, 10, 64)
	if err != nil {
		return true
	}
	return n >= amountLowerBound && n <= amountUpperBound
}
