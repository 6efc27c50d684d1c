package domain

// GrantRecord is the canonical persisted unit describing one
// scholarship/grant opportunity. SourceURL is its identity: re-ingesting
// the same URL replaces the stored record.
type GrantRecord struct {
	ID                  int64    `json:"id,omitempty"`
	Title               string   `json:"title"`
	Description         string   `json:"description"`
	Amount              string   `json:"amount"`             // "Varies" when no amount was found
	Deadline            string   `json:"deadline,omitempty"` // ISO-8601 date, or empty
	LocationEligible    []string `json:"location_eligible"`
	TargetGroup         []string `json:"target_group"`
	Sectors             []string `json:"sectors"`
	EligibilityCriteria []string `json:"eligibility_criteria"`
	SourceURL           string   `json:"source_url"`
}
