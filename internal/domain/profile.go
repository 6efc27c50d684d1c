package domain

// UserProfile is the matching input. It lives for the scope of one match
// request unless the caller chooses to persist it.
type UserProfile struct {
	UserType        string   `json:"user_type"`
	Location        string   `json:"location"`
	Major           string   `json:"major"`
	RaceOrEthnicity string   `json:"race_or_ethnicity"`
	Interests       []string `json:"interests"`
}
