package scrape

import "testing"

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Win a $1,000 scholarship for your essay.", "$1,000"},
		{"k shorthand", "The $10K grant is open to seniors.", "$10,000"},
		{"k shorthand lowercase", "a $2k award", "$2,000"},
		{"m shorthand with decimal", "a pool of $1.5M in awards", "$1,500,000"},
		{"worded thousand", "receive $5 thousand toward tuition", "$5,000"},
		{"range", "awards from $500 to $2,500 each", "$500 to $2,500"},
		{"no amount", "open to all high school seniors", ""},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseAmount(tt.in); got != tt.want {
				t.Errorf("ParseAmount(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseAmountSuffixBeforePlain(t *testing.T) {
	// "$10K" must not be read as a plain "$10".
	if got := ParseAmount("Deadline soon! $10K for one winner."); got != "$10,000" {
		t.Fatalf("got %q, want $10,000", got)
	}
}

func TestAmountFromTitle(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Be Bold 10K Scholarship", "$10,000"},
		{"The 2.5K Essay Contest", "$2,500"},
		{"No Essay Scholarship", ""},
		{"Class of 2026 Fund", ""}, // bare year, no K suffix
	}
	for _, tt := range tests {
		if got := AmountFromTitle(tt.in); got != tt.want {
			t.Errorf("AmountFromTitle(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatUSD(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{100, "$100"},
		{1000, "$1,000"},
		{1500000, "$1,500,000"},
	}
	for _, tt := range tests {
		if got := formatUSD(tt.in); got != tt.want {
			t.Errorf("formatUSD(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
