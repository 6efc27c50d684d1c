package classify

import (
	"reflect"
	"testing"

	"grantmatch-engine/internal/config"
)

func testClassifier(t *testing.T) *Classifier {
	t.Helper()
	c, err := New(config.Default().Classify.Sectors, config.Default().Classify.Eligibility, "general")
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestSectorsRequireContext(t *testing.T) {
	c := testClassifier(t)

	tests := []struct {
		name string
		desc string
		want []string
	}{
		{
			"qualified mention matches",
			"Open to Engineering majors at any accredited university.",
			[]string{"Engineering"},
		},
		{
			"bare mention does not match",
			"We are engineering a solution to student debt.",
			nil,
		},
		{
			"qualifier within a few words",
			"students pursuing a nursing or pre-med degree",
			[]string{"Medicine", "Nursing"},
		},
		{
			"multiple sectors in table order",
			"for computer science majors and mathematics students alike",
			[]string{"Computer Science", "Mathematics"},
		},
		{
			"qualifier too far away",
			"engineering is a word and much much later and elsewhere some unrelated degree",
			nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Sectors(tt.desc)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Sectors(%q) = %v, want %v", tt.desc, got, tt.want)
			}
		})
	}
}

func TestEligibility(t *testing.T) {
	c := testClassifier(t)

	tests := []struct {
		name string
		desc string
		want []string
	}{
		{
			"first-gen phrasing",
			"Applicants must be first-generation college students.",
			[]string{"first-gen"},
		},
		{
			"demographic term without qualifier still matches",
			"This award celebrates Native American heritage.",
			[]string{"BIPOC"},
		},
		{
			"one tag per category",
			"Open to low-income, Pell-eligible women in STEM.",
			[]string{"low-income", "women"},
		},
		{
			"no match falls back to default",
			"Open to anyone who writes a great essay.",
			[]string{"general"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Eligibility(tt.desc)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Eligibility(%q) = %v, want %v", tt.desc, got, tt.want)
			}
		})
	}
}

func TestEmptyPatternsFallBackToTagWord(t *testing.T) {
	c, err := New([]config.TagRule{{Tag: "Robotics"}}, nil, "general")
	if err != nil {
		t.Fatal(err)
	}
	if got := c.Sectors("a robotics competition for teams"); len(got) != 1 || got[0] != "Robotics" {
		t.Errorf("got %v", got)
	}
	if got := c.Sectors("robot arms only"); got != nil {
		t.Errorf("partial word matched: %v", got)
	}
}

func TestNewRejectsBadPattern(t *testing.T) {
	_, err := New([]config.TagRule{{Tag: "X", Patterns: []string{"(unclosed"}}}, nil, "general")
	if err == nil {
		t.Fatal("want compile error")
	}
}
