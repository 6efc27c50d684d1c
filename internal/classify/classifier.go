// Package classify assigns sector and demographic-eligibility tags to a
// grant description. Both classifiers are driven by ordered rule tables
// (tag -> pattern list) so new tags are data changes, not code changes.
package classify

import (
	"fmt"
	"regexp"

	"grantmatch-engine/internal/config"
)

type compiledRule struct {
	tag      string
	patterns []*regexp.Regexp
}

type Classifier struct {
	sectors     []compiledRule
	eligibility []compiledRule
	defaultTag  string
}

// New compiles the rule tables once. A rule with no patterns falls back to
// a bare word-boundary match of its tag string.
func New(sectors, eligibility []config.TagRule, defaultTag string) (*Classifier, error) {
	cs, err := compileRules("sectors", sectors)
	if err != nil {
		return nil, err
	}
	ce, err := compileRules("eligibility", eligibility)
	if err != nil {
		return nil, err
	}
	if defaultTag == "" {
		defaultTag = "general"
	}
	return &Classifier{sectors: cs, eligibility: ce, defaultTag: defaultTag}, nil
}

func compileRules(table string, rules []config.TagRule) ([]compiledRule, error) {
	out := make([]compiledRule, 0, len(rules))
	for _, r := range rules {
		patterns := r.Patterns
		if len(patterns) == 0 {
			patterns = []string{`\b` + regexp.QuoteMeta(r.Tag) + `\b`}
		}
		cr := compiledRule{tag: r.Tag}
		for _, p := range patterns {
			re, err := regexp.Compile("(?i)" + p)
			if err != nil {
				return nil, fmt.Errorf("classify: %s rule %q pattern %q: %w", table, r.Tag, p, err)
			}
			cr.patterns = append(cr.patterns, re)
		}
		out = append(out, cr)
	}
	return out, nil
}

// Sectors returns every sector tag whose rule matches the description, in
// table order. May be empty.
func (c *Classifier) Sectors(description string) []string {
	var tags []string
	for _, r := range c.sectors {
		for _, re := range r.patterns {
			if re.MatchString(description) {
				tags = append(tags, r.tag)
				break
			}
		}
	}
	return tags
}

// Eligibility returns at most one tag per demographic category; the first
// matching pattern wins. With no match at all, the generic default tag is
// returned so the set is never empty.
func (c *Classifier) Eligibility(description string) []string {
	var tags []string
	for _, r := range c.eligibility {
		for _, re := range r.patterns {
			if re.MatchString(description) {
				tags = append(tags, r.tag)
				break
			}
		}
	}
	if len(tags) == 0 {
		tags = []string{c.defaultTag}
	}
	return tags
}
