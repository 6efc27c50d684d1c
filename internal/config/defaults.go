package config

// contextual builds a sector pattern that only matches when the keyword is
// followed by a qualifying word (major, degree, field, program, student)
// within a few words. Bare mentions ("engineering a solution") don't count.
func contextual(keyword string) []string {
	return []string{
		`\b` + keyword + `\b(?:\W+\w+){0,3}?\W+(?:major|degree|field|program|student)s?\b`,
	}
}

func defaultSectorRules() []TagRule {
	return []TagRule{
		{Tag: "STEM", Patterns: contextual(`stem`)},
		{Tag: "AI", Patterns: contextual(`(?:ai|artificial intelligence)`)},
		{Tag: "Engineering", Patterns: contextual(`engineering`)},
		{Tag: "Computer Science", Patterns: contextual(`computer science`)},
		{Tag: "Healthcare", Patterns: contextual(`health\s?care`)},
		{Tag: "Medicine", Patterns: contextual(`(?:medicine|medical|pre-?med)`)},
		{Tag: "Nursing", Patterns: contextual(`nursing`)},
		{Tag: "Business", Patterns: contextual(`business`)},
		{Tag: "Finance", Patterns: contextual(`finance`)},
		{Tag: "Accounting", Patterns: contextual(`accounting`)},
		{Tag: "Marketing", Patterns: contextual(`marketing`)},
		{Tag: "Economics", Patterns: contextual(`economics`)},
		{Tag: "Arts", Patterns: contextual(`(?:arts?|fine arts)`)},
		{Tag: "Music", Patterns: contextual(`music`)},
		{Tag: "Design", Patterns: contextual(`(?:design|graphic design)`)},
		{Tag: "Education", Patterns: contextual(`(?:education|teaching)`)},
		{Tag: "Law", Patterns: contextual(`(?:law|legal studies|pre-?law)`)},
		{Tag: "Psychology", Patterns: contextual(`psychology`)},
		{Tag: "Biology", Patterns: contextual(`biology`)},
		{Tag: "Chemistry", Patterns: contextual(`chemistry`)},
		{Tag: "Physics", Patterns: contextual(`physics`)},
		{Tag: "Mathematics", Patterns: contextual(`(?:math|mathematics)`)},
		{Tag: "Environmental Science", Patterns: contextual(`environmental (?:science|studies)`)},
		{Tag: "Communications", Patterns: contextual(`(?:communications?|journalism)`)},
		{Tag: "Agriculture", Patterns: contextual(`(?:agriculture|agricultural)`)},
	}
}

// defaultEligibilityRules lists one rule per demographic category; the first
// matching pattern sets the category's tag. The demographic patterns are
// deliberately broader than the sector rules (ethnonyms match without a
// scholarship-context qualifier); that asymmetry is inherited behavior kept
// for product review, not an oversight to fix here.
func defaultEligibilityRules() []TagRule {
	return []TagRule{
		{Tag: "first-gen", Patterns: []string{
			`first[\s-]generation college student`,
			`first[\s-]generation (?:college )?students?\b`,
			`first in (?:the|their|your|my) famil(?:y|ies) to (?:attend|go to|graduate from) college`,
		}},
		{Tag: "BIPOC", Patterns: []string{
			`\bbipoc\b`,
			`underrepresented minorit(?:y|ies)`,
			`\bafrican[\s-]american\b`,
			`\bblack students?\b`,
			`\bhispanic\b`,
			`\blatin[oa]x?\b`,
			`\bnative american\b`,
			`\bindigenous\b`,
			`\bpacific islander\b`,
			`\basian\b`,
		}},
		{Tag: "low-income", Patterns: []string{
			`low[\s-]income`,
			`qualif(?:y|ies|ying) for (?:a )?pell grant`,
			`pell[\s-]?(?:grant )?eligible`,
			`household income requirement`,
			`financial need`,
		}},
		{Tag: "LGBTQ", Patterns: []string{
			`\blgbtq?(?:ia)?\+?\b`,
			`\bqueer\b`,
			`lesbian, gay`,
			`\btransgender\b`,
		}},
		{Tag: "women", Patterns: []string{
			`\bwomen\b`,
			`\bfemale students?\b`,
			`women in [a-z]+`,
		}},
	}
}

// Default returns the built-in configuration, including the curated
// classifier rule tables. A packaged config.yml overrides any of it.
func Default() Config {
	var cfg Config
	cfg.App.Port = 38472
	cfg.App.DataDir = "."

	cfg.Crawl.UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"
	cfg.Crawl.DelayMS = 750
	cfg.Crawl.FetchTimeoutSeconds = 20
	cfg.Crawl.RenderTimeoutSeconds = 45

	cfg.Sites = []Site{
		{
			Name:           "bold",
			BaseURL:        "https://bold.org",
			ListingPath:    "/scholarships/",
			DetailPrefix:   "/scholarships/",
			DetailSegments: 2,
			PathDeny:       []string{"see-all", "groups", "access", "all-scholarship"},
			LabelDeny:      []string{"find college", "access exclusive", "see all", "search", "explore"},

			DefaultLocation: []string{"USA"},
			DefaultAudience: []string{"students"},
		},
		{
			Name:           "unigo",
			BaseURL:        "https://www.unigo.com",
			ListingPath:    "/scholarships/our-scholarships",
			DetailPrefix:   "/scholarships/our-scholarships/",
			DetailSegments: 3,
			Render:         true,
			PathDeny:       []string{"winners", "about", "contact", "privacy", "terms", "faq", "help", "support"},
			LabelDeny:      []string{"see all", "search", "explore"},

			DefaultLocation: []string{"USA"},
			DefaultAudience: []string{"students"},
		},
	}

	cfg.Classify.Sectors = defaultSectorRules()
	cfg.Classify.Eligibility = defaultEligibilityRules()
	cfg.Classify.DefaultTag = "general"

	return cfg
}
