package config

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate returns a normalized copy plus everything a caller
// (the PUT /config handler, mostly) should surface to the user.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	var out = cfg
	var res Validation

	trimList := func(xs []string) []string {
		seen := map[string]bool{}
		var ys []string
		for _, x := range xs {
			x = strings.TrimSpace(x)
			if x == "" {
				continue
			}
			key := strings.ToLower(x)
			if seen[key] {
				continue
			}
			seen[key] = true
			ys = append(ys, x)
		}
		return ys
	}

	if out.App.Port <= 0 || out.App.Port > 65535 {
		res.addErr("app.port must be 1..65535")
	}

	if out.Crawl.DelayMS < 0 {
		res.addErr("crawl.delay_ms must be >= 0")
	} else if out.Crawl.DelayMS < 250 {
		res.addWarn("crawl.delay_ms is very low (%d); source sites may block the crawler.", out.Crawl.DelayMS)
	}
	if out.Crawl.FetchTimeoutSeconds <= 0 {
		res.addErr("crawl.fetch_timeout_seconds must be > 0")
	}
	if out.Crawl.RenderTimeoutSeconds <= 0 {
		res.addErr("crawl.render_timeout_seconds must be > 0")
	}
	if strings.TrimSpace(out.Crawl.UserAgent) == "" {
		res.addWarn("crawl.user_agent is empty; sites that block default clients will refuse the crawler.")
	}

	if len(out.Sites) == 0 {
		res.addErr("no sites configured")
	}
	seenNames := map[string]bool{}
	for i := range out.Sites {
		s := &out.Sites[i]
		s.PathDeny = trimList(s.PathDeny)
		s.LabelDeny = trimList(s.LabelDeny)
		s.DefaultLocation = trimList(s.DefaultLocation)
		s.DefaultAudience = trimList(s.DefaultAudience)

		if strings.TrimSpace(s.Name) == "" {
			res.addErr("sites[%d].name is required", i)
		} else if seenNames[s.Name] {
			res.addErr("duplicate site name %q", s.Name)
		} else {
			seenNames[s.Name] = true
		}
		if u, err := url.Parse(s.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
			res.addErr("sites[%d].base_url must be an absolute URL", i)
		}
		if !strings.HasPrefix(s.DetailPrefix, "/") {
			res.addErr("sites[%d].detail_prefix must start with /", i)
		}
		if s.DetailSegments <= 0 {
			res.addErr("sites[%d].detail_segments must be > 0", i)
		}
		if len(s.DefaultLocation) == 0 {
			res.addWarn("sites[%d].default_location is empty; records will have no location eligibility.", i)
		}
		if len(s.DefaultAudience) == 0 {
			res.addWarn("sites[%d].default_audience is empty; records will have no target group.", i)
		}
	}

	checkRules := func(name string, rules []TagRule) {
		seen := map[string]bool{}
		for i, r := range rules {
			if r.Tag == "" {
				res.addErr("%s[%d].tag is required", name, i)
			}
			if seen[r.Tag] {
				res.addErr("%s has duplicate tag %q", name, r.Tag)
			}
			seen[r.Tag] = true
			for j, p := range r.Patterns {
				if p == "" {
					res.addErr("%s[%d].patterns[%d] cannot be empty", name, i, j)
					continue
				}
				if _, err := regexp.Compile("(?i)" + p); err != nil {
					res.addErr("%s[%d].patterns[%d] does not compile: %v", name, i, j, err)
				}
			}
		}
	}
	checkRules("classify.sectors", out.Classify.Sectors)
	checkRules("classify.eligibility", out.Classify.Eligibility)

	if strings.TrimSpace(out.Classify.DefaultTag) == "" {
		out.Classify.DefaultTag = "general"
	}

	return out, res
}
