package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Site describes one scholarship source the crawler knows how to walk.
type Site struct {
	Name           string `yaml:"name" json:"name"`
	BaseURL        string `yaml:"base_url" json:"base_url"`
	ListingPath    string `yaml:"listing_path" json:"listing_path"`
	DetailPrefix   string `yaml:"detail_prefix" json:"detail_prefix"`
	DetailSegments int    `yaml:"detail_segments" json:"detail_segments"`

	// Render selects the headless-browser fetcher for sites that build
	// their detail pages client-side.
	Render bool `yaml:"render" json:"render"`

	PathDeny  []string `yaml:"path_deny" json:"path_deny"`
	LabelDeny []string `yaml:"label_deny" json:"label_deny"`

	DefaultLocation []string `yaml:"default_location" json:"default_location"`
	DefaultAudience []string `yaml:"default_audience" json:"default_audience"`
}

// TagRule maps a tag to its ordered pattern list. An empty pattern list
// means a bare word-boundary match on the tag string itself.
type TagRule struct {
	Tag      string   `yaml:"tag" json:"tag"`
	Patterns []string `yaml:"patterns" json:"patterns"`
}

type Config struct {
	App struct {
		Port    int    `yaml:"port" json:"port"`
		DataDir string `yaml:"data_dir" json:"data_dir"`
	} `yaml:"app" json:"app"`

	Crawl struct {
		UserAgent            string `yaml:"user_agent" json:"user_agent"`
		DelayMS              int    `yaml:"delay_ms" json:"delay_ms"`
		FetchTimeoutSeconds  int    `yaml:"fetch_timeout_seconds" json:"fetch_timeout_seconds"`
		RenderTimeoutSeconds int    `yaml:"render_timeout_seconds" json:"render_timeout_seconds"`
	} `yaml:"crawl" json:"crawl"`

	Sites []Site `yaml:"sites" json:"sites"`

	Classify struct {
		Sectors     []TagRule `yaml:"sectors" json:"sectors"`
		Eligibility []TagRule `yaml:"eligibility" json:"eligibility"`
		DefaultTag  string    `yaml:"default_tag" json:"default_tag"`
	} `yaml:"classify" json:"classify"`
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}
