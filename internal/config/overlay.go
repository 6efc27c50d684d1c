package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type SitesFile struct {
	Sites []Site `yaml:"sites"`
}

// OverlaySites replaces the configured sites with the contents of a
// standalone sites.yml, so source lists can be tweaked without touching
// the main config. A missing file is fine.
func OverlaySites(cfg *Config, sitesPath string) error {
	b, err := os.ReadFile(sitesPath)
	if err != nil {
		return nil
	}

	var sf SitesFile
	if err := yaml.Unmarshal(b, &sf); err != nil {
		return err
	}

	if len(sf.Sites) > 0 {
		cfg.Sites = sf.Sites
	}
	return nil
}
