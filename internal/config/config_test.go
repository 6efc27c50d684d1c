package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultValidates(t *testing.T) {
	_, vr := NormalizeAndValidate(Default())
	if !vr.OK() {
		t.Fatalf("default config has validation errors: %v", vr.Errors)
	}
}

func TestNormalizeAndValidateErrors(t *testing.T) {
	cfg := Default()
	cfg.App.Port = 0
	cfg.Sites[0].Name = ""
	cfg.Sites[1].DetailPrefix = "no-slash"
	cfg.Classify.Sectors = append(cfg.Classify.Sectors, TagRule{Tag: "Broken", Patterns: []string{"(unclosed"}})

	_, vr := NormalizeAndValidate(cfg)
	if vr.OK() {
		t.Fatal("expected errors")
	}
	wantSubstrings := []string{"app.port", "name is required", "detail_prefix", "does not compile"}
	for _, want := range wantSubstrings {
		found := false
		for _, e := range vr.Errors {
			if strings.Contains(e, want) {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("no error mentioning %q in %v", want, vr.Errors)
		}
	}
}

func TestNormalizeTrimsAndDedupes(t *testing.T) {
	cfg := Default()
	cfg.Sites[0].PathDeny = []string{" groups ", "groups", "", "GROUPS", "other"}

	out, vr := NormalizeAndValidate(cfg)
	if !vr.OK() {
		t.Fatalf("unexpected errors: %v", vr.Errors)
	}
	if len(out.Sites[0].PathDeny) != 2 {
		t.Errorf("deny list = %v, want 2 entries", out.Sites[0].PathDeny)
	}
}

func TestLowDelayWarns(t *testing.T) {
	cfg := Default()
	cfg.Crawl.DelayMS = 10
	_, vr := NormalizeAndValidate(cfg)
	if !vr.OK() {
		t.Fatalf("low delay should warn, not error: %v", vr.Errors)
	}
	if len(vr.Warnings) == 0 {
		t.Error("expected a warning for a very low delay")
	}
}

func TestSaveAtomicAndLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")

	cfg := Default()
	cfg.App.Port = 40000
	if err := SaveAtomic(path, cfg); err != nil {
		t.Fatal(err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.App.Port != 40000 {
		t.Errorf("port = %d", got.App.Port)
	}
	if len(got.Classify.Sectors) != len(cfg.Classify.Sectors) {
		t.Errorf("sector rules did not round-trip: %d vs %d", len(got.Classify.Sectors), len(cfg.Classify.Sectors))
	}

	// Second save keeps a .bak of the previous file.
	cfg.App.Port = 40001
	if err := SaveAtomic(path, cfg); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path + ".bak"); err != nil {
		t.Errorf("missing backup: %v", err)
	}
}

func TestSaveAtomicRejectsInvalid(t *testing.T) {
	cfg := Default()
	cfg.Sites = nil
	err := SaveAtomic(filepath.Join(t.TempDir(), "config.yml"), cfg)
	if err == nil {
		t.Fatal("want validation failure")
	}
}

func TestEnsureUserConfigWritesBuiltinDefault(t *testing.T) {
	dir := t.TempDir()
	path, err := EnsureUserConfig(dir, filepath.Join(dir, "no-such-packaged-default.yml"))
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.App.Port != Default().App.Port {
		t.Errorf("port = %d", cfg.App.Port)
	}

	// Second call returns the existing file untouched.
	again, err := EnsureUserConfig(dir, "ignored")
	if err != nil {
		t.Fatal(err)
	}
	if again != path {
		t.Errorf("path changed: %q vs %q", again, path)
	}
}

func TestOverlaySites(t *testing.T) {
	dir := t.TempDir()
	sitesPath := filepath.Join(dir, "sites.yml")
	err := os.WriteFile(sitesPath, []byte(`
sites:
  - name: custom
    base_url: https://example.org
    listing_path: /grants/
    detail_prefix: /grants/
    detail_segments: 2
`), 0o644)
	if err != nil {
		t.Fatal(err)
	}

	cfg := Default()
	if err := OverlaySites(&cfg, sitesPath); err != nil {
		t.Fatal(err)
	}
	if len(cfg.Sites) != 1 || cfg.Sites[0].Name != "custom" {
		t.Errorf("sites = %+v", cfg.Sites)
	}

	// A missing overlay file leaves the config alone.
	cfg2 := Default()
	if err := OverlaySites(&cfg2, filepath.Join(dir, "missing.yml")); err != nil {
		t.Fatal(err)
	}
	if len(cfg2.Sites) != 2 {
		t.Errorf("sites changed: %+v", cfg2.Sites)
	}
}
