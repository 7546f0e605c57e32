package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsZeroValue(t *testing.T) {
	d, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if d.Verbosity != 0 || d.AppDataDir != "" || d.DefaultRepoDir != "" {
		t.Errorf("expected zero-value Defaults, got %+v", d)
	}
}

func TestLoadParsesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	contents := "Verbosity: 3\nAppDataDir: /tmp/grist-data\nDefaultRepoDir: /home/user/repo\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	d, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if d.Verbosity != 3 || d.AppDataDir != "/tmp/grist-data" || d.DefaultRepoDir != "/home/user/repo" {
		t.Errorf("Load = %+v, unexpected values", d)
	}
}

func TestResolveAppDataDirPrefersOverride(t *testing.T) {
	d := Defaults{AppDataDir: "/custom/path"}
	dir, err := d.ResolveAppDataDir()
	if err != nil {
		t.Fatalf("ResolveAppDataDir: %v", err)
	}
	if dir != "/custom/path" {
		t.Errorf("ResolveAppDataDir = %q, want /custom/path", dir)
	}
}
