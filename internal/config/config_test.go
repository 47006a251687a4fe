package config

import (
	"os"
	"path/filepath"
	"testing"
)

// withTempConfig points XDG_CONFIG_HOME at a temp dir and clears the
// config cache before and after.
func withTempConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	ResetCache()
	t.Cleanup(ResetCache)
	return dir
}

func TestPathRespectsXDGConfigHome(t *testing.T) {
	dir := withTempConfig(t)

	want := filepath.Join(dir, ConfigDir, ConfigFile)
	if got := Path(); got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}
}

func TestLoadMissingFileIsEmpty(t *testing.T) {
	withTempConfig(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.DBPath != "" || cfg.UserAgent != "" || cfg.MinIntervalSeconds != 0 {
		t.Errorf("Load() = %+v, want zero config for missing file", cfg)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	withTempConfig(t)

	in := &Config{
		DBPath:             "/tmp/papers.db",
		UserAgent:          "test-agent/1.0",
		MinIntervalSeconds: 1.5,
	}
	if err := in.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	out, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if out.DBPath != in.DBPath {
		t.Errorf("DBPath = %q, want %q", out.DBPath, in.DBPath)
	}
	if out.UserAgent != in.UserAgent {
		t.Errorf("UserAgent = %q, want %q", out.UserAgent, in.UserAgent)
	}
	if out.MinIntervalSeconds != in.MinIntervalSeconds {
		t.Errorf("MinIntervalSeconds = %v, want %v", out.MinIntervalSeconds, in.MinIntervalSeconds)
	}
}

func TestLoadIsCached(t *testing.T) {
	withTempConfig(t)

	cfg := &Config{UserAgent: "cached/1.0"}
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	first, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	// Remove the file; a cached load must still see the old values.
	if err := os.Remove(Path()); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}

	second, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if second != first {
		t.Error("Load() did not return the cached config")
	}

	ResetCache()
	third, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if third.UserAgent != "" {
		t.Errorf("UserAgent = %q after ResetCache with no file, want empty", third.UserAgent)
	}
}

func TestDBPathEnvOverride(t *testing.T) {
	withTempConfig(t)
	t.Setenv(EnvDBPath, "/data/override.db")

	if got := DBPath(); got != "/data/override.db" {
		t.Errorf("DBPath() = %q, want env override", got)
	}
}

func TestDBPathFromConfig(t *testing.T) {
	withTempConfig(t)
	t.Setenv(EnvDBPath, "")

	cfg := &Config{DBPath: "/data/configured.db"}
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if got := DBPath(); got != "/data/configured.db" {
		t.Errorf("DBPath() = %q, want configured path", got)
	}
}

func TestDBPathDefaultUsesXDGDataHome(t *testing.T) {
	withTempConfig(t)
	t.Setenv(EnvDBPath, "")
	dataDir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dataDir)

	want := filepath.Join(dataDir, ConfigDir, DefaultDBFile)
	if got := DBPath(); got != want {
		t.Errorf("DBPath() = %q, want %q", got, want)
	}
}

func TestExpandTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	tests := []struct {
		in   string
		want string
	}{
		{"~/papers.db", filepath.Join(home, "papers.db")},
		{"/abs/papers.db", "/abs/papers.db"},
		{"relative.db", "relative.db"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := ExpandTilde(tt.in); got != tt.want {
			t.Errorf("ExpandTilde(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
