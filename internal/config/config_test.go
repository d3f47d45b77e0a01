package config

import (
	"os"
	"path/filepath"
	"testing"
)

func setupTestConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("CITELINT_AI_API_KEY", "")
	t.Setenv("CITELINT_AI_BASE_URL", "")
	t.Setenv("CITELINT_AI_MODEL", "")
	ResetCache()
	t.Cleanup(ResetCache)
	return dir
}

func TestPath(t *testing.T) {
	dir := setupTestConfig(t)
	want := filepath.Join(dir, "citelint", "config.yml")
	if got := Path(); got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}
}

func TestLoadMissingFile(t *testing.T) {
	setupTestConfig(t)
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if *cfg != (Config{}) {
		t.Errorf("missing file should load zero config, got %+v", cfg)
	}
}

func TestSaveAndLoad(t *testing.T) {
	setupTestConfig(t)
	in := Config{
		AuthorFormat: "abbrev",
		AIModel:      "gpt-4o-mini",
		ReportsDB:    "/tmp/reports.db",
	}
	if err := in.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if *cfg != in {
		t.Errorf("Load() = %+v, want %+v", cfg, in)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	setupTestConfig(t)
	file := Config{AIModel: "from-file"}
	if err := file.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	t.Setenv("CITELINT_AI_MODEL", "from-env")
	t.Setenv("CITELINT_AI_API_KEY", "sk-test")
	ResetCache()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.AIModel != "from-env" {
		t.Errorf("AIModel = %q, want env override", cfg.AIModel)
	}
	if cfg.AIAPIKey != "sk-test" {
		t.Errorf("AIAPIKey = %q, want sk-test", cfg.AIAPIKey)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := setupTestConfig(t)
	path := filepath.Join(dir, ConfigDir, ConfigFile)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("{invalid: ["), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(); err == nil {
		t.Error("Load() succeeded on invalid YAML, want error")
	}
}

func TestReportsDBPath(t *testing.T) {
	setupTestConfig(t)
	dataDir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dataDir)

	want := filepath.Join(dataDir, ConfigDir, ReportsDBFile)
	if got := ReportsDBPath(); got != want {
		t.Errorf("ReportsDBPath() = %q, want %q", got, want)
	}

	override := Config{ReportsDB: "/elsewhere/r.db"}
	if err := override.Save(); err != nil {
		t.Fatal(err)
	}
	if got := ReportsDBPath(); got != "/elsewhere/r.db" {
		t.Errorf("ReportsDBPath() = %q, want configured path", got)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	tests := []struct {
		in   string
		want string
	}{
		{"~/reports.db", filepath.Join(home, "reports.db")},
		{"/abs/path.db", "/abs/path.db"},
		{"relative.db", "relative.db"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := ExpandPath(tt.in); got != tt.want {
			t.Errorf("ExpandPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
