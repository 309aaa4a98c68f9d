package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"aafcanon/internal/config"
)

func TestLoadExplicitFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := "[paths]\noutput_dir = \"" + filepath.Join(dir, "out") + "\"\n\n[logging]\nformat = \"json\"\nlevel = \"debug\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !exists {
		t.Error("exists should be true for an explicit file")
	}
	if resolved != path {
		t.Errorf("resolved = %q", resolved)
	}
	if cfg.Paths.OutputDir != filepath.Join(dir, "out") {
		t.Errorf("output dir = %q", cfg.Paths.OutputDir)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Errorf("logging = %+v", cfg.Logging)
	}
	// Unset keys keep their defaults.
	if cfg.Paths.LogDir == "" || strings.HasPrefix(cfg.Paths.LogDir, "~") {
		t.Errorf("log dir must default and expand, got %q", cfg.Paths.LogDir)
	}
}

func TestLoadMissingExplicitFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.toml")
	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if exists {
		t.Error("exists should be false")
	}
	if resolved != path {
		t.Errorf("resolved = %q", resolved)
	}
	if cfg.Logging.Format != "auto" || cfg.Logging.Level != "info" {
		t.Errorf("defaults = %+v", cfg.Logging)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad format", "[logging]\nformat = \"xml\"\n"},
		{"bad level", "[logging]\nlevel = \"loud\"\n"},
		{"bad toml", "logging = [broken\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tc.content), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, _, _, err := config.Load(path); err == nil {
				t.Error("expected load failure")
			}
		})
	}
}

func TestNormalizeCaseAndWhitespace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[logging]\nformat = \" JSON \"\nlevel = \"WARN\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "warn" {
		t.Errorf("normalized logging = %+v", cfg.Logging)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home dir")
	}
	got, err := config.ExpandPath("~/x/y")
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if got != filepath.Join(home, "x", "y") {
		t.Errorf("expand = %q", got)
	}

	abs, err := config.ExpandPath("rel/path")
	if err != nil {
		t.Fatalf("expand rel: %v", err)
	}
	if !filepath.IsAbs(abs) {
		t.Errorf("relative paths must become absolute, got %q", abs)
	}
}

func TestEnsureDirectoriesAndLogPath(t *testing.T) {
	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.OutputDir = filepath.Join(base, "out")
	cfg.Paths.ReportDir = filepath.Join(base, "reports")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.DatabasePath = filepath.Join(base, "db", "canon.db")

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure: %v", err)
	}
	for _, dir := range []string{cfg.Paths.OutputDir, cfg.Paths.ReportDir, cfg.Paths.LogDir, filepath.Dir(cfg.Paths.DatabasePath)} {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			t.Errorf("directory %q missing: %v", dir, err)
		}
	}

	if got := cfg.LogPath(); got != filepath.Join(cfg.Paths.LogDir, "aafcanon.log") {
		t.Errorf("log path = %q", got)
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("create sample: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"output_dir", "report_dir", "database_path", "[logging]"} {
		if !strings.Contains(string(data), key) {
			t.Errorf("sample missing %q", key)
		}
	}
}
