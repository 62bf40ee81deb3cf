package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"vcfimport/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantData := filepath.Join(tempHome, ".local", "share", "vcfimport")
	if cfg.Paths.DataDir != wantData {
		t.Fatalf("unexpected data dir: got %q want %q", cfg.Paths.DataDir, wantData)
	}
	if cfg.Paths.LogDir != filepath.Join(wantData, "logs") {
		t.Fatalf("unexpected log dir: %q", cfg.Paths.LogDir)
	}
	if cfg.Store.Path != filepath.Join(wantData, "contacts.db") {
		t.Fatalf("unexpected store path: %q", cfg.Store.Path)
	}
	if cfg.Parse.OnAmbiguousName != config.AmbiguousAbort {
		t.Fatalf("unexpected ambiguous-name policy: %q", cfg.Parse.OnAmbiguousName)
	}
	if strings.Join(cfg.Export.Fields, ",") != "display_name,phone,email,note" {
		t.Fatalf("unexpected export fields: %v", cfg.Export.Fields)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, dir := range []string{cfg.Paths.DataDir, cfg.Paths.LogDir} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("expected directory %q to exist: %v", dir, err)
		}
		if !info.IsDir() {
			t.Fatalf("expected %q to be directory", dir)
		}
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "vcfimport.toml")

	type payload struct {
		Paths struct {
			DataDir string `toml:"data_dir"`
		} `toml:"paths"`
		Parse struct {
			OnAmbiguousName string `toml:"on_ambiguous_name"`
		} `toml:"parse"`
		Export struct {
			Delimiter string   `toml:"delimiter"`
			Header    bool     `toml:"header"`
			Fields    []string `toml:"fields"`
		} `toml:"export"`
	}
	custom := payload{}
	custom.Paths.DataDir = filepath.Join(tempDir, "data")
	custom.Parse.OnAmbiguousName = " Skip "
	custom.Export.Delimiter = ";"
	custom.Export.Fields = []string{"Email", " display_name "}
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists to be true")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, configPath)
	}
	if cfg.Parse.OnAmbiguousName != config.AmbiguousSkip {
		t.Fatalf("expected normalized skip policy, got %q", cfg.Parse.OnAmbiguousName)
	}
	if cfg.DelimiterRune() != ';' {
		t.Fatalf("expected ';' delimiter, got %q", cfg.DelimiterRune())
	}
	if cfg.Export.Header {
		t.Fatal("expected header disabled by file")
	}
	if strings.Join(cfg.Export.Fields, ",") != "email,display_name" {
		t.Fatalf("unexpected export fields: %v", cfg.Export.Fields)
	}
	if cfg.Store.Path != filepath.Join(tempDir, "data", "contacts.db") {
		t.Fatalf("expected store under custom data dir, got %q", cfg.Store.Path)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "vcfimport.toml")
	if err := os.WriteFile(configPath, []byte("[parse]\nstrict = true\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(configPath); err == nil {
		t.Fatal("expected unknown key to be rejected")
	}
}

func TestEnvOverrides(t *testing.T) {
	dataDir := filepath.Join(t.TempDir(), "env-data")
	t.Setenv("VCFIMPORT_DATA_DIR", dataDir)
	t.Setenv("VCFIMPORT_LOG_LEVEL", "DEBUG")

	cfg, _, _, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Paths.DataDir != dataDir {
		t.Fatalf("expected data dir from env, got %q", cfg.Paths.DataDir)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("expected log level from env, got %q", cfg.Logging.Level)
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "sample.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(contents), "on_ambiguous_name") {
		t.Fatalf("sample config missing parse policy: %s", contents)
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("sample config does not load: %v", err)
	}
	if !exists {
		t.Fatal("expected sample to be found")
	}
	if !strings.Contains(cfg.Paths.DataDir, "vcfimport") {
		t.Fatalf("expected data dir to contain vcfimport, got %q", cfg.Paths.DataDir)
	}
}

func TestValidateDetectsInvalidValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"policy", func(c *config.Config) { c.Parse.OnAmbiguousName = "guess" }, "parse.on_ambiguous_name"},
		{"delimiter length", func(c *config.Config) { c.Export.Delimiter = ";;" }, "export.delimiter"},
		{"delimiter quote", func(c *config.Config) { c.Export.Delimiter = `"` }, "not allowed"},
		{"duplicate field", func(c *config.Config) { c.Export.Fields = []string{"email", "email"} }, "more than once"},
		{"store path", func(c *config.Config) { c.Store.Path = "" }, "store.path"},
		{"log format", func(c *config.Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"log level", func(c *config.Config) { c.Logging.Level = "trace" }, "logging.level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Store.Path = "/tmp/contacts.db"
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected %q in error, got %v", tt.want, err)
			}
		})
	}
}
