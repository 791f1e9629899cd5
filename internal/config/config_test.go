package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Test split defaults
	if cfg.Split.MaxVerts != 128 {
		t.Errorf("expected max verts 128, got %d", cfg.Split.MaxVerts)
	}
	if !cfg.Split.CopyVertexColors {
		t.Error("expected copy_vertex_colors to be true by default")
	}
	if cfg.Split.NameFormat != "%s_part_%03d" {
		t.Errorf("expected name format %%s_part_%%03d, got %s", cfg.Split.NameFormat)
	}

	// Test output defaults
	if cfg.Output.Dir != "out" {
		t.Errorf("expected output dir 'out', got %s", cfg.Output.Dir)
	}
	if !cfg.Output.Report {
		t.Error("expected report to be enabled by default")
	}

	// Test preview defaults
	if cfg.Preview.Enabled {
		t.Error("expected preview to be disabled by default")
	}
	if cfg.Preview.Size != 512 || cfg.Preview.Plane != "xz" {
		t.Errorf("expected 512px xz preview, got %dpx %s", cfg.Preview.Size, cfg.Preview.Plane)
	}

	// Test logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config does not validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "meshsplit.yaml")

	yamlContent := `
split:
  max_verts: 64
  copy_vertex_colors: false
  name_format: "%s.%02d"

output:
  dir: "build/parts"
  report: false

preview:
  enabled: true
  size: 256
  plane: "xy"

logging:
  level: "debug"
  log_file: "meshsplit.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Split.MaxVerts != 64 {
		t.Errorf("expected max verts 64, got %d", cfg.Split.MaxVerts)
	}
	if cfg.Split.CopyVertexColors {
		t.Error("expected copy_vertex_colors to be false")
	}
	if cfg.Split.NameFormat != "%s.%02d" {
		t.Errorf("expected name format %%s.%%02d, got %s", cfg.Split.NameFormat)
	}
	if cfg.Output.Dir != "build/parts" || cfg.Output.Report {
		t.Errorf("unexpected output config %+v", cfg.Output)
	}
	if !cfg.Preview.Enabled || cfg.Preview.Size != 256 || cfg.Preview.Plane != "xy" {
		t.Errorf("unexpected preview config %+v", cfg.Preview)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "meshsplit.log" {
		t.Errorf("expected log file 'meshsplit.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFilePartial(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "meshsplit.yaml")
	if err := os.WriteFile(configPath, []byte("split:\n  max_verts: 32\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Keys missing from the file keep their defaults.
	if cfg.Split.MaxVerts != 32 {
		t.Errorf("expected max verts 32, got %d", cfg.Split.MaxVerts)
	}
	if !cfg.Split.CopyVertexColors || cfg.Output.Dir != "out" {
		t.Error("defaults lost after partial load")
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
split:
  max_verts: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/meshsplit.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		valid  bool
	}{
		{"defaults", func(*Config) {}, true},
		{"zero budget", func(c *Config) { c.Split.MaxVerts = 0 }, false},
		{"negative budget", func(c *Config) { c.Split.MaxVerts = -4 }, false},
		{"tiny budget", func(c *Config) { c.Split.MaxVerts = 1 }, true},
		{"empty name format", func(c *Config) { c.Split.NameFormat = "" }, false},
		{"empty output dir", func(c *Config) { c.Output.Dir = "" }, false},
		{"zero preview size", func(c *Config) { c.Preview.Size = 0 }, false},
		{"unknown plane", func(c *Config) { c.Preview.Plane = "uv" }, false},
		{"yz plane", func(c *Config) { c.Preview.Plane = "yz" }, true},
		{"unknown level", func(c *Config) { c.Logging.Level = "verbose" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.valid && err != nil {
				t.Errorf("expected valid config, got %v", err)
			}
			if !tt.valid && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))
	t.Setenv("HOME", filepath.Join(tmpDir, "home"))

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "meshsplit.yaml")
	if err := os.WriteFile(configPath, []byte("split:\n  max_verts: 16\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find meshsplit.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "max verts flag",
			setup: func() { *flagMaxVerts = 48 },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Split.MaxVerts != 48 {
					t.Errorf("expected max verts 48, got %d", cfg.Split.MaxVerts)
				}
			},
			teardown: func() { *flagMaxVerts = 0 },
		},
		{
			name:  "out flag",
			setup: func() { *flagOut = "parts" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Output.Dir != "parts" {
					t.Errorf("expected output dir 'parts', got %s", cfg.Output.Dir)
				}
			},
			teardown: func() { *flagOut = "" },
		},
		{
			name: "preview flags",
			setup: func() {
				*flagPreview = true
				*flagPlane = "yz"
			},
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Preview.Enabled {
					t.Error("expected preview to be enabled with preview flag")
				}
				if cfg.Preview.Plane != "yz" {
					t.Errorf("expected plane yz, got %s", cfg.Preview.Plane)
				}
			},
			teardown: func() {
				*flagPreview = false
				*flagPlane = ""
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)

			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "meshsplit.yaml")

	yamlContent := `
split:
  max_verts: 96
output:
  dir: "from-file"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagMaxVerts = 200
	defer func() {
		*flagConfig = ""
		*flagMaxVerts = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Budget from flag, not file
	if cfg.Split.MaxVerts != 200 {
		t.Errorf("expected max verts 200 from flag, got %d", cfg.Split.MaxVerts)
	}
	// Output dir from file since no flag override
	if cfg.Output.Dir != "from-file" {
		t.Errorf("expected output dir from file, got %s", cfg.Output.Dir)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "meshsplit.yaml")
	if err := os.WriteFile(configPath, []byte("preview:\n  plane: \"top\"\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	if _, err := Load(); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "meshsplit.yaml")

	cfg := Default()
	cfg.Split.MaxVerts = 77
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("failed to reload saved config: %v", err)
	}
	if loaded.Split.MaxVerts != 77 {
		t.Errorf("expected max verts 77 after reload, got %d", loaded.Split.MaxVerts)
	}
}

func TestCommandFlags(t *testing.T) {
	*flagPlane = "xy"
	defer func() {
		*flagPlane = ""
		*flagMaxVerts = 0
	}()

	fs := CommandFlags("split")
	if err := fs.Parse([]string{"-max-verts", "256", "terrain.obj"}); err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if got := fs.Args(); len(got) != 1 || got[0] != "terrain.obj" {
		t.Errorf("args = %v, want [terrain.obj]", got)
	}

	cfg := Default()
	applyFlags(cfg)
	if cfg.Split.MaxVerts != 256 {
		t.Errorf("expected max verts 256, got %d", cfg.Split.MaxVerts)
	}
	// Global flags parsed before the command survive.
	if cfg.Preview.Plane != "xy" {
		t.Errorf("expected plane xy from global flag, got %s", cfg.Preview.Plane)
	}
}
