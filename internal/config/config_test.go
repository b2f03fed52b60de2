package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := Default()
	if cfg.Frame.Width != 800 || cfg.Frame.Height != 600 {
		t.Errorf("frame = %+v", cfg.Frame)
	}
	if cfg.Render.Theme != "light" {
		t.Errorf("theme = %q", cfg.Render.Theme)
	}
	if cfg.Server.Addr == "" {
		t.Error("server addr missing")
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[frame]
width = 1200

[forces]
charge = -60.0
collide = true

[render]
theme = "dark"

[cache]
redis_url = "redis://localhost:6379/1"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Frame.Width != 1200 {
		t.Errorf("width = %v", cfg.Frame.Width)
	}
	// Unset fields keep their defaults.
	if cfg.Frame.Height != 600 {
		t.Errorf("height = %v", cfg.Frame.Height)
	}
	if cfg.Forces.Charge != -60 || !cfg.Forces.Collide {
		t.Errorf("forces = %+v", cfg.Forces)
	}
	if cfg.Render.Theme != "dark" {
		t.Errorf("theme = %q", cfg.Render.Theme)
	}
	if cfg.Cache.RedisURL != "redis://localhost:6379/1" {
		t.Errorf("redis url = %q", cfg.Cache.RedisURL)
	}
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("frame = ["), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for malformed file")
	}
}

func TestLoadDefaultMissingFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg, err := LoadDefault()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Frame.Width != Default().Frame.Width {
		t.Errorf("missing file should yield defaults, got %+v", cfg.Frame)
	}
}

func TestPipelineOptions(t *testing.T) {
	cfg := Default()
	cfg.Forces.Charge = -90
	opts := cfg.PipelineOptions()
	if opts.Charge != -90 || opts.Width != 800 || opts.Theme != "light" {
		t.Errorf("options = %+v", opts)
	}
}
