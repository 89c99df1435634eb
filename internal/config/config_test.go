package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default config should validate: %v", err)
	}
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `video:
  fps: 24
  slide_duration: 7.5
bgm:
  enabled: true
`
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Video.FPS != 24 {
		t.Errorf("Expected overridden fps 24, got %d", cfg.Video.FPS)
	}
	if cfg.Video.SlideSeconds != 7.5 {
		t.Errorf("Expected overridden slide duration 7.5, got %f", cfg.Video.SlideSeconds)
	}
	if !cfg.BGM.Enabled {
		t.Error("Expected bgm to be enabled")
	}

	// Untouched keys keep their defaults.
	if cfg.Video.Width != DefaultWidth || cfg.Video.Height != DefaultHeight {
		t.Errorf("Resolution defaults lost: %dx%d", cfg.Video.Width, cfg.Video.Height)
	}
	if cfg.BGM.Volume != DefaultBGMVolume {
		t.Errorf("Volume default lost: %f", cfg.BGM.Volume)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("Expected error for a missing config file")
	}
}

func TestLoadOrDefaultEmptyPath(t *testing.T) {
	cfg, err := LoadOrDefault("")
	if err != nil {
		t.Fatalf("LoadOrDefault failed: %v", err)
	}
	if cfg.Video.FPS != DefaultFPS {
		t.Errorf("Expected default fps, got %d", cfg.Video.FPS)
	}
}

func TestValidateRejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"odd width", func(c *Config) { c.Video.Width = 1081 }},
		{"zero height", func(c *Config) { c.Video.Height = 0 }},
		{"zero fps", func(c *Config) { c.Video.FPS = 0 }},
		{"negative transition", func(c *Config) { c.Video.TransitionSeconds = -0.1 }},
		{"duration equals twice the transition", func(c *Config) {
			c.Video.SlideSeconds = 1.0
			c.Video.TransitionSeconds = 0.5
		}},
		{"volume above one", func(c *Config) { c.BGM.Volume = 1.5 }},
		{"negative volume", func(c *Config) { c.BGM.Volume = -0.1 }},
	}

	for _, c := range cases {
		cfg := Default()
		c.mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", c.name)
		}
	}
}
