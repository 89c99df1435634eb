package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	// Output resolution (vertical shorts)
	DefaultWidth  = 1080
	DefaultHeight = 1920

	DefaultFPS               = 30
	DefaultSlideSeconds      = 5.0
	DefaultTransitionSeconds = 0.5

	DefaultBGMVolume = 0.15
	DefaultBGMDir    = "assets/bgm"

	DefaultOutputDir      = "output"
	DefaultFilenamePrefix = "shorts"

	// Audio bitrates: narration mixes keep speech intelligible at 192k,
	// music-only tracks get by with 128k.
	NarrationAudioBitrate = "192k"
	BGMOnlyAudioBitrate   = "128k"
)

// VideoConfig controls resolution and timing of the composed video.
type VideoConfig struct {
	Width             int     `yaml:"width"`
	Height            int     `yaml:"height"`
	FPS               int     `yaml:"fps"`
	SlideSeconds      float64 `yaml:"slide_duration"`
	TransitionSeconds float64 `yaml:"transition_duration"`
}

// BGMConfig controls background music mixing.
type BGMConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"`
	Dir     string  `yaml:"dir"`
}

// OutputConfig controls where the final video is written.
type OutputConfig struct {
	Directory      string `yaml:"directory"`
	FilenamePrefix string `yaml:"filename_prefix"`
}

// Config is the full tool configuration, loadable from a YAML file.
type Config struct {
	Video  VideoConfig  `yaml:"video"`
	BGM    BGMConfig    `yaml:"bgm"`
	Output OutputConfig `yaml:"output"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Video: VideoConfig{
			Width:             DefaultWidth,
			Height:            DefaultHeight,
			FPS:               DefaultFPS,
			SlideSeconds:      DefaultSlideSeconds,
			TransitionSeconds: DefaultTransitionSeconds,
		},
		BGM: BGMConfig{
			Enabled: false,
			Volume:  DefaultBGMVolume,
			Dir:     DefaultBGMDir,
		},
		Output: OutputConfig{
			Directory:      DefaultOutputDir,
			FilenamePrefix: DefaultFilenamePrefix,
		},
	}
}

// Load reads a YAML config file on top of the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", path)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "failed to parse config file %s", path)
	}
	return cfg, nil
}

// LoadOrDefault loads path when given, otherwise returns the defaults.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// Validate rejects configurations the pipeline cannot honor.
func (c *Config) Validate() error {
	if c.Video.Width <= 0 || c.Video.Height <= 0 {
		return errors.Errorf("invalid resolution %dx%d", c.Video.Width, c.Video.Height)
	}
	if c.Video.Width%2 != 0 || c.Video.Height%2 != 0 {
		return errors.Errorf("resolution %dx%d must have even dimensions", c.Video.Width, c.Video.Height)
	}
	if c.Video.FPS <= 0 {
		return errors.Errorf("fps must be positive, got %d", c.Video.FPS)
	}
	if c.Video.TransitionSeconds < 0 {
		return errors.Errorf("transition duration must not be negative, got %.2f", c.Video.TransitionSeconds)
	}
	// Each slide needs room for a full fade-in and fade-out window.
	if c.Video.SlideSeconds <= 2*c.Video.TransitionSeconds {
		return errors.Errorf("slide duration %.2fs must exceed twice the transition duration %.2fs",
			c.Video.SlideSeconds, c.Video.TransitionSeconds)
	}
	if c.BGM.Volume < 0 || c.BGM.Volume > 1 {
		return errors.Errorf("bgm volume must be within [0.0, 1.0], got %.2f", c.BGM.Volume)
	}
	return nil
}
