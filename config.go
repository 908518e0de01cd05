package helio

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all runtime settings for a helio application.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Scene   SceneConfig   `yaml:"scene"`
	Logging LoggingConfig `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// SceneConfig holds the procedural scene parameters.
type SceneConfig struct {
	Seed              int64   `yaml:"seed"` // 0 derives the seed from the clock
	StarCount         int     `yaml:"star_count"`
	ShootingStarCount int     `yaml:"shooting_star_count"`
	BodyRadius        float32 `yaml:"body_radius"`
	BodySpinRate      float32 `yaml:"body_spin_rate"`
	StarFieldSpinRate float32 `yaml:"star_field_spin_rate"`
	TexturePath       string  `yaml:"texture_path"`
	CameraDistance    float32 `yaml:"camera_distance"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Debug bool `yaml:"debug"`
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Width:  1280,
			Height: 720,
			Title:  "Helio",
		},
		Scene: SceneConfig{
			Seed:              0,
			StarCount:         3000,
			ShootingStarCount: DefaultShootingStarCount,
			BodyRadius:        10,
			BodySpinRate:      0.001,
			StarFieldSpinRate: 0.0002,
			TexturePath:       "",
			CameraDistance:    30,
		},
		Logging: LoggingConfig{
			Debug: false,
		},
	}
}

// LoadConfig loads configuration with priority: defaults < file. A missing
// file is not an error when path is empty; an explicit path must exist.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		if _, err := os.Stat("./helio.yaml"); err != nil {
			return cfg, nil
		}
		path = "./helio.yaml"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading config from %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}
