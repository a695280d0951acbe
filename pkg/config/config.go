// Package config loads viewer configuration from an optional YAML file with
// environment variable overrides.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config is the complete viewer configuration.
type Config struct {
	Dataset  DatasetConfig  `mapstructure:"dataset"`
	Window   WindowConfig   `mapstructure:"window"`
	Globe    GlobeConfig    `mapstructure:"globe"`
	Playback PlaybackConfig `mapstructure:"playback"`
	Cache    CacheConfig    `mapstructure:"cache"`
}

// DatasetConfig points at the anomaly dataset.
type DatasetConfig struct {
	URL     string        `mapstructure:"url"`
	File    string        `mapstructure:"file"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// WindowConfig sets the internal rendering size.
type WindowConfig struct {
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
	TPS    int `mapstructure:"tps"`
}

// GlobeConfig controls globe rendering.
type GlobeConfig struct {
	WorldGeoJSON string `mapstructure:"world_geojson"`
	PoolCap      int    `mapstructure:"pool_cap"`
}

// PlaybackConfig controls the auto-play sweep.
type PlaybackConfig struct {
	Duration time.Duration `mapstructure:"duration"`
}

// CacheConfig controls on-disk caching of the dataset and derived stats.
type CacheConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Dir     string `mapstructure:"dir"`
}

// Load reads configuration from the given file (optional) and environment
// variables prefixed with GLOBE_.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("GLOBE")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("dataset.url", "")
	v.SetDefault("dataset.file", "data/temperature-anomalies.json")
	v.SetDefault("dataset.timeout", 30*time.Second)

	v.SetDefault("window.width", 1280)
	v.SetDefault("window.height", 720)
	v.SetDefault("window.tps", 30)

	v.SetDefault("globe.world_geojson", "data/world.geo.json")
	v.SetDefault("globe.pool_cap", 100)

	v.SetDefault("playback.duration", 8*time.Second)

	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.dir", "data/cache")
}

// Validate rejects configurations the engine cannot run with.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Window.TPS <= 0 {
		return fmt.Errorf("window.tps must be positive, got %d", c.Window.TPS)
	}
	if c.Globe.PoolCap <= 0 {
		return fmt.Errorf("globe.pool_cap must be positive, got %d", c.Globe.PoolCap)
	}
	if c.Playback.Duration <= 0 {
		return fmt.Errorf("playback.duration must be positive, got %s", c.Playback.Duration)
	}
	if c.Dataset.URL == "" && c.Dataset.File == "" {
		return fmt.Errorf("either dataset.url or dataset.file must be set")
	}
	return nil
}
