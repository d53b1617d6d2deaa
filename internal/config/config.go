// Package config loads CityBuddy settings from an optional YAML file and the environment
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/ngmaloney/citybuddy/internal/database"
	"gopkg.in/yaml.v3"
)

// Config holds all CityBuddy configuration
type Config struct {
	City      CityConfig      `yaml:"city"`
	Maps      MapsConfig      `yaml:"maps"`
	Assistant AssistantConfig `yaml:"assistant"`
	Storage   StorageConfig   `yaml:"storage"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// CityConfig describes the city the guide covers
type CityConfig struct {
	Region            string  `yaml:"region"`
	DefaultPostalCode string  `yaml:"default_postal_code"`
	DefaultLocation   string  `yaml:"default_location"`
	DefaultLatitude   float64 `yaml:"default_latitude"`
	DefaultLongitude  float64 `yaml:"default_longitude"`
}

// MapsConfig configures the Google Geocoding and Places APIs
type MapsConfig struct {
	APIKey       string        `yaml:"api_key" env:"GOOGLE_MAPS_API_KEY"`
	BaseURL      string        `yaml:"base_url"`
	RadiusMeters int           `yaml:"radius_meters"`
	Timeout      time.Duration `yaml:"timeout"`
}

// AssistantConfig configures the Gemini text model
type AssistantConfig struct {
	APIKey  string        `yaml:"api_key" env:"GEMINI_API_KEY"`
	Model   string        `yaml:"model" env:"CITYBUDDY_MODEL"`
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

// StorageConfig locates the local database
type StorageConfig struct {
	DBPath string `yaml:"db_path" env:"CITYBUDDY_DB"`
}

// LoggingConfig configures the log file
type LoggingConfig struct {
	Level string `yaml:"level" env:"CITYBUDDY_LOG_LEVEL"`
	File  string `yaml:"file" env:"CITYBUDDY_LOG_FILE"`
}

// DefaultConfig returns downtown Toronto defaults with no API keys
func DefaultConfig() *Config {
	return &Config{
		City: CityConfig{
			Region:            "Toronto, ON, Canada",
			DefaultPostalCode: "M5H 2N2",
			DefaultLocation:   "Downtown Toronto, ON",
			DefaultLatitude:   43.6532,
			DefaultLongitude:  -79.3832,
		},
		Maps: MapsConfig{
			RadiusMeters: 2000,
			Timeout:      10 * time.Second,
		},
		Assistant: AssistantConfig{
			Model:   "gemini-2.0-flash",
			Timeout: 30 * time.Second,
		},
		Storage: StorageConfig{
			DBPath: database.DBPath(),
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  filepath.Join("data", "citybuddy.log"),
		},
	}
}

// Load reads path (if it exists) over the defaults, then applies environment overrides.
// An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, fmt.Errorf("reading config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config: %w", err)
			}
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

// applyDefaults fills zero values a partial YAML file may have left
func (c *Config) applyDefaults() {
	d := DefaultConfig()

	if c.City.Region == "" {
		c.City.Region = d.City.Region
	}
	if strings.TrimSpace(c.City.DefaultPostalCode) == "" {
		c.City.DefaultPostalCode = d.City.DefaultPostalCode
	}
	if c.City.DefaultLocation == "" {
		c.City.DefaultLocation = d.City.DefaultLocation
	}
	if c.City.DefaultLatitude == 0 && c.City.DefaultLongitude == 0 {
		c.City.DefaultLatitude = d.City.DefaultLatitude
		c.City.DefaultLongitude = d.City.DefaultLongitude
	}
	if c.Maps.RadiusMeters <= 0 {
		c.Maps.RadiusMeters = d.Maps.RadiusMeters
	}
	if c.Maps.Timeout <= 0 {
		c.Maps.Timeout = d.Maps.Timeout
	}
	if c.Assistant.Model == "" {
		c.Assistant.Model = d.Assistant.Model
	}
	if c.Assistant.Timeout <= 0 {
		c.Assistant.Timeout = d.Assistant.Timeout
	}
	if c.Storage.DBPath == "" {
		c.Storage.DBPath = d.Storage.DBPath
	}
	if c.Logging.Level == "" {
		c.Logging.Level = d.Logging.Level
	}
	if c.Logging.File == "" {
		c.Logging.File = d.Logging.File
	}
}

// MapsEnabled reports whether a Google Maps key is configured
func (c *Config) MapsEnabled() bool {
	return strings.TrimSpace(c.Maps.APIKey) != ""
}

// AssistantEnabled reports whether a Gemini key is configured
func (c *Config) AssistantEnabled() bool {
	return strings.TrimSpace(c.Assistant.APIKey) != ""
}

// Save writes the configuration as YAML
func (c *Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
