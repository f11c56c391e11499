package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/alexanderramin/loadline/internal/domain"
	"gopkg.in/yaml.v3"
)

// Config is the runtime configuration. Values are layered: defaults, then
// the YAML file, then LOADLINE_* environment variables. CLI flags override
// the result.
type Config struct {
	DBPath string `yaml:"db_path"`
	// SelfUserID is the tracker user the forecast belongs to.
	SelfUserID *int `yaml:"self_user_id"`
	// WeeklySchedule seeds an empty store; a saved schedule wins.
	WeeklySchedule domain.WeeklySchedule `yaml:"weekly_schedule"`
	DefaultZoom    domain.Granularity    `yaml:"default_zoom"`
	// ForecastDays is the range length used when no --to is given.
	ForecastDays int  `yaml:"forecast_days"`
	LogUseCases  bool `yaml:"log_use_cases"`

	sources []string
}

// Sources lists where values came from, in the order applied.
func (c *Config) Sources() []string {
	return c.sources
}

// Default returns the built-in configuration. homeDir anchors the database path.
func Default(homeDir string) *Config {
	return &Config{
		DBPath:         filepath.Join(homeDir, ".loadline", "loadline.db"),
		WeeklySchedule: domain.DefaultWeeklySchedule(),
		DefaultZoom:    domain.ZoomDay,
		ForecastDays:   14,
		sources:        []string{"defaults"},
	}
}

// Load builds the configuration from the file named by LOADLINE_CONFIG,
// or ~/.loadline/config.yaml when present, and the environment.
func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("finding home directory: %w", err)
	}
	path := os.Getenv("LOADLINE_CONFIG")
	explicit := path != ""
	if !explicit {
		path = filepath.Join(home, ".loadline", "config.yaml")
	}
	return LoadWithPath(home, path, explicit)
}

// LoadWithPath layers the file at path (skipped when missing unless required)
// and the environment over the defaults.
func LoadWithPath(homeDir, path string, required bool) (*Config, error) {
	cfg := Default(homeDir)
	if path != "" {
		if err := cfg.mergeFile(path, required); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// fileConfig mirrors Config with pointers so absent keys keep earlier values.
type fileConfig struct {
	DBPath         *string            `yaml:"db_path"`
	SelfUserID     *int               `yaml:"self_user_id"`
	WeeklySchedule map[string]float64 `yaml:"weekly_schedule"`
	DefaultZoom    *string            `yaml:"default_zoom"`
	ForecastDays   *int               `yaml:"forecast_days"`
	LogUseCases    *bool              `yaml:"log_use_cases"`
}

func (c *Config) mergeFile(path string, required bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return nil
		}
		return fmt.Errorf("reading config %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	if fc.DBPath != nil {
		c.DBPath = *fc.DBPath
	}
	if fc.SelfUserID != nil {
		c.SelfUserID = fc.SelfUserID
	}
	if fc.WeeklySchedule != nil {
		// Days left out of the file keep their default hours.
		for day, hours := range fc.WeeklySchedule {
			wd, err := domain.ParseWeekday(day)
			if err != nil {
				return fmt.Errorf("config %s: weekly_schedule: %w", path, err)
			}
			c.WeeklySchedule[wd.String()] = hours
		}
	}
	if fc.DefaultZoom != nil {
		c.DefaultZoom = domain.Granularity(*fc.DefaultZoom)
	}
	if fc.ForecastDays != nil {
		c.ForecastDays = *fc.ForecastDays
	}
	if fc.LogUseCases != nil {
		c.LogUseCases = *fc.LogUseCases
	}
	c.sources = append(c.sources, "file:"+path)
	return nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("LOADLINE_DB"); v != "" {
		c.DBPath = v
		c.sources = append(c.sources, "env:LOADLINE_DB")
	}
	if v := os.Getenv("LOADLINE_SELF_USER_ID"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("LOADLINE_SELF_USER_ID: %q is not a number", v)
		}
		c.SelfUserID = &id
		c.sources = append(c.sources, "env:LOADLINE_SELF_USER_ID")
	}
	if v := os.Getenv("LOADLINE_LOG_USE_CASES"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.LogUseCases = b
			c.sources = append(c.sources, "env:LOADLINE_LOG_USE_CASES")
		}
	}
	return nil
}

// Validate reports the first invalid value.
func (c *Config) Validate() error {
	if c.DBPath == "" {
		return fmt.Errorf("db_path must not be empty")
	}
	if err := c.WeeklySchedule.Validate(); err != nil {
		return fmt.Errorf("weekly_schedule: %w", err)
	}
	if !domain.ValidGranularities[c.DefaultZoom] {
		return fmt.Errorf("default_zoom: invalid value %q", c.DefaultZoom)
	}
	if c.ForecastDays < 1 {
		return fmt.Errorf("forecast_days must be at least 1, got %d", c.ForecastDays)
	}
	return nil
}
