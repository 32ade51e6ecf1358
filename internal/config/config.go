package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/yourusername/calgrid/internal/schedule"
	"github.com/yourusername/calgrid/internal/types"
)

const (
	DefaultConfigDir  = ".config/calgrid"
	DefaultConfigFile = "config.yaml"
)

// LoadConfig loads configuration from the specified path or default location
// If path is empty, uses ~/.config/calgrid/config.yaml
// Supports both .yaml and .json extensions
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot determine home directory: %w", err)
		}
		// Try YAML first, then JSON
		yamlPath := filepath.Join(home, DefaultConfigDir, "config.yaml")
		jsonPath := filepath.Join(home, DefaultConfigDir, "config.json")

		if _, err := os.Stat(yamlPath); err == nil {
			path = yamlPath
		} else if _, err := os.Stat(jsonPath); err == nil {
			path = jsonPath
		} else {
			// Missing config falls back to defaults
			cfg := DefaultConfig()
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse JSON config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// LoadConfigFromBytes loads configuration from raw bytes
// format should be "yaml" or "json"
func LoadConfigFromBytes(data []byte, format string) (*Config, error) {
	var cfg Config

	switch format {
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	case "json":
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse JSON config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format: %s", format)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// GetConfigPath returns the default config file path
func GetConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, DefaultConfigDir, DefaultConfigFile)
}

// DefaultConfig returns the built-in settings used when no config file exists
func DefaultConfig() *Config {
	return &Config{
		Settings: Settings{
			DaysCount:         7,
			RowHeight:         48,
			DateLabelHeight:   32,
			TimeScaleWidth:    48,
			CurrentTimeHeight: 2,
			ItemRightPadding:  8,
			SubColumnMargin:   2,
			MinuteSpan:        15,
			Width:             960,
			Height:            640,
		},
	}
}

// applyDefaults fills zero-valued settings from the defaults
func (c *Config) applyDefaults() {
	def := DefaultConfig().Settings
	s := &c.Settings
	if s.DaysCount == 0 {
		s.DaysCount = def.DaysCount
	}
	if s.RowHeight == 0 {
		s.RowHeight = def.RowHeight
	}
	if s.DateLabelHeight == 0 {
		s.DateLabelHeight = def.DateLabelHeight
	}
	if s.TimeScaleWidth == 0 {
		s.TimeScaleWidth = def.TimeScaleWidth
	}
	if s.CurrentTimeHeight == 0 {
		s.CurrentTimeHeight = def.CurrentTimeHeight
	}
	if s.ItemRightPadding == 0 {
		s.ItemRightPadding = def.ItemRightPadding
	}
	if s.SubColumnMargin == 0 {
		s.SubColumnMargin = def.SubColumnMargin
	}
	if s.MinuteSpan == 0 {
		s.MinuteSpan = def.MinuteSpan
	}
	if s.Width == 0 {
		s.Width = def.Width
	}
	if s.Height == 0 {
		s.Height = def.Height
	}
}

// ToGridConfig converts the settings to the layout engine's configuration
func (c *Config) ToGridConfig() types.GridConfig {
	s := c.Settings
	return types.GridConfig{
		DaysCount:         s.DaysCount,
		RowHeight:         s.RowHeight,
		DateLabelHeight:   s.DateLabelHeight,
		TimeScaleWidth:    s.TimeScaleWidth,
		CurrentTimeHeight: s.CurrentTimeHeight,
		ItemRightPadding:  s.ItemRightPadding,
		SubColumnMargin:   s.SubColumnMargin,
		MinuteSpan:        s.MinuteSpan,
		Width:             s.Width,
		Height:            s.Height,
	}
}

// BuildItems converts the seeded item configs to schedule items
func (c *Config) BuildItems() ([]schedule.Item, error) {
	items := make([]schedule.Item, 0, len(c.Items))
	for i, ic := range c.Items {
		start, err := time.Parse(time.RFC3339, ic.Start)
		if err != nil {
			return nil, fmt.Errorf("item %d: invalid start: %w", i, err)
		}
		end, err := time.Parse(time.RFC3339, ic.End)
		if err != nil {
			return nil, fmt.Errorf("item %d: invalid end: %w", i, err)
		}
		var item schedule.Item
		switch {
		case ic.Fill && ic.Key != "":
			item = schedule.NewFillEventWithKey(ic.Key, ic.Title, start, end)
		case ic.Fill:
			item = schedule.NewFillEvent(ic.Title, start, end)
		case ic.Key != "":
			item = schedule.NewEventWithKey(ic.Key, ic.Title, start, end)
		default:
			item = schedule.NewEvent(ic.Title, start, end)
		}
		items = append(items, item)
	}
	return items, nil
}
