package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"expandlist/internal/dataset"
)

// CurrentVersion is the config file format version
const CurrentVersion = 1

// Config represents the application configuration
type Config struct {
	Version int             `toml:"version"`
	Dataset DatasetSettings `toml:"dataset"`
	UI      UISettings      `toml:"ui"`
}

// DatasetSettings controls the sample data the list is built from
type DatasetSettings struct {
	Items             int   `toml:"items"`
	InitiallyExpanded []int `toml:"initially_expanded"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	ToastMillis    int     `toml:"toast_ms"`
	ShowChildCount bool    `toml:"show_child_count"`
	LandscapeRatio float64 `toml:"landscape_ratio"`
}

// DatasetOptions converts the dataset section into generator options
func (c *Config) DatasetOptions() dataset.Options {
	return dataset.Options{
		Items:             c.Dataset.Items,
		InitiallyExpanded: append([]int(nil), c.Dataset.InitiallyExpanded...),
	}
}

// Validate checks value ranges
func (c *Config) Validate() error {
	if c.Version != CurrentVersion {
		return fmt.Errorf("unsupported config version %d", c.Version)
	}
	if c.Dataset.Items < 0 {
		return fmt.Errorf("dataset.items must not be negative, got %d", c.Dataset.Items)
	}
	if c.UI.ToastMillis <= 0 {
		return fmt.Errorf("ui.toast_ms must be positive, got %d", c.UI.ToastMillis)
	}
	if c.UI.LandscapeRatio <= 0 {
		return fmt.Errorf("ui.landscape_ratio must be positive, got %g", c.UI.LandscapeRatio)
	}
	return nil
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	filePath string
}

// DefaultPath returns the config file location under the user config directory
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "expandlist", "config.toml")
}

// NewConfigService creates a config service for the default path
func NewConfigService() ConfigService {
	return &configService{filePath: DefaultPath()}
}

// NewConfigServiceForPath creates a config service bound to path
func NewConfigServiceForPath(path string) ConfigService {
	if path == "" {
		path = DefaultPath()
	}
	return &configService{filePath: path}
}

func (cs *configService) Path() string {
	return cs.filePath
}

// Load reads the bound config file. A missing file is created with defaults.
func (cs *configService) Load() (*Config, error) {
	cfg, err := cs.LoadFromPath(cs.filePath)
	if errors.Is(err, os.ErrNotExist) {
		cfg = DefaultConfig()
		if err := cs.Save(cfg); err != nil {
			slog.Warn("config: could not write defaults", "path", cs.filePath, "error", err)
		} else {
			slog.Info("config: created default config", "path", cs.filePath)
		}
		return cfg, nil
	}
	return cfg, err
}

// Save writes config to the bound path
func (cs *configService) Save(config *Config) error {
	return cs.SaveToPath(config, cs.filePath)
}

// LoadFromPath loads configuration from a specific path. Keys absent from the
// file keep their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config file not found: %s: %w", path, err)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	opts := dataset.DefaultOptions()
	return &Config{
		Version: CurrentVersion,
		Dataset: DatasetSettings{
			Items:             opts.Items,
			InitiallyExpanded: opts.InitiallyExpanded,
		},
		UI: UISettings{
			ToastMillis:    2000,
			ShowChildCount: true,
			LandscapeRatio: 2.0,
		},
	}
}
