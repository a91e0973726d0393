// Package config handles configuration loading from YAML files and environment variables.
// Configuration precedence: CLI flags > environment variables > config file > embedded > defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/Guliveer/autostarter/internal/manufacturer"
)

// Duration is a wrapper around time.Duration that supports YAML unmarshaling
// from human-readable strings like "15s", "30s", "1m".
type Duration struct {
	time.Duration
}

// UnmarshalYAML implements the yaml.Unmarshaler interface for Duration.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		parsed, err := time.ParseDuration(value.Value)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", value.Value, err)
		}
		d.Duration = parsed
		return nil
	default:
		return fmt.Errorf("unsupported duration format: %v", value.Kind)
	}
}

// MarshalYAML implements the yaml.Marshaler interface for Duration.
func (d Duration) MarshalYAML() (interface{}, error) {
	return d.Duration.String(), nil
}

// Watch actions.
const (
	WatchOpen  = "open"
	WatchCheck = "check"
)

// Config holds all autostarter configuration.
type Config struct {
	ADB           ADBConfig            `yaml:"adb"`
	App           AppConfig            `yaml:"app"`
	Logging       LoggingConfig        `yaml:"logging"`
	Watch         WatchConfig          `yaml:"watch"`
	Manufacturers []ManufacturerConfig `yaml:"manufacturers,omitempty"`
}

// ADBConfig holds Android Debug Bridge settings.
type ADBConfig struct {
	// Path to the adb binary. Empty means discover it.
	Path    string   `yaml:"path"`
	Timeout Duration `yaml:"timeout"`
	// Devices restricts commands to these serials. Empty means all online devices.
	Devices []string `yaml:"devices,omitempty"`
}

// AppConfig describes the application asking for the permission.
type AppConfig struct {
	Package string `yaml:"package"`
	NewTask bool   `yaml:"new_task"`
}

// LoggingConfig holds logging settings. When File is set, JSON logs are also
// written there and rotated at MaxSizeMB.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
}

// WatchConfig holds device watcher settings.
type WatchConfig struct {
	Interval    Duration `yaml:"interval"`
	Action      string   `yaml:"action"`
	// BootTimeout bounds the wait for a freshly attached device to finish booting.
	BootTimeout Duration `yaml:"boot_timeout"`
}

// ManufacturerConfig is a user-supplied registry entry. An entry whose name
// matches a built-in manufacturer replaces it.
type ManufacturerConfig struct {
	Name       string                   `yaml:"name"`
	Brands     []string                 `yaml:"brands"`
	Components []manufacturer.Component `yaml:"components"`
	Fallback   string                   `yaml:"fallback,omitempty"`
	Action     string                   `yaml:"action,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		ADB: ADBConfig{
			Timeout: Duration{30 * time.Second},
		},
		Logging: LoggingConfig{
			Level:      "info",
			MaxSizeMB:  1,
			MaxBackups: 2,
		},
		Watch: WatchConfig{
			Interval:    Duration{2 * time.Second},
			Action:      WatchOpen,
			BootTimeout: Duration{2 * time.Minute},
		},
	}
}

// CLIOverrides holds values from command-line flags.
// Zero values are treated as "not set" and skipped.
type CLIOverrides struct {
	ADBPath    string
	Devices    []string
	AppPackage string
	NewTask    bool
	LogLevel   string
}

// Locate searches standard config file paths and returns the first one found.
// Returns empty string if no config file exists.
func Locate() string {
	for _, p := range configSearchPaths() {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// DefaultPath is where a new per-user configuration file is written.
func DefaultPath() string {
	return configSearchPaths()[0]
}

// LoadLayered loads configuration with the full precedence chain:
// CLI flags > env vars > external YAML file > embedded bytes > defaults.
//
// An optional configPath argument controls external-file discovery:
//   - omitted        → auto-discover via Locate()
//   - explicit value → use that path ("" means no external file)
func LoadLayered(cli CLIOverrides, embedded []byte, configPath ...string) (*Config, error) {
	cfg := DefaultConfig()

	if len(embedded) > 0 {
		if err := yaml.Unmarshal(embedded, cfg); err != nil {
			return nil, fmt.Errorf("parsing embedded config: %w", err)
		}
	}

	var filePath string
	if len(configPath) > 0 {
		filePath = configPath[0]
	} else {
		filePath = Locate()
	}
	if filePath != "" {
		data, err := os.ReadFile(filePath)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config file %s: %w", filePath, err)
			}
		case len(configPath) > 0 && !os.IsNotExist(err):
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if cli.ADBPath != "" {
		cfg.ADB.Path = cli.ADBPath
	}
	if len(cli.Devices) > 0 {
		cfg.ADB.Devices = cli.Devices
	}
	if cli.AppPackage != "" {
		cfg.App.Package = cli.AppPackage
	}
	if cli.NewTask {
		cfg.App.NewTask = true
	}
	if cli.LogLevel != "" {
		cfg.Logging.Level = cli.LogLevel
	}

	return cfg, nil
}

// WriteConfig serializes the config to a YAML file at the given path.
// Creates parent directories if needed.
func WriteConfig(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, data, 0o640)
}

// SplitList splits a device list given as "a,b c" into its items.
func SplitList(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == ';'
	})
}

func applyEnvOverrides(cfg *Config) {
	if path := os.Getenv("AS_ADB_PATH"); path != "" {
		cfg.ADB.Path = path
	}
	if devices := SplitList(os.Getenv("AS_DEVICES")); len(devices) > 0 {
		cfg.ADB.Devices = devices
	}
	if pkg := os.Getenv("AS_APP_PACKAGE"); pkg != "" {
		cfg.App.Package = pkg
	}
	if level := os.Getenv("AS_LOG_LEVEL"); level != "" {
		cfg.Logging.Level = level
	}
}

// Registry returns the built-in manufacturer table extended with the
// configured entries.
func (c *Config) Registry() (*manufacturer.Registry, error) {
	reg := manufacturer.Default()
	for i, mc := range c.Manufacturers {
		m, err := mc.Manufacturer()
		if err != nil {
			return nil, fmt.Errorf("manufacturers[%d]: %w", i, err)
		}
		if err := reg.Extend(m); err != nil {
			return nil, fmt.Errorf("manufacturers[%d]: %w", i, err)
		}
	}
	return reg, nil
}

// Manufacturer converts the entry into a registry manufacturer.
func (mc ManufacturerConfig) Manufacturer() (manufacturer.Manufacturer, error) {
	kind, err := manufacturer.ParseFallbackKind(mc.Fallback)
	if err != nil {
		return manufacturer.Manufacturer{}, err
	}
	if kind != manufacturer.FallbackAction && mc.Action != "" {
		return manufacturer.Manufacturer{}, fmt.Errorf("%q: action is only used by the action fallback", mc.Name)
	}
	return manufacturer.Manufacturer{
		Name:       mc.Name,
		Brands:     mc.Brands,
		Components: mc.Components,
		Fallback:   manufacturer.Fallback{Kind: kind, Action: mc.Action},
	}, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.ADB.Timeout.Duration <= 0 {
		return errors.New("adb timeout must be positive")
	}
	if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	if c.Logging.File != "" && c.Logging.MaxSizeMB <= 0 {
		return errors.New("logging max_size_mb must be positive")
	}
	if c.Watch.Interval.Duration < 500*time.Millisecond {
		return fmt.Errorf("watch interval must be at least 500ms (got: %s)", c.Watch.Interval.Duration)
	}
	if c.Watch.BootTimeout.Duration < 0 {
		return errors.New("watch boot_timeout must not be negative")
	}
	switch c.Watch.Action {
	case WatchOpen, WatchCheck:
	default:
		return fmt.Errorf("watch action must be %q or %q (got: %q)", WatchOpen, WatchCheck, c.Watch.Action)
	}
	if _, err := c.Registry(); err != nil {
		return err
	}
	return nil
}
