package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/woozymasta/texmat"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the configuration file looked up in the working directory.
const DefaultPath = "texmat.yaml"

// Config holds all texmat CLI configuration.
type Config struct {
	// Material library document (.tmat)
	Library string `yaml:"library"`

	// Native length unit for new libraries: ft, m, cm
	Unit string `yaml:"unit"`

	// Default physical placement
	Transform TransformConfig `yaml:"transform"`

	// Folder scanning
	Scan ScanConfig `yaml:"scan"`

	// Assignment validation
	Validation ValidateConfig `yaml:"validate"`

	// Folder watching
	Watch WatchConfig `yaml:"watch"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// TransformConfig is the default repeat size and rotation.
type TransformConfig struct {
	WidthCm     float64 `yaml:"width_cm"`
	HeightCm    float64 `yaml:"height_cm"`
	RotationDeg float64 `yaml:"rotation_deg"`
	DetectSize  bool    `yaml:"detect_size"` // derive size from file names like oak_2000x1000mm
}

// ScanConfig configures folder enumeration.
type ScanConfig struct {
	Extensions    []string `yaml:"extensions"`
	ThumbSuffixes []string `yaml:"thumb_suffixes"`
	ThumbMarker   string   `yaml:"thumb_marker"`
	Workers       int      `yaml:"workers"` // 0 = GOMAXPROCS
}

// ValidateConfig configures assignment validation.
type ValidateConfig struct {
	Root             string   `yaml:"root"`
	ExcludePaths     []string `yaml:"exclude_paths"`
	DisableFileCheck bool     `yaml:"disable_file_check"`
}

// WatchConfig configures folder watching.
type WatchConfig struct {
	Debounce string `yaml:"debounce"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level    string `yaml:"level"`    // debug, info, warn, error
	Encoding string `yaml:"encoding"` // json, console
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Library: "library.tmat",
		Unit:    string(texmat.UnitFeet),

		Transform: TransformConfig{
			WidthCm:    100,
			HeightCm:   100,
			DetectSize: true,
		},

		Scan: ScanConfig{
			Extensions:    append([]string(nil), texmat.DefaultImageExtensions...),
			ThumbSuffixes: append([]string(nil), texmat.DefaultThumbSuffixes...),
			ThumbMarker:   texmat.DefaultThumbMarker,
		},

		Validation: ValidateConfig{
			DisableFileCheck: false,
		},

		Watch: WatchConfig{
			Debounce: "500ms",
		},

		Logging: LoggingConfig{
			Level:    "info",
			Encoding: "console",
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("TEXMAT_LIBRARY"); v != "" {
		c.Library = v
	}
	if v := os.Getenv("TEXMAT_UNIT"); v != "" {
		c.Unit = v
	}
	if v := os.Getenv("TEXMAT_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

// ValidLogLevels lists the accepted logging levels.
var ValidLogLevels = []string{"debug", "info", "warn", "error"}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Library) == "" {
		return fmt.Errorf("library path is empty")
	}
	if _, err := texmat.ParseUnit(c.Unit); err != nil {
		return err
	}
	if c.Transform.WidthCm <= 0 || c.Transform.HeightCm <= 0 {
		return fmt.Errorf("transform size must be positive, got %gx%g cm", c.Transform.WidthCm, c.Transform.HeightCm)
	}
	if c.Scan.Workers < 0 {
		return fmt.Errorf("scan workers must not be negative, got %d", c.Scan.Workers)
	}
	for _, ext := range c.Scan.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("scan extension %q must start with a dot", ext)
		}
	}
	if _, err := time.ParseDuration(c.Watch.Debounce); err != nil {
		return fmt.Errorf("invalid watch debounce %q: %w", c.Watch.Debounce, err)
	}

	valid := false
	for _, l := range ValidLogLevels {
		if strings.EqualFold(c.Logging.Level, l) {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("invalid log level: %s (valid: %v)", c.Logging.Level, ValidLogLevels)
	}

	return nil
}

// LengthUnit returns the configured unit, feet when invalid.
func (c *Config) LengthUnit() texmat.Unit {
	u, err := texmat.ParseUnit(c.Unit)
	if err != nil {
		return texmat.UnitFeet
	}
	return u
}

// GetDebounce returns the watch debounce as a duration.
func (c *Config) GetDebounce() time.Duration {
	d, err := time.ParseDuration(c.Watch.Debounce)
	if err != nil {
		return 500 * time.Millisecond
	}
	return d
}

// DefaultTransform returns the configured transform.
func (c *Config) DefaultTransform() texmat.Transform {
	return texmat.Transform{
		WidthCm:     c.Transform.WidthCm,
		HeightCm:    c.Transform.HeightCm,
		RotationDeg: c.Transform.RotationDeg,
	}
}

// ScanOptions converts the scan section to library options.
func (c *Config) ScanOptions() *texmat.ScanOptions {
	return &texmat.ScanOptions{
		Extensions:    c.Scan.Extensions,
		ThumbSuffixes: c.Scan.ThumbSuffixes,
		ThumbMarker:   c.Scan.ThumbMarker,
		Workers:       c.Scan.Workers,
	}
}

// ValidateOptions converts the validate section to library options.
func (c *Config) ValidateOptions() *texmat.ValidateOptions {
	return &texmat.ValidateOptions{
		Root:             c.Validation.Root,
		Extensions:       c.Scan.Extensions,
		ExcludePaths:     c.Validation.ExcludePaths,
		DisableFileCheck: c.Validation.DisableFileCheck,
	}
}
