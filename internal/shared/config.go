package shared

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Catalog  CatalogConfig  `toml:"catalog"`
	Archive  ArchiveConfig  `toml:"archive"`
	Pipeline PipelineConfig `toml:"pipeline"`
	Log      LogConfig      `toml:"log"`
}

// CatalogConfig configures the yt-dlp backed catalog provider.
type CatalogConfig struct {
	YtdlpPath      string `toml:"ytdlp_path"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// ArchiveConfig configures the Wayback Machine history provider.
type ArchiveConfig struct {
	CDXURL            string  `toml:"cdx_url"`
	WebURL            string  `toml:"web_url"`
	TimeoutSeconds    int     `toml:"timeout_seconds"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
}

// PipelineConfig sets the worker ceilings of the two pipeline stages.
type PipelineConfig struct {
	ProbeWorkers   int `toml:"probe_workers"`
	ResolveWorkers int `toml:"resolve_workers"`
}

// LogConfig contains logger settings.
type LogConfig struct {
	Level string `toml:"level"`
}

// CatalogTimeout returns the per-call yt-dlp timeout.
func (c *Config) CatalogTimeout() time.Duration {
	return time.Duration(c.Catalog.TimeoutSeconds) * time.Second
}

// ArchiveTimeout returns the per-request archive timeout.
func (c *Config) ArchiveTimeout() time.Duration {
	return time.Duration(c.Archive.TimeoutSeconds) * time.Second
}

// LogLevel parses the configured level, defaulting to [log.WarnLevel].
func (c *Config) LogLevel() log.Level {
	if c.Log.Level == "" {
		return log.WarnLevel
	}
	lvl, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.WarnLevel
	}
	return lvl
}

// Validate checks the values that would otherwise stall or break the pipeline.
func (c *Config) Validate() error {
	switch {
	case c.Catalog.YtdlpPath == "":
		return fmt.Errorf("%w: catalog.ytdlp_path is empty", ErrInvalidConfig)
	case c.Catalog.TimeoutSeconds <= 0:
		return fmt.Errorf("%w: catalog.timeout_seconds must be positive", ErrInvalidConfig)
	case c.Archive.CDXURL == "" || c.Archive.WebURL == "":
		return fmt.Errorf("%w: archive urls must be set", ErrInvalidConfig)
	case c.Archive.TimeoutSeconds <= 0:
		return fmt.Errorf("%w: archive.timeout_seconds must be positive", ErrInvalidConfig)
	case c.Archive.RequestsPerSecond < 0:
		return fmt.Errorf("%w: archive.requests_per_second must not be negative", ErrInvalidConfig)
	case c.Pipeline.ProbeWorkers <= 0 || c.Pipeline.ResolveWorkers <= 0:
		return fmt.Errorf("%w: pipeline workers must be positive", ErrInvalidConfig)
	}
	if _, err := log.ParseLevel(c.Log.Level); c.Log.Level != "" && err != nil {
		return fmt.Errorf("%w: log.level %q", ErrInvalidConfig, c.Log.Level)
	}
	return nil
}

// LoadConfig reads a TOML configuration file from the specified path.
//
// Keys missing from the file keep the values of [DefaultConfig].
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
