// Package config loads viberender settings from defaults, an optional YAML
// file and VIBERENDER_ environment variables, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, so render.width is
// read from VIBERENDER_RENDER_WIDTH.
const EnvPrefix = "VIBERENDER"

// MaxWidth is the widest layout accepted. It matches the largest image the
// png format can produce.
const MaxWidth = 8192

// Output formats understood by the render command.
const (
	FormatTree     = "tree"
	FormatCommands = "commands"
	FormatJSON     = "json"
	FormatPNG      = "png"
)

// Config is the root configuration.
type Config struct {
	Render RenderConfig `mapstructure:"render" yaml:"render"`
	Logger LoggerConfig `mapstructure:"logger" yaml:"logger"`
}

// RenderConfig controls the pipeline.
type RenderConfig struct {
	Width           float64 `mapstructure:"width" yaml:"width"`
	UserAgentStyles bool    `mapstructure:"user_agent_styles" yaml:"user_agent_styles"`
	EmbeddedStyles  bool    `mapstructure:"embedded_styles" yaml:"embedded_styles"`
	DebugOutlines   bool    `mapstructure:"debug_outlines" yaml:"debug_outlines"`
	Concurrency     int     `mapstructure:"concurrency" yaml:"concurrency"`
	Format          string  `mapstructure:"format" yaml:"format"`
}

// LoggerConfig holds logging settings. LogFile is optional; when set, JSON
// logs are also written there with rotation.
type LoggerConfig struct {
	Level      string `mapstructure:"level" yaml:"level"`
	Format     string `mapstructure:"format" yaml:"format"`
	LogFile    string `mapstructure:"log_file" yaml:"log_file"`
	MaxSize    int    `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge     int    `mapstructure:"max_age" yaml:"max_age"`
	Compress   bool   `mapstructure:"compress" yaml:"compress"`
}

// SetDefaults registers the default for every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("render.width", 800.0)
	v.SetDefault("render.user_agent_styles", true)
	v.SetDefault("render.embedded_styles", true)
	v.SetDefault("render.debug_outlines", false)
	v.SetDefault("render.concurrency", 4)
	v.SetDefault("render.format", FormatTree)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 100)
	v.SetDefault("logger.max_backups", 5)
	v.SetDefault("logger.max_age", 30)
	v.SetDefault("logger.compress", true)
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	v := viper.New()
	SetDefaults(v)
	cfg, err := FromViper(v)
	if err != nil {
		// The defaults are valid by construction.
		panic(err)
	}
	return cfg
}

// New returns a viper instance with defaults and environment binding set
// up. If path is empty, config.yaml is looked up in the working directory.
func New(path string) *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the configuration from path, or from ./config.yaml when path
// is empty.
func Load(path string) (*Config, error) {
	v := New(path)
	if err := Read(v, path); err != nil {
		return nil, err
	}
	return FromViper(v)
}

// Read reads the config file into v. A missing default config.yaml is not
// an error; a missing file named explicitly by path is.
func Read(v *viper.Viper, path string) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("reading config: %w", err)
		}
	}
	return nil
}

// FromViper decodes and validates the settings held by v.
func FromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks that values are in range.
func (c *Config) Validate() error {
	if err := c.Render.Validate(); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	if err := c.Logger.Validate(); err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	return nil
}

// Validate checks the render settings.
func (r *RenderConfig) Validate() error {
	if r.Width < 0 || math.IsNaN(r.Width) {
		return fmt.Errorf("width must not be negative, got %g", r.Width)
	}
	if r.Width > MaxWidth {
		return fmt.Errorf("width must be at most %d, got %g", MaxWidth, r.Width)
	}
	if r.Concurrency < 0 {
		return fmt.Errorf("concurrency must not be negative, got %d", r.Concurrency)
	}
	switch r.Format {
	case FormatTree, FormatCommands, FormatJSON, FormatPNG:
	default:
		return fmt.Errorf("unknown format %q", r.Format)
	}
	return nil
}

// Validate checks the logger settings. The level itself is parsed by the
// logging package, which falls back to info.
func (l *LoggerConfig) Validate() error {
	switch l.Format {
	case "console", "json":
	default:
		return fmt.Errorf("unknown format %q", l.Format)
	}
	if l.MaxSize < 0 || l.MaxBackups < 0 || l.MaxAge < 0 {
		return errors.New("rotation limits must not be negative")
	}
	return nil
}
