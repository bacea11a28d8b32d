// Package config loads the ppmtrans configuration.
//
// Configuration sources (in order of precedence):
//  1. CLI flags (highest priority)
//  2. Environment variables (PPMTRANS_*, with "." replaced by "_", for
//     example PPMTRANS_LAYOUT_ORDER=block-major)
//  3. Configuration file (YAML)
//  4. Default values (lowest priority)
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config is the complete ppmtrans configuration.
type Config struct {
	Transform TransformConfig `mapstructure:"transform" yaml:"transform"`
	Layout    LayoutConfig    `mapstructure:"layout" yaml:"layout"`
	Output    OutputConfig    `mapstructure:"output" yaml:"output"`
	Logging   LoggingConfig   `mapstructure:"logging" yaml:"logging"`
}

// TransformConfig selects the geometric operation. Flip and Transpose take
// precedence over Rotate, and at most one of them may be set.
type TransformConfig struct {
	Rotate    int    `mapstructure:"rotate" validate:"oneof=0 90 180 270" yaml:"rotate"`
	Flip      string `mapstructure:"flip" validate:"omitempty,oneof=horizontal vertical" yaml:"flip"`
	Transpose bool   `mapstructure:"transpose" yaml:"transpose"`
}

// LayoutConfig selects the array layout and traversal order.
type LayoutConfig struct {
	Order string `mapstructure:"order" validate:"oneof=row-major col-major block-major" yaml:"order"`

	// BlockSize fixes the block edge for block-major order. Zero derives it
	// from BlockBytes.
	BlockSize int `mapstructure:"block_size" validate:"gte=0" yaml:"block_size"`

	// BlockBytes is the per-block memory budget. Zero means 64KiB.
	BlockBytes int `mapstructure:"block_bytes" validate:"gte=0" yaml:"block_bytes"`

	// Workers above 1 traverse blocks in parallel. Zero means one per CPU.
	Workers int `mapstructure:"workers" validate:"gte=0" yaml:"workers"`
}

// OutputConfig controls what is written and where.
type OutputConfig struct {
	Format   string `mapstructure:"format" validate:"oneof=ppm png bmp jpeg" yaml:"format"`
	Plain    bool   `mapstructure:"plain" yaml:"plain"`
	Quality  int    `mapstructure:"quality" validate:"gte=0,lte=100" yaml:"quality"`
	TimeFile string `mapstructure:"time_file" yaml:"time_file"`
	Stats    bool   `mapstructure:"stats" yaml:"stats"`
}

// LoggingConfig mirrors logger.Config.
type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=DEBUG INFO WARN ERROR" yaml:"level"`
	Format string `mapstructure:"format" validate:"oneof=text json" yaml:"format"`
	Output string `mapstructure:"output" validate:"required" yaml:"output"`
}

// Default returns the built-in configuration: no rotation, plain row-major
// layout, binary PPM output and warnings logged to stderr.
func Default() *Config {
	return &Config{
		Transform: TransformConfig{Rotate: 0},
		Layout:    LayoutConfig{Order: "row-major", Workers: 1},
		Output:    OutputConfig{Format: "ppm"},
		Logging:   LoggingConfig{Level: "WARN", Format: "text", Output: "stderr"},
	}
}

// flagKeys maps CLI flag names to configuration keys.
var flagKeys = map[string]string{
	"rotate":      "transform.rotate",
	"flip":        "transform.flip",
	"transpose":   "transform.transpose",
	"order":       "layout.order",
	"block-size":  "layout.block_size",
	"block-bytes": "layout.block_bytes",
	"workers":     "layout.workers",
	"format":      "output.format",
	"plain":       "output.plain",
	"quality":     "output.quality",
	"time":        "output.time_file",
	"stats":       "output.stats",
	"log-level":   "logging.level",
	"log-format":  "logging.format",
	"log-output":  "logging.output",
}

// Load builds the configuration from defaults, the YAML file at path (if
// non-empty), PPMTRANS_* environment variables and the flags in fs that
// were set explicitly. fs may be nil.
func Load(path string, fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix("PPMTRANS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if errors.As(err, &notFound) || os.IsNotExist(err) {
				return nil, fmt.Errorf("configuration file not found: %s", path)
			}
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if fs != nil {
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag --%s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.normalize()

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

// setDefaults registers every key so that AutomaticEnv and Unmarshal see
// keys that appear in neither the file nor the flags.
func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("transform.rotate", d.Transform.Rotate)
	v.SetDefault("transform.flip", d.Transform.Flip)
	v.SetDefault("transform.transpose", d.Transform.Transpose)
	v.SetDefault("layout.order", d.Layout.Order)
	v.SetDefault("layout.block_size", d.Layout.BlockSize)
	v.SetDefault("layout.block_bytes", d.Layout.BlockBytes)
	v.SetDefault("layout.workers", d.Layout.Workers)
	v.SetDefault("output.format", d.Output.Format)
	v.SetDefault("output.plain", d.Output.Plain)
	v.SetDefault("output.quality", d.Output.Quality)
	v.SetDefault("output.time_file", d.Output.TimeFile)
	v.SetDefault("output.stats", d.Output.Stats)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.output", d.Logging.Output)
}

func (c *Config) normalize() {
	c.Transform.Flip = strings.ToLower(strings.TrimSpace(c.Transform.Flip))
	c.Layout.Order = strings.ToLower(strings.TrimSpace(c.Layout.Order))
	switch c.Layout.Order {
	case "row", "rowmajor", "row_major":
		c.Layout.Order = "row-major"
	case "col", "column", "colmajor", "col_major", "column-major":
		c.Layout.Order = "col-major"
	case "block", "blockmajor", "block_major", "blocked":
		c.Layout.Order = "block-major"
	}
	c.Output.Format = strings.ToLower(strings.TrimSpace(c.Output.Format))
	switch c.Output.Format {
	case "", "pnm":
		c.Output.Format = "ppm"
	case "jpg":
		c.Output.Format = "jpeg"
	}
	c.Logging.Level = strings.ToUpper(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "WARNING" {
		c.Logging.Level = "WARN"
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field constraints and cross-field rules.
func Validate(c *Config) error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	if c.Transform.Flip != "" && c.Transform.Transpose {
		return errors.New("flip and transpose are mutually exclusive")
	}
	if (c.Transform.Flip != "" || c.Transform.Transpose) && c.Transform.Rotate != 0 {
		return errors.New("rotate cannot be combined with flip or transpose")
	}
	if c.Layout.BlockSize > 0 && c.Layout.BlockBytes > 0 {
		return errors.New("block_size and block_bytes are mutually exclusive")
	}
	return nil
}

// Marshal renders c as YAML.
func Marshal(c *Config) ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}
