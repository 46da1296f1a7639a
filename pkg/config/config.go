// Package config loads ecolayout settings from a TOML file.
//
// A config file supplies defaults for the CLI and the server. Command-line
// flags that were set explicitly always take precedence over file values.
//
//	[layout]
//	mode = "organic"
//	min_correlation = 0.3
//
//	[style]
//	color_mode = "taxonomy"
//	palette = ["#1f77b4", "#ff7f0e"]
//
//	[output]
//	formats = ["svg", "png"]
//
//	[server]
//	addr = ":8080"
//
//	[log]
//	level = "warn"
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/ecolayout/pkg/errors"
	"github.com/matzehuels/ecolayout/pkg/pipeline"
)

// FileName is the config file looked up in the user config directory.
const FileName = "config.toml"

// DefaultAddr is the default server listen address.
const DefaultAddr = ":8080"

// Config mirrors the TOML file layout.
type Config struct {
	Layout LayoutConfig `toml:"layout"`
	Style  StyleConfig  `toml:"style"`
	Output OutputConfig `toml:"output"`
	Server ServerConfig `toml:"server"`
	Cache  CacheConfig  `toml:"cache"`
	Log    LogConfig    `toml:"log"`
}

type LayoutConfig struct {
	Mode           string  `toml:"mode"`
	MinCorrelation float64 `toml:"min_correlation"`
	DropIsolated   bool    `toml:"drop_isolated"`
	DetectModules  bool    `toml:"detect_modules"`
}

type StyleConfig struct {
	ColorMode string   `toml:"color_mode"`
	MinSize   float64  `toml:"min_size"`
	MaxSize   float64  `toml:"max_size"`
	Overlay   bool     `toml:"overlay"`
	Palette   []string `toml:"palette"`
}

type OutputConfig struct {
	Width   float64  `toml:"width"`
	Height  float64  `toml:"height"`
	Formats []string `toml:"formats"`
	Labels  bool     `toml:"labels"`
}

type ServerConfig struct {
	Addr      string `toml:"addr"`
	RedisAddr string `toml:"redis_addr"`
}

type CacheConfig struct {
	Dir      string `toml:"dir"`
	Disabled bool   `toml:"disabled"`
}

// LogConfig sets the CLI log level: debug, info, warn, error or fatal.
type LogConfig struct {
	Level string `toml:"level"`
}

// LogLevel returns the configured level, or false when none is set.
// Validate rejects unparseable levels, so the error is dropped here.
func (c Config) LogLevel() (log.Level, bool) {
	if c.Log.Level == "" {
		return 0, false
	}
	lvl, err := log.ParseLevel(c.Log.Level)
	return lvl, err == nil
}

// Default returns a config with the server address set and every other
// field left for the pipeline defaults.
func Default() Config {
	return Config{Server: ServerConfig{Addr: DefaultAddr}}
}

// DefaultPath returns the config path under the user config directory.
func DefaultPath(appName string) (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appName, FileName), nil
}

// Load reads and validates a config file. An empty path returns Default.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, errors.New(errors.ErrCodeFileNotFound, "config file not found: %s", path)
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "read config")
	}
	return Parse(data)
}

// LoadOptional is Load, but a missing file yields Default without error.
func LoadOptional(path string) (Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, errors.ErrCodeFileNotFound) {
		return Default(), nil
	}
	return cfg, err
}

// Parse decodes TOML config data. Unknown keys are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, errors.New(errors.ErrCodeInvalidInput, "unknown config key: %s", undecoded[0].String())
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = DefaultAddr
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the pipeline-related values. An unknown layout mode is
// not an error; the pipeline falls back to force.
func (c Config) Validate() error {
	if c.Log.Level != "" {
		if _, err := log.ParseLevel(c.Log.Level); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "log.level")
		}
	}
	opts := c.Options()
	return opts.ValidateForRender()
}

// Options converts the file values to pipeline options.
func (c Config) Options() pipeline.Options {
	return pipeline.Options{
		Mode:           c.Layout.Mode,
		MinCorrelation: c.Layout.MinCorrelation,
		DropIsolated:   c.Layout.DropIsolated,
		DetectModules:  c.Layout.DetectModules,
		ColorMode:      c.Style.ColorMode,
		MinSize:        c.Style.MinSize,
		MaxSize:        c.Style.MaxSize,
		Overlay:        c.Style.Overlay,
		Palette:        append([]string(nil), c.Style.Palette...),
		Width:          c.Output.Width,
		Height:         c.Output.Height,
		Formats:        append([]string(nil), c.Output.Formats...),
		Labels:         c.Output.Labels,
	}
}

// Apply fills fields of opts that the caller did not set explicitly.
// isSet reports whether a field was set on the command line, by its TOML
// key name (for example "mode" or "min_correlation"). A nil isSet treats
// every zero-valued field as unset.
func (c Config) Apply(opts *pipeline.Options, isSet func(key string) bool) {
	if isSet == nil {
		isSet = func(string) bool { return false }
	}
	file := c.Options()

	if !isSet("mode") && file.Mode != "" {
		opts.Mode = file.Mode
	}
	if !isSet("min_correlation") && file.MinCorrelation != 0 {
		opts.MinCorrelation = file.MinCorrelation
	}
	if !isSet("drop_isolated") && file.DropIsolated {
		opts.DropIsolated = true
	}
	if !isSet("detect_modules") && file.DetectModules {
		opts.DetectModules = true
	}
	if !isSet("color_mode") && file.ColorMode != "" {
		opts.ColorMode = file.ColorMode
	}
	if !isSet("min_size") && file.MinSize != 0 {
		opts.MinSize = file.MinSize
	}
	if !isSet("max_size") && file.MaxSize != 0 {
		opts.MaxSize = file.MaxSize
	}
	if !isSet("overlay") && file.Overlay {
		opts.Overlay = true
	}
	if !isSet("palette") && len(file.Palette) > 0 {
		opts.Palette = file.Palette
	}
	if !isSet("width") && file.Width != 0 {
		opts.Width = file.Width
	}
	if !isSet("height") && file.Height != 0 {
		opts.Height = file.Height
	}
	if !isSet("formats") && len(file.Formats) > 0 {
		opts.Formats = file.Formats
	}
	if !isSet("labels") && file.Labels {
		opts.Labels = true
	}
}
