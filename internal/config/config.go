// File: internal/config/config.go
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Interface defines the contract for accessing application configuration.
// Commands depend on it rather than on *Config so tests can substitute values.
type Interface interface {
	Logger() LoggerConfig
	Render() RenderConfig
	Assets() AssetsConfig
	Watch() WatchConfig

	// Render Setters
	SetViewport(width, height int)
	SetFrames(frames int, fps float64)
}

// Config is the root of the application configuration.
type Config struct {
	LoggerCfg LoggerConfig `mapstructure:"logger" yaml:"logger"`
	RenderCfg RenderConfig `mapstructure:"render" yaml:"render"`
	AssetsCfg AssetsConfig `mapstructure:"assets" yaml:"assets"`
	WatchCfg  WatchConfig  `mapstructure:"watch" yaml:"watch"`
}

// --- Interface Method Implementations (Getters) ---

func (c *Config) Logger() LoggerConfig { return c.LoggerCfg }
func (c *Config) Render() RenderConfig { return c.RenderCfg }
func (c *Config) Assets() AssetsConfig { return c.AssetsCfg }
func (c *Config) Watch() WatchConfig   { return c.WatchCfg }

// --- Interface Method Implementations (Setters) ---

func (c *Config) SetViewport(width, height int) {
	c.RenderCfg.ViewportWidth = width
	c.RenderCfg.ViewportHeight = height
}

func (c *Config) SetFrames(frames int, fps float64) {
	c.RenderCfg.Frames = frames
	c.RenderCfg.FPS = fps
}

// LoggerConfig holds all the configuration for the logger.
type LoggerConfig struct {
	Level       string      `mapstructure:"level" yaml:"level"`
	Format      string      `mapstructure:"format" yaml:"format"`
	AddSource   bool        `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string      `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string      `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int         `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int         `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int         `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool        `mapstructure:"compress" yaml:"compress"`
	Colors      ColorConfig `mapstructure:"colors" yaml:"colors"`
}

// ColorConfig defines the color codes for different log levels.
type ColorConfig struct {
	Debug  string `mapstructure:"debug" yaml:"debug"`
	Info   string `mapstructure:"info" yaml:"info"`
	Warn   string `mapstructure:"warn" yaml:"warn"`
	Error  string `mapstructure:"error" yaml:"error"`
	DPanic string `mapstructure:"dpanic" yaml:"dpanic"`
	Panic  string `mapstructure:"panic" yaml:"panic"`
	Fatal  string `mapstructure:"fatal" yaml:"fatal"`
}

// RenderConfig controls the viewport, image quality and frame pacing.
type RenderConfig struct {
	ViewportWidth  int    `mapstructure:"viewport_width" yaml:"viewport_width"`
	ViewportHeight int    `mapstructure:"viewport_height" yaml:"viewport_height"`
	Interpolation  string `mapstructure:"interpolation" yaml:"interpolation"`
	Antialias      bool   `mapstructure:"antialias" yaml:"antialias"`
	// ChildOverlayAlpha is the opacity of the black overlay drawn over each composited child.
	ChildOverlayAlpha float64 `mapstructure:"child_overlay_alpha" yaml:"child_overlay_alpha"`
	SweepStale        bool    `mapstructure:"sweep_stale" yaml:"sweep_stale"`
	Frames            int     `mapstructure:"frames" yaml:"frames"`
	FPS               float64 `mapstructure:"fps" yaml:"fps"`
}

// AssetsConfig locates fonts and images and bounds their caches.
type AssetsConfig struct {
	Root               string `mapstructure:"root" yaml:"root"`
	FontCacheSize      int    `mapstructure:"font_cache_size" yaml:"font_cache_size"`
	ImageCacheSize     int    `mapstructure:"image_cache_size" yaml:"image_cache_size"`
	PreloadConcurrency int    `mapstructure:"preload_concurrency" yaml:"preload_concurrency"`
}

// WatchConfig tunes the watch command.
type WatchConfig struct {
	// Debounce coalesces bursts of file events into one re-render.
	Debounce time.Duration `mapstructure:"debounce" yaml:"debounce"`
}

// NewDefaultConfig creates a new configuration struct populated with default values.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return &cfg
}

// SetDefaults initializes default values for every configuration key.
func SetDefaults(v *viper.Viper) {
	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "onegui")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 100)
	v.SetDefault("logger.max_backups", 5)
	v.SetDefault("logger.max_age", 30)
	v.SetDefault("logger.compress", true)
	v.SetDefault("logger.colors.debug", "cyan")
	v.SetDefault("logger.colors.info", "green")
	v.SetDefault("logger.colors.warn", "yellow")
	v.SetDefault("logger.colors.error", "red")
	v.SetDefault("logger.colors.dpanic", "magenta")
	v.SetDefault("logger.colors.panic", "magenta")
	v.SetDefault("logger.colors.fatal", "magenta")

	// -- Render --
	v.SetDefault("render.viewport_width", 1280)
	v.SetDefault("render.viewport_height", 720)
	v.SetDefault("render.interpolation", "bilinear")
	v.SetDefault("render.antialias", true)
	v.SetDefault("render.child_overlay_alpha", 0.0)
	v.SetDefault("render.sweep_stale", true)
	v.SetDefault("render.frames", 1)
	v.SetDefault("render.fps", 30.0)

	// -- Assets --
	v.SetDefault("assets.root", ".")
	v.SetDefault("assets.font_cache_size", 64)
	v.SetDefault("assets.image_cache_size", 128)
	v.SetDefault("assets.preload_concurrency", 4)

	// -- Watch --
	v.SetDefault("watch.debounce", "200ms")
}

// NewConfigFromViper unmarshals, normalizes and validates the configuration held by v.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	root, err := homedir.Expand(cfg.AssetsCfg.Root)
	if err != nil {
		return nil, fmt.Errorf("expanding assets.root: %w", err)
	}
	cfg.AssetsCfg.Root = root
	if cfg.LoggerCfg.LogFile != "" {
		logFile, err := homedir.Expand(cfg.LoggerCfg.LogFile)
		if err != nil {
			return nil, fmt.Errorf("expanding logger.log_file: %w", err)
		}
		cfg.LoggerCfg.LogFile = logFile
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

var interpolations = map[string]bool{"nearest": true, "bilinear": true, "catmullrom": true}

// Validate checks the configuration for sane values.
func (c *Config) Validate() error {
	if err := c.RenderCfg.Validate(); err != nil {
		return fmt.Errorf("render configuration invalid: %w", err)
	}
	if err := c.AssetsCfg.Validate(); err != nil {
		return fmt.Errorf("assets configuration invalid: %w", err)
	}
	if c.WatchCfg.Debounce < 0 {
		return fmt.Errorf("watch.debounce must not be negative")
	}
	return nil
}

// Validate checks the render settings.
func (r *RenderConfig) Validate() error {
	if r.ViewportWidth <= 0 || r.ViewportHeight <= 0 {
		return fmt.Errorf("render.viewport_width and render.viewport_height must be positive integers")
	}
	if !interpolations[strings.ToLower(r.Interpolation)] {
		return fmt.Errorf("render.interpolation must be one of nearest, bilinear, catmullrom (got %q)", r.Interpolation)
	}
	if r.ChildOverlayAlpha < 0 || r.ChildOverlayAlpha > 1 {
		return fmt.Errorf("render.child_overlay_alpha must be between 0.0 and 1.0")
	}
	if r.Frames <= 0 {
		return fmt.Errorf("render.frames must be a positive integer")
	}
	if r.FPS <= 0 {
		return fmt.Errorf("render.fps must be positive")
	}
	return nil
}

// Validate checks the asset settings.
func (a *AssetsConfig) Validate() error {
	if a.Root == "" {
		return fmt.Errorf("assets.root is required")
	}
	if a.FontCacheSize <= 0 || a.ImageCacheSize <= 0 {
		return fmt.Errorf("assets.font_cache_size and assets.image_cache_size must be positive integers")
	}
	if a.PreloadConcurrency <= 0 {
		return fmt.Errorf("assets.preload_concurrency must be a positive integer")
	}
	return nil
}
