package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"sappyduck/engine"
)

const EnvPrefix = "SAPPYDUCK"

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	MaxDepth             int           `mapstructure:"max_depth"`
	DepthMaxTime         time.Duration `mapstructure:"depth_max_time"`
	InfiniteMaxTime      time.Duration `mapstructure:"infinite_max_time"`
	AspirationWindow     float64       `mapstructure:"aspiration_window"`
	AspirationMinDepth   int           `mapstructure:"aspiration_min_depth"`
	AspirationMaxRetries int           `mapstructure:"aspiration_max_retries"`
	PrintCutStats        bool          `mapstructure:"print_cut_stats"`
	SafeguardMs          float64       `mapstructure:"safeguard_ms"`
	MaxUsage             float64       `mapstructure:"max_usage"`
	DefaultMovesToGo     int           `mapstructure:"default_moves_to_go"`
	LogLevel             string        `mapstructure:"log_level"`
}

func setDefaults(v *viper.Viper) {
	search := engine.DefaultSearchConfig()
	tm := engine.DefaultTimeManager()

	v.SetDefault("max_depth", search.MaxDepth)
	v.SetDefault("depth_max_time", 5*time.Minute)
	v.SetDefault("infinite_max_time", time.Hour)
	v.SetDefault("aspiration_window", search.AspirationWindow)
	v.SetDefault("aspiration_min_depth", search.AspirationMinDepth)
	v.SetDefault("aspiration_max_retries", search.AspirationMaxRetries)
	v.SetDefault("print_cut_stats", search.PrintCutStats)
	v.SetDefault("safeguard_ms", tm.SafeguardMs)
	v.SetDefault("max_usage", tm.MaxUsage)
	v.SetDefault("default_moves_to_go", tm.DefaultMovesToGo)
	v.SetDefault("log_level", "info")
}

// Load reads defaults, then the optional file at cfgPath, then SAPPYDUCK_*
// environment variables.
func Load(cfgPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", cfgPath, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch {
	case c.MaxDepth <= 0:
		return fmt.Errorf("%w: max_depth must be positive, got %d", ErrInvalidConfig, c.MaxDepth)
	case c.MaxUsage <= 0:
		return fmt.Errorf("%w: max_usage must be positive, got %v", ErrInvalidConfig, c.MaxUsage)
	case c.DefaultMovesToGo <= 0:
		return fmt.Errorf("%w: default_moves_to_go must be positive, got %d", ErrInvalidConfig, c.DefaultMovesToGo)
	case c.AspirationWindow < 0:
		return fmt.Errorf("%w: aspiration_window must not be negative, got %v", ErrInvalidConfig, c.AspirationWindow)
	}
	return nil
}

func (c *Config) SearchConfig() engine.SearchConfig {
	return engine.SearchConfig{
		MaxDepth:             c.MaxDepth,
		AspirationWindow:     c.AspirationWindow,
		AspirationMinDepth:   c.AspirationMinDepth,
		AspirationMaxRetries: c.AspirationMaxRetries,
		PrintCutStats:        c.PrintCutStats,
	}
}

func (c *Config) TimeManager() engine.TimeManager {
	return engine.TimeManager{
		SafeguardMs:      c.SafeguardMs,
		MaxUsage:         c.MaxUsage,
		DefaultMovesToGo: c.DefaultMovesToGo,
	}
}
