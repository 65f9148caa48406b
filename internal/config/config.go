// Package config loads CLI settings from flags, environment and an optional
// wayfinder.yaml file.
//
// Flow parameters are not configuration: they come from a ports.ParameterSource.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override (WAYFINDER_LOG_LEVEL, ...).
const EnvPrefix = "WAYFINDER"

// Source kinds accepted by flow.source.
const (
	SourceAuto  = "auto"
	SourceFile  = "file"
	SourceLoam  = "loam"
	SourceRedis = "redis"
)

// Config holds every CLI setting.
type Config struct {
	Log    LogConfig    `mapstructure:"log"`
	Flow   FlowConfig   `mapstructure:"flow"`
	Redis  RedisConfig  `mapstructure:"redis"`
	Server ServerConfig `mapstructure:"server"`
	Query  QueryConfig  `mapstructure:"query"`
}

// LogConfig controls the structured logger.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// FlowConfig says where the flow parameters live.
type FlowConfig struct {
	// Path is a YAML/JSON file or a directory of markdown steps.
	Path   string `mapstructure:"path"`
	Source string `mapstructure:"source"`
	// Name labels log lines and metrics.
	Name string `mapstructure:"name"`
	// Item selects the batch item to serve.
	Item int `mapstructure:"item"`
}

// RedisConfig configures the redis parameter source.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

// ServerConfig configures `wayfinder serve` and the MCP SSE transport.
type ServerConfig struct {
	Addr    string `mapstructure:"addr"`
	BaseURL string `mapstructure:"base_url"`
}

// QueryConfig limits incoming queries.
type QueryConfig struct {
	MaxSize int `mapstructure:"max_size"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Log:    LogConfig{Level: "info", Format: "text"},
		Flow:   FlowConfig{Source: SourceAuto, Name: "wayfinder"},
		Redis:  RedisConfig{Addr: "localhost:6379", Prefix: "wayfinder:"},
		Server: ServerConfig{Addr: ":8080"},
		Query:  QueryConfig{MaxSize: 1024},
	}
}

// SetDefaults registers Default() on v.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)

	v.SetDefault("flow.path", d.Flow.Path)
	v.SetDefault("flow.source", d.Flow.Source)
	v.SetDefault("flow.name", d.Flow.Name)
	v.SetDefault("flow.item", d.Flow.Item)

	v.SetDefault("redis.addr", d.Redis.Addr)
	v.SetDefault("redis.password", d.Redis.Password)
	v.SetDefault("redis.db", d.Redis.DB)
	v.SetDefault("redis.prefix", d.Redis.Prefix)

	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.base_url", d.Server.BaseURL)

	v.SetDefault("query.max_size", d.Query.MaxSize)
}

// Init prepares v: defaults, environment overrides and the config file.
// An explicit cfgFile must exist; the default search locations are optional.
func Init(v *viper.Viper, cfgFile string) error {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("wayfinder")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(Dir())
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

// Load reads the configuration from v into a Config and validates it.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks enumerated and bounded settings.
func (c *Config) Validate() error {
	var errs []error
	switch c.Flow.Source {
	case SourceAuto, SourceFile, SourceLoam, SourceRedis:
	default:
		errs = append(errs, fmt.Errorf("flow.source: unknown source %q", c.Flow.Source))
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format: must be text or json, got %q", c.Log.Format))
	}
	if c.Flow.Item < 0 {
		errs = append(errs, fmt.Errorf("flow.item: must be >= 0, got %d", c.Flow.Item))
	}
	if c.Query.MaxSize <= 0 {
		errs = append(errs, fmt.Errorf("query.max_size: must be > 0, got %d", c.Query.MaxSize))
	}
	return errors.Join(errs...)
}

// Dir returns the user's wayfinder config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "wayfinder")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".wayfinder"
	}
	return filepath.Join(home, ".config", "wayfinder")
}
