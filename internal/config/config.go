package config

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Locator LocatorConfig `mapstructure:"locator"`
	Filter  FilterConfig  `mapstructure:"filter"`
	Batch   BatchConfig   `mapstructure:"batch"`
	Store   StoreConfig   `mapstructure:"store"`
	Server  ServerConfig  `mapstructure:"server"`
	Log     LogConfig     `mapstructure:"log"`
}

// LocatorConfig configures the remote locator client.
type LocatorConfig struct {
	BaseURL           string  `mapstructure:"base_url"`
	UserAgent         string  `mapstructure:"user_agent"`
	TimeoutSecs       int     `mapstructure:"timeout_secs"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	// DefaultRadius is the search radius in miles for single-county runs.
	DefaultRadius int `mapstructure:"default_radius"`
	// StateRadius is the per-city radius for statewide scans.
	StateRadius int `mapstructure:"state_radius"`
}

// Timeout returns the request timeout as a duration.
func (c LocatorConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSecs) * time.Second
}

// FilterConfig configures the county keyword filter.
type FilterConfig struct {
	// MinKeepRatio discards the filter when it would keep less than this
	// fraction of the candidate set. 0 always filters, 1 effectively never.
	MinKeepRatio float64 `mapstructure:"min_keep_ratio"`
}

// BatchConfig configures all-county batch runs.
type BatchConfig struct {
	Radius    int    `mapstructure:"radius"`
	OutputDir string `mapstructure:"output_dir"`
}

// StoreConfig configures the optional run-history database.
type StoreConfig struct {
	// Path is the sqlite file; empty disables run history.
	Path string `mapstructure:"path"`
}

// ServerConfig configures the read-only HTTP API.
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("VFC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("locator.base_url", "https://eziz.org/iframes/genxml.php")
	v.SetDefault("locator.user_agent", "vfc-cli/1.0")
	v.SetDefault("locator.timeout_secs", 10)
	v.SetDefault("locator.requests_per_second", 2)
	v.SetDefault("locator.default_radius", 100)
	v.SetDefault("locator.state_radius", 500)
	v.SetDefault("filter.min_keep_ratio", 0.5)
	v.SetDefault("batch.radius", 200)
	v.SetDefault("batch.output_dir", "json_counties")
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
