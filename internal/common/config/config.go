// internal/common/config/config.go
package config

import "fmt"

// Config is the main gateway configuration struct.
type Config struct {
	App     AppConfig     `mapstructure:"app"`
	Backend BackendConfig `mapstructure:"backend"`
	Tools   ToolsConfig   `mapstructure:"tools"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Logging LoggingConfig `mapstructure:"logging"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// BackendConfig points at the CAMARA backend the pipeline dispatches to.
type BackendConfig struct {
	BaseURL   string `mapstructure:"base_url"`
	TimeoutMS int    `mapstructure:"timeout_ms"`
}

// ToolsConfig locates the static schema/template artifacts.
type ToolsConfig struct {
	TemplateRegistry string `mapstructure:"template_registry"`
	Manifest         string `mapstructure:"manifest"`
}

// CacheConfig configures the read-through cache for idempotent catalog reads.
type CacheConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	Address    string `mapstructure:"address"`
	Password   string `mapstructure:"password"`
	DB         int    `mapstructure:"db"`
	TTLSeconds int    `mapstructure:"ttl_seconds"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Address string `mapstructure:"address"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func validateConfig(cfg *Config) error {
	if cfg.Backend.BaseURL == "" {
		return fmt.Errorf("backend.base_url is required")
	}
	if cfg.Backend.TimeoutMS <= 0 {
		return fmt.Errorf("backend.timeout_ms must be positive, got %d", cfg.Backend.TimeoutMS)
	}
	if cfg.Tools.TemplateRegistry == "" {
		return fmt.Errorf("tools.template_registry is required")
	}
	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "camara-gateway"
	}
	if cfg.App.Environment == "" {
		cfg.App.Environment = "development"
	}
	if cfg.Backend.TimeoutMS == 0 {
		cfg.Backend.TimeoutMS = 10000
	}
	if cfg.Cache.TTLSeconds == 0 {
		cfg.Cache.TTLSeconds = 300
	}
	if cfg.Metrics.Address == "" {
		cfg.Metrics.Address = ":9102"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
}
