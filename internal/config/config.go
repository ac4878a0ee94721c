// internal/config/config.go
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the entire application configuration.
type Config struct {
	Logger  LoggerConfig  `mapstructure:"logger" yaml:"logger"`
	Browser BrowserConfig `mapstructure:"browser" yaml:"browser"`
	Retry   RetryConfig   `mapstructure:"retry" yaml:"retry"`
	Network NetworkConfig `mapstructure:"network" yaml:"network"`
}

// LoggerConfig holds all the configuration for the logger.
type LoggerConfig struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Format      string `mapstructure:"format" yaml:"format"`
	AddSource   bool   `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int    `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int    `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool   `mapstructure:"compress" yaml:"compress"`
}

// BrowserConfig holds settings for the headless browser instance, including
// the process-wide element highlight flag consumed by the action facade.
type BrowserConfig struct {
	Headless          bool     `mapstructure:"headless" yaml:"headless"`
	DisableCache      bool     `mapstructure:"disable_cache" yaml:"disable_cache"`
	IgnoreTLSErrors   bool     `mapstructure:"ignore_tls_errors" yaml:"ignore_tls_errors"`
	Args              []string `mapstructure:"args" yaml:"args"`
	HighlightElements bool     `mapstructure:"highlight_elements" yaml:"highlight_elements"`
}

// RetryConfig is the shared retry policy for script executions.
type RetryConfig struct {
	Attempts int           `mapstructure:"attempts" yaml:"attempts"`
	Interval time.Duration `mapstructure:"interval" yaml:"interval"`
}

// NetworkConfig tunes navigation, page-load, and element lookup timing.
type NetworkConfig struct {
	NavigationTimeout time.Duration `mapstructure:"navigation_timeout" yaml:"navigation_timeout"`
	PageLoadTimeout   time.Duration `mapstructure:"page_load_timeout" yaml:"page_load_timeout"`
	FindTimeout       time.Duration `mapstructure:"find_timeout" yaml:"find_timeout"`
	ScriptTimeout     time.Duration `mapstructure:"script_timeout" yaml:"script_timeout"`
	PollInterval      time.Duration `mapstructure:"poll_interval" yaml:"poll_interval"`
}

// ElementHighlightEnabled satisfies the engine's ProfileFlags contract.
// It is read at call time, so a profile change takes effect immediately.
func (c *Config) ElementHighlightEnabled() bool {
	return c.Browser.HighlightElements
}

// SetDefaults initializes default values for all configuration parameters.
func SetDefaults(v *viper.Viper) {
	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "domact")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 100)
	v.SetDefault("logger.max_backups", 5)
	v.SetDefault("logger.max_age", 30)
	v.SetDefault("logger.compress", true)

	// -- Browser --
	v.SetDefault("browser.headless", true)
	v.SetDefault("browser.disable_cache", true)
	v.SetDefault("browser.ignore_tls_errors", false)
	v.SetDefault("browser.highlight_elements", false)

	// -- Retry --
	v.SetDefault("retry.attempts", 3)
	v.SetDefault("retry.interval", "300ms")

	// -- Network --
	v.SetDefault("network.navigation_timeout", "90s")
	v.SetDefault("network.page_load_timeout", "30s")
	v.SetDefault("network.find_timeout", "15s")
	v.SetDefault("network.script_timeout", "30s")
	v.SetDefault("network.poll_interval", "250ms")
}

// BindEnv configures environment-variable overrides with the DOMACT prefix,
// e.g. DOMACT_BROWSER_HIGHLIGHT_ELEMENTS=true.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix("DOMACT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// NewDefaultConfig creates a configuration populated with default values.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		// Cannot happen with defaults only.
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return &cfg
}

// NewConfigFromViper creates a validated configuration from a viper object.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks the configuration for sane values.
func (c *Config) Validate() error {
	if c.Retry.Attempts < 1 {
		return fmt.Errorf("retry.attempts must be a positive integer")
	}
	if c.Retry.Interval < 0 {
		return fmt.Errorf("retry.interval must not be negative")
	}
	if c.Network.FindTimeout <= 0 {
		return fmt.Errorf("network.find_timeout must be a positive duration")
	}
	if c.Network.ScriptTimeout <= 0 {
		return fmt.Errorf("network.script_timeout must be a positive duration")
	}
	if c.Network.PollInterval <= 0 {
		return fmt.Errorf("network.poll_interval must be a positive duration")
	}
	return nil
}
