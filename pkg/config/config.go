// Package config provides configuration management for the streamfit service.
package config

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Service ServiceConfig `mapstructure:"service"`
	Algo    AlgoConfig    `mapstructure:"algo"`
	Log     LogConfig     `mapstructure:"log"`
}

// ServiceConfig holds configuration for --service mode's WebSocket server.
type ServiceConfig struct {
	// Port is the TCP port the WebSocket server binds. Overridden by the
	// PORT environment variable.
	Port int `mapstructure:"port"`
}

// AlgoConfig holds the fit algorithm's tunable constants. The reference
// values are the defaults; overriding them is a deliberate behavior
// change, not a bug fix.
type AlgoConfig struct {
	ExtraThreshold float64 `mapstructure:"extra_threshold"`
	IntraThreshold float64 `mapstructure:"intra_threshold"`
	MergeThreshold float64 `mapstructure:"merge_threshold"`
	DecayFactor    float64 `mapstructure:"decay_factor"`
	DecayThreshold float64 `mapstructure:"decay_threshold"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json or text
}

// Load reads configuration from the specified file path, if any, falling
// back to defaults and environment variable overrides (PORT, etc.).
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("streamfit")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/streamfit")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// no config file, defaults stand
		} else if os.IsNotExist(err) {
			// file specified but missing, defaults stand
		} else {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	bindEnv(v)
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadFromReader loads configuration from raw bytes (useful for testing).
func LoadFromReader(configType string, content []byte) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType(configType)
	if err := v.ReadConfig(bytes.NewReader(content)); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	bindEnv(v)
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values, including the reference
// algorithm constants.
func setDefaults(v *viper.Viper) {
	v.SetDefault("service.port", 9001)

	v.SetDefault("algo.extra_threshold", 25.0)
	v.SetDefault("algo.intra_threshold", 16.0)
	v.SetDefault("algo.merge_threshold", 1.0)
	v.SetDefault("algo.decay_factor", 0.95)
	v.SetDefault("algo.decay_threshold", 1e-2)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// bindEnv wires the PORT environment variable to service.port: the CLI's
// --port flag wins when set, otherwise PORT, otherwise the 9001 default.
func bindEnv(v *viper.Viper) {
	_ = v.BindEnv("service.port", "PORT")
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Service.Port <= 0 || c.Service.Port > 65535 {
		return fmt.Errorf("invalid service port: %d", c.Service.Port)
	}
	if c.Algo.DecayFactor <= 0 || c.Algo.DecayFactor >= 1 {
		return fmt.Errorf("decay factor must be in (0, 1): %v", c.Algo.DecayFactor)
	}
	return nil
}
