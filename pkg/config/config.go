// Package config loads and writes the hq configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config is the persisted hq configuration.
type Config struct {
	HQPath  string   `yaml:"hq_path" mapstructure:"hq_path"`
	Scopes  []string `yaml:"scopes" mapstructure:"scopes"`
	DataDir string   `yaml:"data_dir" mapstructure:"data_dir"`
}

// DefaultScopes are used when no scopes are configured.
var DefaultScopes = []string{"knowledge/public", "companies/*/knowledge"}

// Init wires viper to the config file and environment. When cfgFile is
// empty the default location ~/.config/hq/config.yaml is used.
func Init(cfgFile string) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		viper.AddConfigPath(filepath.Join(home, ".config", "hq"))
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("HQ")

	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	viper.SetDefault("data_dir", filepath.Join(home, ".local", "share", "hq"))
	viper.SetDefault("scopes", DefaultScopes)
	viper.SetDefault("hq_path", "")

	// Missing config file is fine; defaults and flags still apply.
	_ = viper.ReadInConfig()
}

// Load returns the effective configuration.
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

// DefaultPath returns the default config file location.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "hq", "config.yaml"), nil
}

// Write marshals cfg as YAML to path, creating parent directories.
func Write(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
