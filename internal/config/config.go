package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	APIKey   string `mapstructure:"api_key" yaml:"api_key"`
	Model    string `mapstructure:"model" yaml:"model"`
	Endpoint string `mapstructure:"endpoint" yaml:"endpoint"`

	HTTPTimeoutSec  int     `mapstructure:"http_timeout_sec" yaml:"http_timeout_sec"`
	Temperature     float64 `mapstructure:"temperature" yaml:"temperature"`
	MaxOutputTokens int     `mapstructure:"max_output_tokens" yaml:"max_output_tokens"`
	SampleRows      int     `mapstructure:"sample_rows" yaml:"sample_rows"`
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.tabletalk/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".tabletalk")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("TABLETALK")
	v.AutomaticEnv()

	// Defaults. Every key needs one registered or AutomaticEnv will not
	// surface it through Unmarshal.
	v.SetDefault("api_key", "")
	v.SetDefault("model", "gemini-2.0-flash")
	v.SetDefault("endpoint", "https://generativelanguage.googleapis.com")
	v.SetDefault("http_timeout_sec", 60)
	v.SetDefault("temperature", 0.2)
	v.SetDefault("max_output_tokens", 2048)
	v.SetDefault("sample_rows", 10)

	// Config file
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".tabletalk")
		_ = os.MkdirAll(dir, 0o755)
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}
