package analysis

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// Config carries the file-loadable CLI settings.
type Config struct {
	Input     string `mapstructure:"input"`
	Delimiter string `mapstructure:"delimiter"`
	NoHeader  bool   `mapstructure:"no_header"`
	Output    string `mapstructure:"output"`
}

// DefaultConfig returns the settings used when no config file is present.
func DefaultConfig() *Config {
	return &Config{Delimiter: ","}
}

// LoadConfig reads a statlab.yaml config file. An empty path searches the
// working directory and falls back to defaults when no file is found; an
// explicit path must exist.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("delimiter", ",")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("statlab")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("analysis: read config: %w", err)
		}
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("analysis: parse config: %w", err)
	}
	return cfg, nil
}
