package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// Config holds the configuration for the application.
type Config struct {
	// APIBaseURL is the base URL of the external API, including the
	// /api prefix (e.g. http://localhost:8000/api).
	APIBaseURL string `mapstructure:"api_base_url"`

	// DataDir is where the token, item metadata, meal plan and notes
	// are persisted.
	DataDir string `mapstructure:"data_dir"`

	HTTPTimeout time.Duration `mapstructure:"http_timeout"`
}

// Load initializes and reads the configuration using Viper.
// Environment variables (YUMYUM_API_BASE_URL, YUMYUM_DATA_DIR,
// YUMYUM_HTTP_TIMEOUT) override config file values.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve home directory: %w", err)
		}
		v.AddConfigPath(home)
		v.SetConfigType("yaml")
		v.SetConfigName(".yumyum")
	}

	v.SetEnvPrefix("yumyum")
	v.AutomaticEnv()

	v.SetDefault("api_base_url", "http://localhost:8000/api")
	v.SetDefault("data_dir", defaultDataDir())
	v.SetDefault("http_timeout", "10s")

	if err := v.ReadInConfig(); err != nil {
		// A missing default config file is fine, everything has a default.
		// An explicitly named file must exist.
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			if cfgFile != "" || !os.IsNotExist(err) {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	var cfg Config
	decoderConfigOption := viper.DecoderConfigOption(func(dc *mapstructure.DecoderConfig) {
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			dc.DecodeHook,
			mapstructure.StringToTimeDurationHookFunc(),
		)
	})
	if err := v.Unmarshal(&cfg, decoderConfigOption); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if cfg.APIBaseURL == "" {
		return nil, fmt.Errorf("api_base_url must not be empty")
	}

	return &cfg, nil
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".yumyum"
	}
	return filepath.Join(home, ".yumyum")
}
