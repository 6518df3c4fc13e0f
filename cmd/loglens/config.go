package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/loglens/loglens/internal/model"
)

// appConfig is internal runtime configuration for the analyzer.
// It is package-private to keep defaults and shape local to the CLI
// entrypoint.
type appConfig struct {
	Sources    []string `mapstructure:"sources"`
	Output     string   `mapstructure:"output"`
	Units      int      `mapstructure:"units"`
	TopK       int      `mapstructure:"top-k"`
	Serial     bool     `mapstructure:"serial"`
	ConfigPath string   `mapstructure:"-"` // not from config file
}

func loadConfig(configPath string) (appConfig, error) {
	var cfg appConfig

	home, err := os.UserHomeDir()
	if err != nil {
		return cfg, fmt.Errorf("finding home directory: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix("LOGLENS")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	v.SetDefault("sources", []string{})
	v.SetDefault("output", model.DefaultReportPath)
	v.SetDefault("units", 0)
	v.SetDefault("top-k", model.DefaultTopPaths)
	v.SetDefault("serial", false)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigFile(filepath.Join(home, ".config", "loglens", "config.yml"))
	}

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFound) && !os.IsNotExist(err) {
			return cfg, err
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}
	cfg.ConfigPath = v.ConfigFileUsed()

	return cfg, nil
}
