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

const defaultDashAddr = "127.0.0.1:8000"

// dashConfig holds only dashboard-relevant configuration.
type dashConfig struct {
	Addr    string `mapstructure:"addr"`
	Report  string `mapstructure:"report"`
	LogsDir string `mapstructure:"logs-dir"`
}

func loadDashConfig(configPath string) (dashConfig, error) {
	var cfg dashConfig

	home, err := os.UserHomeDir()
	if err != nil {
		return cfg, fmt.Errorf("finding home directory: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix("LOGLENS")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	v.SetDefault("addr", defaultDashAddr)
	v.SetDefault("report", model.DefaultReportPath)
	v.SetDefault("logs-dir", "")

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

	return cfg, nil
}
