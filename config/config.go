package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds the tool's own settings. Everything has a working default;
// a cookiecycle.json in the working directory or COOKIECYCLE_* environment
// variables override it.
type Config struct {
	APIPort        int           `mapstructure:"api_port"`
	ServerCommand  string        `mapstructure:"server_command"`
	ServerHost     string        `mapstructure:"server_host"`
	ProcessPattern string        `mapstructure:"process_pattern"`
	ServerLog      string        `mapstructure:"server_log"`
	UpdaterCommand string        `mapstructure:"updater_command"`
	StrictBackup   bool          `mapstructure:"strict_backup"`
	GraceTimeout   time.Duration `mapstructure:"grace_timeout"`
	KillTimeout    time.Duration `mapstructure:"kill_timeout"`
	SettleTimeout  time.Duration `mapstructure:"settle_timeout"`
	ProbeTimeout   time.Duration `mapstructure:"probe_timeout"`
}

// Load reads settings from the given file, or from an optional
// ./cookiecycle.json when path is empty.
func Load(path string) (*Config, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("cookiecycle")
		v.SetConfigType("json")
		v.AddConfigPath(".")
	}

	v.SetDefault("api_port", 5555)
	v.SetDefault("server_command", "python3 start_api.py")
	v.SetDefault("server_host", "0.0.0.0")
	v.SetDefault("process_pattern", "start_api.py")
	v.SetDefault("server_log", "api_server.log")
	v.SetDefault("updater_command", "")
	v.SetDefault("strict_backup", false)
	v.SetDefault("grace_timeout", "3s")
	v.SetDefault("kill_timeout", "2s")
	v.SetDefault("settle_timeout", "5s")
	v.SetDefault("probe_timeout", "10s")

	v.SetEnvPrefix("COOKIECYCLE")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if path != "" {
				return nil, fmt.Errorf("read settings %s: %w", path, err)
			}
			return nil, fmt.Errorf("read settings: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode settings: %w", err)
	}
	return &cfg, nil
}
