package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds runtime settings. Precedence: flags > NODESTATUS_* env >
// config file > defaults.
type Config struct {
	NodesFile   string        `mapstructure:"nodes_file"`  // JSON node list
	ReportFile  string        `mapstructure:"report_file"` // markdown output
	LogDir      string        `mapstructure:"log_dir"`
	NodeTimeout time.Duration `mapstructure:"node_timeout"` // per-node wall clock
	Verbose     bool          `mapstructure:"verbose"`
}

// Load reads settings from an optional yaml file plus the environment.
// A missing config file is fine; a broken one is not.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("nodes_file", filepath.Join("presets", "config.json"))
	v.SetDefault("report_file", "node-report.md")
	v.SetDefault("log_dir", "logs")
	v.SetDefault("node_timeout", "60s")
	v.SetDefault("verbose", false)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("nodestatus")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("NODESTATUS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// No file in the search path is fine; an unreadable or broken one is not.
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.NodeTimeout <= 0 {
		cfg.NodeTimeout = 60 * time.Second
	}

	return &cfg, nil
}
