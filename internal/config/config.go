package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the top-level repodash configuration.
type Config struct {
	Root       string        `mapstructure:"root"`
	Exclude    []string      `mapstructure:"exclude"`
	Workers    int           `mapstructure:"workers"`
	GitTimeout time.Duration `mapstructure:"git_timeout"`
	Rules      string        `mapstructure:"rules"`
	Output     Output        `mapstructure:"output"`
}

// Output defines output preferences.
type Output struct {
	Color bool `mapstructure:"color"`
	Width int  `mapstructure:"width"`
}

// ExpandPath replaces a leading ~ with the user's home directory.
func ExpandPath(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
}

// Load reads configuration from the given path (or the default location)
// and returns a Config with all defaults applied. DEV_ROOT and
// EXCLUDE_DIRS override the file.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	v.SetDefault("root", DefaultRoot)
	v.SetDefault("exclude", DefaultExclude)
	v.SetDefault("workers", DefaultWorkers)
	v.SetDefault("git_timeout", DefaultGitTimeout)
	v.SetDefault("rules", DefaultRules)
	v.SetDefault("output.color", DefaultOutput.Color)
	v.SetDefault("output.width", DefaultOutput.Width)

	if err := v.BindEnv("root", EnvRoot); err != nil {
		return nil, err
	}
	if err := v.BindEnv("exclude", EnvExclude); err != nil {
		return nil, err
	}

	if cfgFile != "" {
		v.SetConfigFile(ExpandPath(cfgFile))
	} else {
		v.AddConfigPath(ConfigDir())
		v.SetConfigName(strings.TrimSuffix(DefaultConfigFile, filepath.Ext(DefaultConfigFile)))
		v.SetConfigType("yaml")
	}

	// Missing file is not an error.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	cfg.Root = ExpandPath(cfg.Root)
	cfg.Exclude = cleanList(cfg.Exclude)
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if cfg.GitTimeout <= 0 {
		cfg.GitTimeout = DefaultGitTimeout
	}

	return &cfg, nil
}

// cleanList trims entries and drops blanks. Env values arrive as one
// comma-separated string and are split here as well.
func cleanList(items []string) []string {
	out := []string{}
	for _, item := range items {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// ConfigDir returns the expanded configuration directory.
func ConfigDir() string {
	return ExpandPath(DefaultConfigDir)
}
