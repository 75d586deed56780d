// Package config loads storyboard settings from a TOML file and the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment overrides, e.g. STORYBOARD_LOG_LEVEL.
const EnvPrefix = "STORYBOARD"

// Config holds application configuration.
type Config struct {
	Board   BoardConfig
	Address AddressConfig
	Log     LogConfig
}

// BoardConfig holds board and story source settings.
type BoardConfig struct {
	StoriesFile  string `mapstructure:"stories_file"`
	SplitColumns bool   `mapstructure:"split_columns"`
	BaseURL      string `mapstructure:"base_url"`
}

// AddressConfig holds navigable address persistence settings.
type AddressConfig struct {
	StateFile string `mapstructure:"state_file"`
}

// LogConfig holds logging settings. An empty File disables logging.
type LogConfig struct {
	Level string
	File  string
}

// Path returns the config file location: $STORYBOARD_CONFIG or
// ~/.config/storyboard/config.toml.
func Path() string {
	if p := os.Getenv(EnvPrefix + "_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(homeDir(), ".config", "storyboard", "config.toml")
}

// Load reads configuration from the file at path, or from Path() when path
// is empty, and from the environment. A missing file is not an error.
func Load(path string) (Config, error) {
	if path == "" {
		path = Path()
	}
	return load(path)
}

func load(path string) (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("board.stories_file", "stories.json")
	v.SetDefault("board.split_columns", false)
	v.SetDefault("board.base_url", "http://localhost:3000/")
	v.SetDefault("address.state_file", filepath.Join(homeDir(), ".local", "state", "storyboard", "address"))
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")

	v.SetConfigType("toml")
	v.SetConfigFile(path)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// read config file if present
	if err := v.ReadInConfig(); err != nil {
		if _, statErr := os.Stat(path); statErr == nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

func homeDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return os.Getenv("HOME")
}
