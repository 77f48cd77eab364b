// Package config loads mma-picks settings from a YAML file, a .env file and the
// environment, layered over built-in defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"dario.cat/mergo"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPath = "~/.config/mma-picks/config.yaml"
	EnvPrefix   = "MMA_PICKS_"
)

// Config struct to hold the configuration settings
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Wikipedia WikipediaConfig `yaml:"wikipedia"`
	Tapology  TapologyConfig  `yaml:"tapology"`
	Output    OutputConfig    `yaml:"output"`
	Log       LogConfig       `yaml:"log"`
}

// HTTPConfig holds settings shared by the scrapers
type HTTPConfig struct {
	UserAgent string        `yaml:"user_agent"`
	Timeout   time.Duration `yaml:"timeout"`
}

// WikipediaConfig points the Wikipedia scraper at the MediaWiki API
type WikipediaConfig struct {
	APIURL     string `yaml:"api_url"`
	BaseURL    string `yaml:"base_url"`
	EventsPage string `yaml:"events_page"`
}

// TapologyConfig points the Tapology scraper at the fight center
type TapologyConfig struct {
	BaseURL         string `yaml:"base_url"`
	FightCenterPath string `yaml:"fightcenter_path"`
	ProxyURL        string `yaml:"proxy_url"` // prefix prepended to every fetched URL, empty for direct
}

// OutputConfig holds rendering settings
type OutputConfig struct {
	Slots int `yaml:"slots"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the built-in settings
func Default() Config {
	return Config{
		HTTP: HTTPConfig{
			UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120 Safari/537.36",
			Timeout:   30 * time.Second,
		},
		Wikipedia: WikipediaConfig{
			APIURL:     "https://en.wikipedia.org/w/api.php",
			BaseURL:    "https://en.wikipedia.org",
			EventsPage: "List_of_UFC_events",
		},
		Tapology: TapologyConfig{
			BaseURL:         "https://www.tapology.com",
			FightCenterPath: "/fightcenter?group=ufc",
		},
		Output: OutputConfig{
			Slots: 15,
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// Load reads the YAML file at path over the defaults, then applies a .env file
// from the working directory and MMA_PICKS_* environment variables. A missing
// file is not an error; an empty path uses DefaultPath.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = DefaultPath
	}
	expanded, err := ExpandPath(path)
	if err != nil {
		return cfg, err
	}

	data, err := os.ReadFile(expanded)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if len(data) > 0 {
		var fromFile Config
		if err := yaml.Unmarshal(data, &fromFile); err != nil {
			return cfg, fmt.Errorf("parsing config %s: %w", expanded, err)
		}
		if err := mergo.Merge(&cfg, fromFile, mergo.WithOverride); err != nil {
			return cfg, fmt.Errorf("merging config: %w", err)
		}
	}

	// .env is optional
	_ = godotenv.Load()

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}

	return cfg, cfg.Validate()
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv(EnvPrefix + "USER_AGENT"); v != "" {
		cfg.HTTP.UserAgent = v
	}
	if v := os.Getenv(EnvPrefix + "TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %sTIMEOUT: %w", EnvPrefix, err)
		}
		cfg.HTTP.Timeout = d
	}
	if v := os.Getenv(EnvPrefix + "TAPOLOGY_PROXY"); v != "" {
		cfg.Tapology.ProxyURL = v
	}
	if v := os.Getenv(EnvPrefix + "SLOTS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %sSLOTS: %w", EnvPrefix, err)
		}
		cfg.Output.Slots = n
	}
	if v := os.Getenv(EnvPrefix + "LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	return nil
}

// Validate checks values that would otherwise fail later in a confusing way
func (c Config) Validate() error {
	if c.HTTP.Timeout <= 0 {
		return fmt.Errorf("http.timeout must be positive, got %s", c.HTTP.Timeout)
	}
	if c.Output.Slots <= 0 {
		return fmt.Errorf("output.slots must be positive, got %d", c.Output.Slots)
	}
	if c.Wikipedia.APIURL == "" || c.Tapology.BaseURL == "" {
		return fmt.Errorf("scraper URLs must not be empty")
	}
	return nil
}

// ExpandPath expands a leading ~/ to the user's home directory
func ExpandPath(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, path[2:]), nil
}
