// Package config handles configuration loading and defaults.
package config

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// Default values.
const (
	DefaultAPIBaseURL = "https://dummyjson.com"
	DefaultDBPath     = "~/.taskdeck/tasks.db"
	DefaultLogLevel   = "info"
	DefaultLogFormat  = "text"
)

// Config holds the full configuration for taskdeck.
type Config struct {
	// Remote seed source. Used once, when the local store is empty.
	APIBaseURL string `toml:"api_base_url"`

	// ImportOnEmpty controls the remote import fallback. A failed
	// import is retried on the next launch for as long as the store
	// stays empty; setting this to false disables the import entirely.
	ImportOnEmpty bool `toml:"import_on_empty"`

	// Local task database (supports ~ expansion).
	DBPath string `toml:"db_path"`

	// Logging configuration
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
}

// Load loads configuration from multiple sources in priority order:
// 1. Defaults
// 2. User config file (~/.taskdeck/taskdeck.toml)
// 3. Project config file (taskdeck.toml or .taskdeck.toml in current directory)
// 4. Environment variables (TASKDECK_*)
// 5. CLI flags
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	cfg := &Config{}
	setDefaults(cfg)

	if userFile := findUserConfigFile(); userFile != "" {
		if err := loadConfigFile(cfg, userFile); err != nil {
			return nil, fmt.Errorf("loading user config file %s: %w", userFile, err)
		}
	}

	if projFile := findProjectConfigFile(); projFile != "" {
		if err := loadConfigFile(cfg, projFile); err != nil {
			return nil, fmt.Errorf("loading project config file %s: %w", projFile, err)
		}
	}

	loadFromEnv(cfg)

	if err := parseFlags(cfg, fs, args); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}

	cfg.DBPath = expandPath(cfg.DBPath)
	return cfg, nil
}

func setDefaults(cfg *Config) {
	cfg.APIBaseURL = DefaultAPIBaseURL
	cfg.ImportOnEmpty = true
	cfg.DBPath = DefaultDBPath
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
}

// loadConfigFile loads TOML config from the given file.
func loadConfigFile(cfg *Config, path string) error {
	_, err := toml.DecodeFile(path, cfg)
	return err
}

// findUserConfigFile locates the per-user config file, if any.
func findUserConfigFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	path := filepath.Join(home, ".taskdeck", "taskdeck.toml")
	if _, err := os.Stat(path); err == nil {
		return path
	}
	return ""
}

// findProjectConfigFile locates a config file in the current directory.
func findProjectConfigFile() string {
	for _, name := range []string{"taskdeck.toml", ".taskdeck.toml"} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// loadFromEnv overrides config from environment variables.
func loadFromEnv(cfg *Config) {
	if v := os.Getenv("TASKDECK_API_BASE_URL"); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv("TASKDECK_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("TASKDECK_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("TASKDECK_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	if v := os.Getenv("TASKDECK_LOG_TIMESTAMPS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.LogTimestamps = b
		}
	}
	if v := os.Getenv("TASKDECK_IMPORT_ON_EMPTY"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.ImportOnEmpty = b
		}
	}
}

// parseFlags registers and parses CLI flags (they override everything).
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string) error {
	fs.StringVar(&cfg.APIBaseURL, "api-base-url", cfg.APIBaseURL, "Base URL of the task seed API")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "Path to the task database")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug|info|warn|error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text|json|logfmt)")
	fs.BoolVar(&cfg.LogTimestamps, "log-timestamps", cfg.LogTimestamps, "Include timestamps in logs")
	fs.BoolVar(&cfg.ImportOnEmpty, "import-on-empty", cfg.ImportOnEmpty, "Import seed tasks when the store is empty")
	return fs.Parse(args)
}

// expandPath expands a ~/ prefix to the user's home directory.
func expandPath(p string) string {
	if p == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			return home
		}
		return p
	}
	if strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, p[2:])
		}
	}
	return p
}
