// Package config handles TOML-based configuration loading and validation.
// Values are merged as defaults < config file < MEDIAGRAB_* environment
// variables; the CLI applies its flags on top.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"

	"mediagrab/internal/httputil"
)

// EnvPrefix prefixes every environment override, e.g. MEDIAGRAB_PLAYER.
const EnvPrefix = "MEDIAGRAB_"

// formatIDPattern matches format IDs as sites label them ("720p", "mobile").
var formatIDPattern = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// Config holds all application configuration.
type Config struct {
	Player             string   `toml:"player" env:"PLAYER"`
	Format             string   `toml:"format" env:"FORMAT"` // best | worst | <format id>
	History            bool     `toml:"history" env:"HISTORY"`
	DownloadDir        string   `toml:"download_dir" env:"DOWNLOAD_DIR"`
	WriteThumbnail     bool     `toml:"write_thumbnail" env:"WRITE_THUMBNAIL"`
	Debug              bool     `toml:"debug" env:"DEBUG"`
	Timeout            int      `toml:"timeout" env:"TIMEOUT"` // seconds
	UserAgent          string   `toml:"user_agent" env:"USER_AGENT"`
	DumpertAPI         string   `toml:"dumpert_api" env:"DUMPERT_API"`
	DisabledExtractors []string `toml:"disabled_extractors" env:"DISABLED_EXTRACTORS" envSeparator:","`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Player:      "mpv",
		Format:      "best",
		History:     true,
		DownloadDir: "~/Videos/mediagrab",
		Timeout:     30,
		UserAgent:   httputil.DefaultUserAgent,
	}
}

// configDir returns the XDG-compliant config directory.
func configDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "mediagrab"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".config", "mediagrab"), nil
}

// ConfigPath returns the path to the config file.
func ConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads the config file, applies environment overrides and validates
// the result. If the config file doesn't exist, defaults are used.
func Load() (*Config, error) {
	cfg := Default()

	path, err := ConfigPath()
	if err == nil {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := toml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config %s: %w", path, err)
			}
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks config values are within acceptable bounds.
func (c *Config) Validate() error {
	validPlayers := map[string]bool{
		"mpv": true, "vlc": true, "iina": true, "celluloid": true,
	}
	if !validPlayers[strings.ToLower(c.Player)] {
		return fmt.Errorf("unsupported player %q (valid: mpv, vlc, iina, celluloid)", c.Player)
	}

	if !formatIDPattern.MatchString(c.Format) {
		return fmt.Errorf("invalid format %q (valid: best, worst, or a format ID)", c.Format)
	}

	if c.Timeout < 1 || c.Timeout > 600 {
		return fmt.Errorf("timeout %d out of range (1-600 seconds)", c.Timeout)
	}

	if strings.TrimSpace(c.UserAgent) == "" {
		return fmt.Errorf("user agent cannot be empty")
	}

	if c.DumpertAPI != "" {
		if err := httputil.ValidateURL(c.DumpertAPI); err != nil {
			return fmt.Errorf("invalid dumpert_api: %w", err)
		}
	}

	for _, p := range c.DisabledExtractors {
		if strings.TrimSpace(p) == "" {
			return fmt.Errorf("disabled_extractors contains an empty pattern")
		}
	}

	return nil
}

// RequestTimeout returns the HTTP timeout as a duration.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

// ExpandDownloadDir resolves ~ in the download directory path.
func (c *Config) ExpandDownloadDir() (string, error) {
	dir := c.DownloadDir
	if strings.HasPrefix(dir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expanding home dir: %w", err)
		}
		dir = filepath.Join(home, dir[2:])
	}
	return filepath.Abs(dir)
}

// HistoryPath returns the path to the history file.
func HistoryPath() (string, error) {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataDir, "mediagrab", "history.tsv"), nil
}
