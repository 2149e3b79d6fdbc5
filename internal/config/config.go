// ABOUTME: Alfresco connection settings loaded from env vars and an optional TOML file
// ABOUTME: Environment variables always win; defaults match a local dev install
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Defaults for a local Alfresco Community install.
const (
	DefaultURL         = "http://localhost:8080"
	DefaultUsername    = "admin"
	DefaultPassword    = "admin"
	DefaultTimeoutSecs = 30
	DefaultMaxFileSize = 100_000_000 // 100 MB upload cap
)

// Config holds everything needed to talk to an Alfresco server.
type Config struct {
	URL         string `toml:"url"`
	Username    string `toml:"username"`
	Password    string `toml:"password"`
	VerifySSL   bool   `toml:"verify_ssl"`
	TimeoutSecs int    `toml:"timeout_seconds"`
	MaxFileSize int64  `toml:"max_file_size"`
}

// RequestTimeout returns the per-request HTTP timeout.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.TimeoutSecs) * time.Second
}

// FilePath returns the optional config file location.
func FilePath() string {
	return filepath.Join(GetConfigHome(), "alfresco-mcp", "config.toml")
}

// Load builds a Config from the optional TOML file and environment variables.
// File values override defaults; env vars override everything.
func Load() (*Config, error) {
	cfg := &Config{
		URL:         DefaultURL,
		Username:    DefaultUsername,
		Password:    DefaultPassword,
		VerifySSL:   false,
		TimeoutSecs: DefaultTimeoutSecs,
		MaxFileSize: DefaultMaxFileSize,
	}

	path := FilePath()
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	applyEnv(cfg)

	cfg.URL = strings.TrimRight(cfg.URL, "/")
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("ALFRESCO_URL"); v != "" {
		cfg.URL = v
	}
	if v := os.Getenv("ALFRESCO_USERNAME"); v != "" {
		cfg.Username = v
	}
	if v := os.Getenv("ALFRESCO_PASSWORD"); v != "" {
		cfg.Password = v
	}
	if v := os.Getenv("ALFRESCO_VERIFY_SSL"); v != "" {
		cfg.VerifySSL = strings.EqualFold(v, "true")
	}
	if v := os.Getenv("ALFRESCO_TIMEOUT"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil {
			cfg.TimeoutSecs = secs
		}
	}
	if v := os.Getenv("ALFRESCO_MAX_FILE_SIZE"); v != "" {
		if size, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.MaxFileSize = size
		}
	}
}

func (c *Config) validate() error {
	u, err := url.Parse(c.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid ALFRESCO_URL %q: must be an absolute URL", c.URL)
	}
	if c.TimeoutSecs <= 0 {
		return fmt.Errorf("invalid ALFRESCO_TIMEOUT %d: must be positive", c.TimeoutSecs)
	}
	if c.MaxFileSize <= 0 {
		return fmt.Errorf("invalid ALFRESCO_MAX_FILE_SIZE %d: must be positive", c.MaxFileSize)
	}
	return nil
}
