// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"golang.org/x/text/language"

	"github.com/jeranaias/querydesk-tui/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete querydesk configuration.
type Config struct {
	Service ServiceConfig `toml:"service"`
	UI      UIConfig      `toml:"ui"`
	Log     LogConfig     `toml:"log"`
	Server  ServerConfig  `toml:"server"`
}

// ServiceConfig describes the remote query service.
type ServiceConfig struct {
	// Endpoint is the base URL; questions go to <endpoint>/api/query.
	Endpoint string `toml:"endpoint"`
	// Timeout bounds one HTTP request.
	Timeout   time.Duration `toml:"timeout"`
	UserAgent string        `toml:"user_agent"`
}

// UIConfig contains terminal UI settings.
type UIConfig struct {
	// Examples are offered while the conversation is empty.
	Examples []string `toml:"examples"`
	// Locale is a BCP 47 tag used to format numbers.
	Locale string `toml:"locale"`
	// Markdown renders text answers through glamour instead of verbatim.
	Markdown bool `toml:"markdown"`
	// ShowExactValues starts with grouped values shown beside chart bars.
	ShowExactValues bool `toml:"show_exact_values"`
	// ExportDir receives transcripts saved with ctrl+s. Empty means the working directory.
	ExportDir string `toml:"export_dir"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Path of the log file. Empty disables logging.
	Path  string `toml:"path"`
	Level string `toml:"level"`
}

// ServerConfig configures the demo query service started by `querydesk serve`.
type ServerConfig struct {
	Addr        string   `toml:"addr"`
	RateLimit   float64  `toml:"rate_limit"`
	Burst       int      `toml:"burst"`
	CORSOrigins []string `toml:"cors_origins"`
}

// DefaultExamples are the questions offered on an empty conversation.
var DefaultExamples = []string{
	"Show me the top five portfolios by value",
	"What is the total holding value per relationship manager?",
	"Which clients have a high risk appetite?",
	"What are Virat Kohli's investment preferences?",
}

// Default returns a Config populated with default values.
func Default() *Config {
	logPath := ""
	if dir, err := ConfigDir(); err == nil {
		logPath = filepath.Join(dir, "querydesk.log")
	}

	return &Config{
		Service: ServiceConfig{
			Endpoint:  "http://localhost:8000",
			Timeout:   2 * time.Minute,
			UserAgent: "querydesk",
		},
		UI: UIConfig{
			Examples: append([]string(nil), DefaultExamples...),
			Locale:   "en-US",
		},
		Log: LogConfig{
			Path:  logPath,
			Level: "info",
		},
		Server: ServerConfig{
			Addr:        "127.0.0.1:8000",
			RateLimit:   5,
			Burst:       10,
			CORSOrigins: []string{"*"},
		},
	}
}

// LocaleTag returns the parsed locale, falling back to US English.
func (u UIConfig) LocaleTag() language.Tag {
	tag, err := language.Parse(u.Locale)
	if err != nil {
		return language.AmericanEnglish
	}
	return tag
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the querydesk configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".querydesk"), nil
}

// ConfigPath returns the config file path: QUERYDESK_CONFIG if set,
// otherwise ~/.querydesk/config.toml.
func ConfigPath() (string, error) {
	if p := os.Getenv("QUERYDESK_CONFIG"); p != "" {
		return p, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// =============================================================================
// LOAD / SAVE
// =============================================================================

// Load reads the config file at path (ConfigPath() when empty), applies
// environment overrides and validates the result. A missing file is not an
// error: defaults are used.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := ConfigPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	cfg := Default()
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", path, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	if err := cfg.ApplyEnvOverrides(); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Save writes the configuration as TOML, creating the directory if needed.
func Save(cfg *Config, path string) error {
	var buf bytes.Buffer
	if err := cfg.Encode(&buf); err != nil {
		return err
	}
	if err := util.AtomicWriteFile(path, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Encode writes the configuration as TOML.
func (c *Config) Encode(buf *bytes.Buffer) error {
	if err := toml.NewEncoder(buf).Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// =============================================================================
// DEFAULTS AND OVERRIDES
// =============================================================================

// SetDefaults fills zero values that a partial config file may leave behind.
func (c *Config) SetDefaults() {
	d := Default()
	if c.Service.Endpoint == "" {
		c.Service.Endpoint = d.Service.Endpoint
	}
	c.Service.Endpoint = strings.TrimRight(c.Service.Endpoint, "/")
	if c.Service.Timeout == 0 {
		c.Service.Timeout = d.Service.Timeout
	}
	if c.Service.UserAgent == "" {
		c.Service.UserAgent = d.Service.UserAgent
	}
	if c.UI.Locale == "" {
		c.UI.Locale = d.UI.Locale
	}
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
	if c.Server.Addr == "" {
		c.Server.Addr = d.Server.Addr
	}
	if c.Server.RateLimit == 0 {
		c.Server.RateLimit = d.Server.RateLimit
	}
	if c.Server.Burst == 0 {
		c.Server.Burst = d.Server.Burst
	}
}

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - QUERYDESK_ENDPOINT: overrides service.endpoint
//   - QUERYDESK_TIMEOUT: overrides service.timeout (Go duration, e.g. 90s)
//   - QUERYDESK_LOCALE: overrides ui.locale
//   - QUERYDESK_LOG_LEVEL: overrides log.level
//   - QUERYDESK_LOG_PATH: overrides log.path
//   - QUERYDESK_SERVER_ADDR: overrides server.addr
func (c *Config) ApplyEnvOverrides() error {
	if v := os.Getenv("QUERYDESK_ENDPOINT"); v != "" {
		c.Service.Endpoint = v
	}
	if v := os.Getenv("QUERYDESK_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("QUERYDESK_TIMEOUT: %w", err)
		}
		c.Service.Timeout = d
	}
	if v := os.Getenv("QUERYDESK_LOCALE"); v != "" {
		c.UI.Locale = v
	}
	if v := os.Getenv("QUERYDESK_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v, ok := os.LookupEnv("QUERYDESK_LOG_PATH"); ok {
		c.Log.Path = v
	}
	if v := os.Getenv("QUERYDESK_SERVER_ADDR"); v != "" {
		c.Server.Addr = v
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

var validLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if u, err := url.Parse(c.Service.Endpoint); err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		errs = append(errs, ValidationError{
			Field:   "service.endpoint",
			Message: fmt.Sprintf("invalid URL '%s', must be an absolute http or https URL", c.Service.Endpoint),
		})
	}
	if c.Service.Timeout <= 0 {
		errs = append(errs, ValidationError{
			Field:   "service.timeout",
			Message: "must be positive",
		})
	}
	if _, err := language.Parse(c.UI.Locale); err != nil {
		errs = append(errs, ValidationError{
			Field:   "ui.locale",
			Message: fmt.Sprintf("invalid locale '%s'", c.UI.Locale),
		})
	}
	if !validLevels[strings.ToLower(c.Log.Level)] {
		errs = append(errs, ValidationError{
			Field:   "log.level",
			Message: fmt.Sprintf("invalid level '%s', must be one of: debug, info, warn, error", c.Log.Level),
		})
	}
	if c.Server.RateLimit <= 0 {
		errs = append(errs, ValidationError{
			Field:   "server.rate_limit",
			Message: "must be positive",
		})
	}
	if c.Server.Burst < 1 {
		errs = append(errs, ValidationError{
			Field:   "server.burst",
			Message: "must be at least 1",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
