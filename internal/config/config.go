/*
 * Copyright (c) 2026 Firefly Software Solutions Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

/*
Package config provides configuration management for the memdb shell.

The configuration system supports multiple sources with clear precedence:
 1. Command-line flags (highest priority)
 2. Environment variables
 3. Configuration file
 4. Default values (lowest priority)

Configuration File Format:
The configuration file uses a small subset of TOML: one key = value per line,
# comments, optional quotes around strings.

Example configuration file:

	# memdb shell configuration
	format = "table"
	prompt = "memdb> "
	history_file = "$HOME/.memdb_history"
	show_banner = true
	log_level = "warn"
	log_json = false

Environment Variables:
  - MEMDB_FORMAT: Result format (table, plain, json)
  - MEMDB_PROMPT: Shell prompt
  - MEMDB_HISTORY_FILE: Readline history file
  - MEMDB_SHOW_BANNER: Print the banner on shell start (true/false)
  - MEMDB_LOG_LEVEL: Log level (debug, info, warn, error)
  - MEMDB_LOG_JSON: Enable JSON logging (true/false)
  - MEMDB_CONFIG_FILE: Path to configuration file
*/
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
)

// Environment variable names for configuration.
const (
	EnvFormat      = "MEMDB_FORMAT"
	EnvPrompt      = "MEMDB_PROMPT"
	EnvHistoryFile = "MEMDB_HISTORY_FILE"
	EnvShowBanner  = "MEMDB_SHOW_BANNER"
	EnvLogLevel    = "MEMDB_LOG_LEVEL"
	EnvLogJSON     = "MEMDB_LOG_JSON"
	EnvConfigFile  = "MEMDB_CONFIG_FILE"
)

// Output formats understood by the shell.
const (
	FormatTable = "table"
	FormatPlain = "plain"
	FormatJSON  = "json"
)

// DefaultConfigPaths lists the configuration files searched, in order.
var DefaultConfigPaths = []string{
	"$HOME/.config/memdb/memdb.conf",
	"./memdb.conf",
}

// Config holds all configuration values for the shell.
type Config struct {
	// Output
	Format     string `toml:"format" json:"format"`
	Prompt     string `toml:"prompt" json:"prompt"`
	ShowBanner bool   `toml:"show_banner" json:"show_banner"`

	// History
	HistoryFile string `toml:"history_file" json:"history_file"`

	// Logging
	LogLevel string `toml:"log_level" json:"log_level"`
	LogJSON  bool   `toml:"log_json" json:"log_json"`

	// Metadata
	ConfigFile string `toml:"-" json:"-"` // Path to loaded config file
}

// DefaultHistoryFile returns ~/.memdb_history, or an empty string when no
// home directory is known.
func DefaultHistoryFile() string {
	if home := os.Getenv("HOME"); home != "" {
		return filepath.Join(home, ".memdb_history")
	}
	return ""
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Format:      FormatTable,
		Prompt:      "memdb> ",
		ShowBanner:  true,
		HistoryFile: DefaultHistoryFile(),
		LogLevel:    "warn",
		LogJSON:     false,
	}
}

// Manager handles configuration loading, validation, and access.
type Manager struct {
	config *Config
	mu     sync.RWMutex
}

// NewManager creates a new configuration manager with default values.
func NewManager() *Manager {
	return &Manager{config: DefaultConfig()}
}

// Get returns a copy of the current configuration.
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	cfg := *m.config
	return &cfg
}

// Set updates the configuration.
func (m *Manager) Set(cfg *Config) {
	m.mu.Lock()
	m.config = cfg
	m.mu.Unlock()
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	var errs []string

	switch c.Format {
	case FormatTable, FormatPlain, FormatJSON:
	default:
		errs = append(errs, fmt.Sprintf("invalid format: %s (must be table, plain, or json)", c.Format))
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Sprintf("invalid log_level: %s (must be debug, info, warn, or error)", c.LogLevel))
	}

	if strings.ContainsAny(c.Prompt, "\n\r") {
		errs = append(errs, "prompt cannot contain line breaks")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// LoadFromFile loads configuration from a TOML file on top of the defaults.
func (m *Manager) LoadFromFile(path string) error {
	path = os.ExpandEnv(path)

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := parseTOML(string(data), cfg); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.ConfigFile = path
	m.Set(cfg)
	return nil
}

// LoadFromEnv merges environment variables over the current configuration.
func (m *Manager) LoadFromEnv() {
	cfg := m.Get()

	if v := os.Getenv(EnvFormat); v != "" {
		cfg.Format = strings.ToLower(v)
	}
	if v := os.Getenv(EnvPrompt); v != "" {
		cfg.Prompt = v
	}
	if v := os.Getenv(EnvHistoryFile); v != "" {
		cfg.HistoryFile = os.ExpandEnv(v)
	}
	if v := os.Getenv(EnvShowBanner); v != "" {
		cfg.ShowBanner = parseBool(v)
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv(EnvLogJSON); v != "" {
		cfg.LogJSON = parseBool(v)
	}

	m.Set(cfg)
}

// FindConfigFile searches for a configuration file in default locations.
// Returns the path to the first file found, or empty string if none found.
func FindConfigFile() string {
	if envPath := os.Getenv(EnvConfigFile); envPath != "" {
		if _, err := os.Stat(os.ExpandEnv(envPath)); err == nil {
			return os.ExpandEnv(envPath)
		}
	}

	for _, path := range DefaultConfigPaths {
		expandedPath := os.ExpandEnv(path)
		if _, err := os.Stat(expandedPath); err == nil {
			return expandedPath
		}
	}

	return ""
}

// Load loads configuration from all sources with proper precedence.
// Order: defaults -> config file -> environment variables.
// Command-line flags should be applied after calling this function.
func (m *Manager) Load(explicitPath string) error {
	configPath := explicitPath
	if configPath == "" {
		configPath = FindConfigFile()
	}
	if configPath != "" {
		if err := m.LoadFromFile(configPath); err != nil {
			return err
		}
	}

	m.LoadFromEnv()
	return nil
}

// parseTOML is a simple TOML parser for our configuration format.
func parseTOML(data string, cfg *Config) error {
	lines := strings.Split(data, "\n")

	for lineNum, line := range lines {
		line = stripComment(line)
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return fmt.Errorf("line %d: invalid syntax: %s", lineNum+1, line)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		if len(value) >= 2 && ((value[0] == '"' && value[len(value)-1] == '"') ||
			(value[0] == '\'' && value[len(value)-1] == '\'')) {
			value = value[1 : len(value)-1]
		}

		if err := applyConfigValue(cfg, key, value); err != nil {
			return fmt.Errorf("line %d: %w", lineNum+1, err)
		}
	}

	return nil
}

// stripComment removes a trailing # comment that is not inside quotes.
func stripComment(line string) string {
	var quote byte
	for i := 0; i < len(line); i++ {
		switch ch := line[i]; {
		case quote != 0:
			if ch == quote {
				quote = 0
			}
		case ch == '"' || ch == '\'':
			quote = ch
		case ch == '#':
			return line[:i]
		}
	}
	return line
}

// applyConfigValue applies a key-value pair to the configuration.
func applyConfigValue(cfg *Config, key, value string) error {
	switch key {
	case "format":
		cfg.Format = strings.ToLower(value)
	case "prompt":
		cfg.Prompt = value
	case "history_file":
		cfg.HistoryFile = os.ExpandEnv(value)
	case "show_banner":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid show_banner value: %s", value)
		}
		cfg.ShowBanner = b
	case "log_level":
		cfg.LogLevel = value
	case "log_json":
		cfg.LogJSON = parseBool(value)
	default:
		// Ignore unknown keys for forward compatibility
	}

	return nil
}

func parseBool(v string) bool {
	return strings.ToLower(v) == "true" || v == "1"
}

// String returns a string representation of the configuration.
func (c *Config) String() string {
	var sb strings.Builder
	sb.WriteString("memdb configuration:\n")
	sb.WriteString(fmt.Sprintf("  Format:       %s\n", c.Format))
	sb.WriteString(fmt.Sprintf("  Prompt:       %q\n", c.Prompt))
	sb.WriteString(fmt.Sprintf("  Show Banner:  %v\n", c.ShowBanner))
	if c.HistoryFile != "" {
		sb.WriteString(fmt.Sprintf("  History File: %s\n", c.HistoryFile))
	}
	sb.WriteString(fmt.Sprintf("  Log Level:    %s\n", c.LogLevel))
	sb.WriteString(fmt.Sprintf("  Log JSON:     %v\n", c.LogJSON))
	if c.ConfigFile != "" {
		sb.WriteString(fmt.Sprintf("  Config File:  %s\n", c.ConfigFile))
	}
	return sb.String()
}

// ToTOML returns the configuration as a TOML string.
func (c *Config) ToTOML() string {
	var sb strings.Builder
	sb.WriteString("# memdb shell configuration\n\n")
	sb.WriteString("# Result format: table, plain, or json\n")
	sb.WriteString(fmt.Sprintf("format = %q\n", c.Format))
	sb.WriteString(fmt.Sprintf("prompt = %q\n", c.Prompt))
	sb.WriteString(fmt.Sprintf("show_banner = %v\n\n", c.ShowBanner))
	sb.WriteString(fmt.Sprintf("history_file = %q\n\n", c.HistoryFile))
	sb.WriteString("# Logging\n")
	sb.WriteString(fmt.Sprintf("log_level = %q\n", c.LogLevel))
	sb.WriteString(fmt.Sprintf("log_json = %v\n", c.LogJSON))
	return sb.String()
}

// SaveToFile writes the configuration to path, creating parent directories.
func (c *Config) SaveToFile(path string) error {
	path = os.ExpandEnv(path)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(c.ToTOML()), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
