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

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Format != FormatTable {
		t.Errorf("Expected default format 'table', got '%s'", cfg.Format)
	}
	if cfg.Prompt != "memdb> " {
		t.Errorf("Expected default prompt 'memdb> ', got '%s'", cfg.Prompt)
	}
	if !cfg.ShowBanner {
		t.Errorf("Expected banner on by default")
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("Expected default log_level 'warn', got '%s'", cfg.LogLevel)
	}
	if cfg.LogJSON != false {
		t.Errorf("Expected default log_json false, got %v", cfg.LogJSON)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config should be valid: %v", err)
	}
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid defaults", func(*Config) {}, false},
		{"plain format", func(c *Config) { c.Format = FormatPlain }, false},
		{"json format", func(c *Config) { c.Format = FormatJSON }, false},
		{"invalid format", func(c *Config) { c.Format = "xml" }, true},
		{"invalid log level", func(c *Config) { c.LogLevel = "loud" }, true},
		{"multi-line prompt", func(c *Config) { c.Prompt = "a\nb" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidationCollectsAllErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Format = "xml"
	cfg.LogLevel = "loud"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "format") || !strings.Contains(err.Error(), "log_level") {
		t.Errorf("expected both problems in %q", err.Error())
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configContent := `# memdb test config
format = "json"
prompt = "db# "  # hash inside quotes is kept
show_banner = false
history_file = '/tmp/memdb_history'
log_level = "debug"
log_json = true
unknown_key = 1
`
	configPath := filepath.Join(tmpDir, "memdb.conf")
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	mgr := NewManager()
	if err := mgr.LoadFromFile(configPath); err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}

	cfg := mgr.Get()
	if cfg.Format != FormatJSON {
		t.Errorf("Expected format 'json', got '%s'", cfg.Format)
	}
	if cfg.Prompt != "db# " {
		t.Errorf("Expected prompt 'db# ', got '%s'", cfg.Prompt)
	}
	if cfg.ShowBanner {
		t.Errorf("Expected show_banner false")
	}
	if cfg.HistoryFile != "/tmp/memdb_history" {
		t.Errorf("Expected history_file '/tmp/memdb_history', got '%s'", cfg.HistoryFile)
	}
	if cfg.LogLevel != "debug" || !cfg.LogJSON {
		t.Errorf("Expected debug JSON logging, got %s/%v", cfg.LogLevel, cfg.LogJSON)
	}
	if cfg.ConfigFile != configPath {
		t.Errorf("Expected ConfigFile '%s', got '%s'", configPath, cfg.ConfigFile)
	}
}

func TestLoadFromFileErrors(t *testing.T) {
	tmpDir := t.TempDir()

	mgr := NewManager()
	if err := mgr.LoadFromFile(filepath.Join(tmpDir, "missing.conf")); err == nil {
		t.Error("Expected error for missing file")
	}

	bad := filepath.Join(tmpDir, "bad.conf")
	if err := os.WriteFile(bad, []byte("format\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := mgr.LoadFromFile(bad); err == nil || !strings.Contains(err.Error(), "line 1") {
		t.Errorf("Expected line number in parse error, got %v", err)
	}

	badBool := filepath.Join(tmpDir, "badbool.conf")
	if err := os.WriteFile(badBool, []byte("show_banner = maybe\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := mgr.LoadFromFile(badBool); err == nil {
		t.Error("Expected error for invalid show_banner")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv(EnvFormat, "PLAIN")
	t.Setenv(EnvPrompt, "> ")
	t.Setenv(EnvShowBanner, "0")
	t.Setenv(EnvLogLevel, "error")
	t.Setenv(EnvLogJSON, "1")

	mgr := NewManager()
	mgr.LoadFromEnv()
	cfg := mgr.Get()

	if cfg.Format != FormatPlain {
		t.Errorf("Expected format 'plain' from env, got '%s'", cfg.Format)
	}
	if cfg.Prompt != "> " {
		t.Errorf("Expected prompt '> ' from env, got '%s'", cfg.Prompt)
	}
	if cfg.ShowBanner {
		t.Errorf("Expected show_banner false from env")
	}
	if cfg.LogLevel != "error" || !cfg.LogJSON {
		t.Errorf("Expected error JSON logging from env, got %s/%v", cfg.LogLevel, cfg.LogJSON)
	}
}

func TestConfigPrecedence(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "memdb.conf")
	if err := os.WriteFile(configPath, []byte("format = \"json\"\nprompt = \"file> \"\n"), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	t.Setenv(EnvConfigFile, configPath)
	t.Setenv(EnvFormat, "plain")

	mgr := NewManager()
	if err := mgr.Load(""); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	cfg := mgr.Get()

	if cfg.Format != FormatPlain {
		t.Errorf("Expected env to override file format, got '%s'", cfg.Format)
	}
	if cfg.Prompt != "file> " {
		t.Errorf("Expected prompt from file, got '%s'", cfg.Prompt)
	}
	if cfg.ConfigFile != configPath {
		t.Errorf("Expected config file from %s, got '%s'", EnvConfigFile, cfg.ConfigFile)
	}
}

func TestExplicitPathWins(t *testing.T) {
	tmpDir := t.TempDir()
	envPath := filepath.Join(tmpDir, "env.conf")
	flagPath := filepath.Join(tmpDir, "flag.conf")
	os.WriteFile(envPath, []byte("prompt = \"env> \"\n"), 0644)
	os.WriteFile(flagPath, []byte("prompt = \"flag> \"\n"), 0644)

	t.Setenv(EnvConfigFile, envPath)

	mgr := NewManager()
	if err := mgr.Load(flagPath); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got := mgr.Get().Prompt; got != "flag> " {
		t.Errorf("Expected prompt from explicit file, got '%s'", got)
	}
}

func TestSaveAndReload(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "nested", "memdb.conf")

	cfg := DefaultConfig()
	cfg.Format = FormatJSON
	cfg.Prompt = "x> "
	cfg.ShowBanner = false
	if err := cfg.SaveToFile(path); err != nil {
		t.Fatalf("SaveToFile failed: %v", err)
	}

	mgr := NewManager()
	if err := mgr.LoadFromFile(path); err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}
	got := mgr.Get()
	if got.Format != FormatJSON || got.Prompt != "x> " || got.ShowBanner {
		t.Errorf("Round trip lost values: %+v", got)
	}
}

func TestConfigString(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ConfigFile = "/etc/memdb.conf"
	s := cfg.String()

	for _, want := range []string{"Format:", "table", "Log Level:", "/etc/memdb.conf"} {
		if !strings.Contains(s, want) {
			t.Errorf("String() missing %q:\n%s", want, s)
		}
	}
}

func TestManagerGetReturnsCopy(t *testing.T) {
	mgr := NewManager()
	cfg := mgr.Get()
	cfg.Format = "changed"
	if mgr.Get().Format != FormatTable {
		t.Error("Get must return a copy")
	}
}
