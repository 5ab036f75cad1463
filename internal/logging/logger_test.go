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

package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func captureLogs(t *testing.T, cfg Config) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	cfg.Output = &buf
	Configure(cfg)
	t.Cleanup(func() { Configure(DefaultConfig()) })
	return &buf
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
	}{
		{"debug", DEBUG},
		{"INFO", INFO},
		{"Warn", WARN},
		{"warning", WARN},
		{"error", ERROR},
		{"bogus", INFO},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.input); got != tt.expected {
			t.Errorf("ParseLevel(%q) = %s, want %s", tt.input, got, tt.expected)
		}
	}
}

func TestLevelFiltering(t *testing.T) {
	buf := captureLogs(t, Config{Level: WARN})
	logger := NewLogger("test")

	logger.Debug("hidden")
	logger.Info("hidden")
	logger.Warn("shown", "table", "users")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("messages below WARN were written: %q", out)
	}
	if !strings.Contains(out, "[WARN ] [test] shown table=users") {
		t.Errorf("unexpected text line: %q", out)
	}
}

func TestJSONMode(t *testing.T) {
	buf := captureLogs(t, Config{Level: DEBUG, JSONMode: true})
	NewLogger("executor").Error("boom", "error", errors.New("bad"), "rows", 2)

	var entry Entry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("invalid JSON %q: %v", buf.String(), err)
	}
	if entry.Level != "ERROR" || entry.Component != "executor" || entry.Message != "boom" {
		t.Errorf("unexpected entry %+v", entry)
	}
	if entry.Fields["error"] != "bad" {
		t.Errorf("errors should be logged as strings, got %v", entry.Fields["error"])
	}
}

func TestOddArgs(t *testing.T) {
	fields := fieldsFromArgs([]interface{}{"a", 1, 2, "b", "dangling"})
	if fields["a"] != 1 || fields["arg2"] != "b" || fields["extra"] != "dangling" {
		t.Errorf("unexpected fields %v", fields)
	}
}

func TestQueryContext(t *testing.T) {
	buf := captureLogs(t, Config{Level: DEBUG})
	logger := NewLogger("database")

	qc := NewQueryContext("  SELECT id from users where id")
	if qc.Command != "select" {
		t.Errorf("expected command select, got %q", qc.Command)
	}
	if _, err := uuid.Parse(qc.ID); err != nil {
		t.Errorf("query ID is not a UUID: %v", err)
	}

	qc.LogStart(logger)
	qc.LogComplete(logger, "SELECT 1", "rows", 1)
	qc.LogError(logger, errors.New("nope"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %q", len(lines), buf.String())
	}
	for _, line := range lines {
		if !strings.Contains(line, "query_id="+qc.ID) {
			t.Errorf("line missing query id: %q", line)
		}
	}
	if !strings.Contains(lines[2], "[WARN ]") {
		t.Errorf("failures should log at WARN: %q", lines[2])
	}
}
