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
Package logging provides the structured component logger used across memdb.

  - Levels DEBUG, INFO, WARN, ERROR with a global threshold
  - Key-value fields after the message
  - Human-readable text or one JSON object per line
  - Query contexts that tag every line of one Execute call with the same ID

Usage:

	logger := logging.NewLogger("executor")
	logger.Info("table created", "table", "users", "columns", 2)

	qc := logging.NewQueryContext("select id from users where id < 2")
	qc.LogComplete(logger, "ok", "rows", 2)
*/
package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Level represents the severity of a log message.
type Level int

const (
	// DEBUG level for detailed debugging information.
	DEBUG Level = iota
	// INFO level for general operational information.
	INFO
	// WARN level for warning conditions.
	WARN
	// ERROR level for error conditions.
	ERROR
)

// String returns the string representation of the log level.
func (l Level) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel parses a string into a Level. Unknown names map to INFO.
func ParseLevel(s string) Level {
	switch strings.ToLower(s) {
	case "debug":
		return DEBUG
	case "info":
		return INFO
	case "warn", "warning":
		return WARN
	case "error":
		return ERROR
	default:
		return INFO
	}
}

// Entry represents a single log entry with all its metadata.
type Entry struct {
	Timestamp time.Time              `json:"timestamp"`
	Level     string                 `json:"level"`
	Component string                 `json:"component"`
	Message   string                 `json:"message"`
	Fields    map[string]interface{} `json:"fields,omitempty"`
}

// Logger provides structured logging for one component.
type Logger struct {
	component string
	mu        sync.Mutex
}

// Config holds logger configuration options.
type Config struct {
	Level    Level
	Output   io.Writer
	JSONMode bool
	Color    bool
}

// DefaultConfig returns the default logger configuration. Logs go to stderr
// so they never interleave with result tables on stdout.
func DefaultConfig() Config {
	return Config{
		Level:    WARN,
		Output:   os.Stderr,
		JSONMode: false,
		Color:    false,
	}
}

var (
	globalConfig = DefaultConfig()
	globalMu     sync.RWMutex
)

// Configure replaces the global logger configuration.
func Configure(cfg Config) {
	globalMu.Lock()
	defer globalMu.Unlock()
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}
	globalConfig = cfg
}

// SetGlobalLevel sets the global log level.
func SetGlobalLevel(level Level) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalConfig.Level = level
}

// SetGlobalOutput sets the global log output.
func SetGlobalOutput(w io.Writer) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalConfig.Output = w
}

// SetJSONMode enables or disables JSON output mode.
func SetJSONMode(enabled bool) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalConfig.JSONMode = enabled
}

// NewLogger creates a new Logger for the specified component.
func NewLogger(component string) *Logger {
	return &Logger{component: component}
}

// Component returns the component name the logger was created with.
func (l *Logger) Component() string {
	return l.component
}

func (l *Logger) log(level Level, msg string, args ...interface{}) {
	globalMu.RLock()
	cfg := globalConfig
	globalMu.RUnlock()

	if level < cfg.Level {
		return
	}

	entry := Entry{
		Timestamp: time.Now().UTC(),
		Level:     level.String(),
		Component: l.component,
		Message:   msg,
		Fields:    fieldsFromArgs(args),
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if cfg.JSONMode {
		writeJSON(cfg.Output, entry)
	} else {
		writeText(cfg.Output, entry, cfg.Color)
	}
}

// fieldsFromArgs turns alternating key/value arguments into a map.
func fieldsFromArgs(args []interface{}) map[string]interface{} {
	if len(args) == 0 {
		return nil
	}
	fields := make(map[string]interface{}, len(args)/2+1)
	for i := 0; i < len(args)-1; i += 2 {
		key, ok := args[i].(string)
		if !ok {
			key = fmt.Sprintf("arg%d", i)
		}
		fields[key] = args[i+1]
	}
	if len(args)%2 != 0 {
		fields["extra"] = args[len(args)-1]
	}
	return fields
}

func writeJSON(w io.Writer, entry Entry) {
	for k, v := range entry.Fields {
		if err, ok := v.(error); ok {
			entry.Fields[k] = err.Error()
		}
	}
	data, err := json.Marshal(entry)
	if err != nil {
		fmt.Fprintf(w, "ERROR: failed to marshal log entry: %v\n", err)
		return
	}
	fmt.Fprintln(w, string(data))
}

// writeText writes the entry in human-readable text format:
//
//	2006-01-02T15:04:05.000Z [LEVEL] [component] message key=value ...
func writeText(w io.Writer, entry Entry, color bool) {
	timestamp := entry.Timestamp.Format("2006-01-02T15:04:05.000Z")

	levelColor, resetColor := "", ""
	if color {
		resetColor = "\033[0m"
		switch entry.Level {
		case "DEBUG":
			levelColor = "\033[36m"
		case "INFO":
			levelColor = "\033[32m"
		case "WARN":
			levelColor = "\033[33m"
		case "ERROR":
			levelColor = "\033[31m"
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s[%-5s]%s [%s] %s",
		timestamp, levelColor, entry.Level, resetColor, entry.Component, entry.Message)

	keys := make([]string, 0, len(entry.Fields))
	for k := range entry.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&sb, " %s=%v", k, entry.Fields[k])
	}

	fmt.Fprintln(w, sb.String())
}

// Debug logs a message at DEBUG level.
func (l *Logger) Debug(msg string, args ...interface{}) {
	l.log(DEBUG, msg, args...)
}

// Info logs a message at INFO level.
func (l *Logger) Info(msg string, args ...interface{}) {
	l.log(INFO, msg, args...)
}

// Warn logs a message at WARN level.
func (l *Logger) Warn(msg string, args ...interface{}) {
	l.log(WARN, msg, args...)
}

// Error logs a message at ERROR level.
func (l *Logger) Error(msg string, args ...interface{}) {
	l.log(ERROR, msg, args...)
}

// ============================================================================
// Query Tracking
// ============================================================================

// QueryContext follows one Execute call from tokenizing to its result.
type QueryContext struct {
	ID        string
	StartTime time.Time
	Query     string
	Command   string
}

// NewQueryContext creates a query context with a fresh random ID.
func NewQueryContext(query string) *QueryContext {
	command := ""
	if fields := strings.Fields(query); len(fields) > 0 {
		command = strings.ToLower(fields[0])
	}
	return &QueryContext{
		ID:        uuid.New().String(),
		StartTime: time.Now(),
		Query:     query,
		Command:   command,
	}
}

// Duration returns the duration since the query started.
func (q *QueryContext) Duration() time.Duration {
	return time.Since(q.StartTime)
}

// DurationMs returns the duration in milliseconds.
func (q *QueryContext) DurationMs() float64 {
	return float64(q.Duration().Microseconds()) / 1000.0
}

// LogStart logs the raw query text at DEBUG level.
func (q *QueryContext) LogStart(logger *Logger) {
	logger.Debug("Query received", "query_id", q.ID, "command", q.Command, "query", q.Query)
}

// LogComplete logs a completed query.
func (q *QueryContext) LogComplete(logger *Logger, status string, args ...interface{}) {
	baseArgs := []interface{}{
		"query_id", q.ID,
		"command", q.Command,
		"status", status,
		"duration_ms", fmt.Sprintf("%.2f", q.DurationMs()),
	}
	baseArgs = append(baseArgs, args...)
	logger.Debug("Query completed", baseArgs...)
}

// LogError logs a failed query.
func (q *QueryContext) LogError(logger *Logger, err error, args ...interface{}) {
	baseArgs := []interface{}{
		"query_id", q.ID,
		"command", q.Command,
		"status", "error",
		"error", err,
		"duration_ms", fmt.Sprintf("%.2f", q.DurationMs()),
	}
	baseArgs = append(baseArgs, args...)
	logger.Warn("Query failed", baseArgs...)
}
