package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Environment variable names.
const (
	EnvTodoFile      = "TODOTXT_TODO"
	EnvSchemaFile    = "TODOTXT_SCHEMA"
	EnvFormat        = "TODOTXT_FORMAT"
	EnvWorkers       = "TODOTXT_WORKERS"
	EnvFailFast      = "TODOTXT_FAIL_FAST"
	EnvLogLevel      = "TODOTXT_LOG_LEVEL"
	EnvLogFormat     = "TODOTXT_LOG_FORMAT"
	EnvLogTimestamps = "TODOTXT_LOG_TIMESTAMPS"
	EnvLogCaller     = "TODOTXT_LOG_CALLER"
)

// loadFromEnv overrides config from environment variables.
// If sources is non-nil, it tracks the source of each value.
func loadFromEnv(cfg *Config, sources map[string]ConfigSource) error {
	setEnv := func(field string) {
		if sources != nil {
			sources[field] = SourceEnv
		}
	}

	if v := os.Getenv(EnvTodoFile); v != "" {
		cfg.TodoFile = v
		setEnv("todo_file")
	}
	if v := os.Getenv(EnvSchemaFile); v != "" {
		cfg.SchemaFile = v
		setEnv("schema_file")
	}
	if v := os.Getenv(EnvFormat); v != "" {
		cfg.Format = v
		setEnv("format")
	}
	if v := os.Getenv(EnvWorkers); v != "" {
		i, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s: %w", EnvWorkers, err)
		}
		cfg.Workers = i
		setEnv("workers")
	}
	if v := os.Getenv(EnvFailFast); v != "" {
		cfg.FailFast = boolFromString(v)
		setEnv("fail_fast")
	}

	// Logging configuration
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
		setEnv("log_level")
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		cfg.LogFormat = v
		setEnv("log_format")
	}
	if v := os.Getenv(EnvLogTimestamps); v != "" {
		cfg.LogTimestamps = boolFromString(v)
		setEnv("log_timestamps")
	}
	if v := os.Getenv(EnvLogCaller); v != "" {
		cfg.LogCaller = boolFromString(v)
		setEnv("log_caller")
	}

	return nil
}

// boolFromString parses a boolean from a string.
func boolFromString(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "1" || s == "true" || s == "yes" || s == "on"
}
