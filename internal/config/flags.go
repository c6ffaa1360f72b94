package config

import (
	"flag"
)

// flagToSource maps flag names to source field names.
var flagToSource = map[string]string{
	"todo":           "todo_file",
	"schema":         "schema_file",
	"format":         "format",
	"workers":        "workers",
	"fail-fast":      "fail_fast",
	"log-level":      "log_level",
	"log-format":     "log_format",
	"log-timestamps": "log_timestamps",
	"log-caller":     "log_caller",
}

// parseFlags defines the global CLI flags on fs and parses args.
// Flag defaults are the values accumulated from the lower layers, so an
// unset flag leaves cfg untouched. If sources is non-nil, explicitly set
// flags are recorded as SourceFlag.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string, sources map[string]ConfigSource) error {
	if fs == nil {
		fs = flag.NewFlagSet("todotxt", flag.ContinueOnError)
	}

	// Paths
	fs.StringVar(&cfg.TodoFile, "todo", cfg.TodoFile, "Path to todo.txt file")
	fs.StringVar(&cfg.SchemaFile, "schema", cfg.SchemaFile, "Path to task JSON schema (default: embedded)")

	// Output
	fs.StringVar(&cfg.Format, "format", cfg.Format, "Output format (text, table, json, yaml)")

	// Decoding
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "Number of lines decoded in parallel")
	fs.BoolVar(&cfg.FailFast, "fail-fast", cfg.FailFast, "Stop decoding at the first rejected line")

	// Logging
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text, json, logfmt)")
	fs.BoolVar(&cfg.LogTimestamps, "log-timestamps", cfg.LogTimestamps, "Show timestamps in logs")
	fs.BoolVar(&cfg.LogCaller, "log-caller", cfg.LogCaller, "Show caller location in logs")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if sources != nil {
		fs.Visit(func(f *flag.Flag) {
			if fieldName, ok := flagToSource[f.Name]; ok {
				sources[fieldName] = SourceFlag
			}
		})
	}

	return nil
}
