package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# todotxt configuration file
# Values can be overridden by TODOTXT_* environment variables or CLI flags

# todo.txt file (relative to project root, supports ~ and $VAR expansion)
todo_file = "todo.txt"

# JSON schema used by "todotxt check" (empty selects the embedded task schema)
# schema_file = "task.schema.json"

# Output format: text, table, json or yaml
format = "text"

# Number of lines decoded in parallel
workers = 4

# Stop decoding at the first rejected line
fail_fast = false

# Logging
log_level = "info"      # debug, info, warn, error
log_format = "text"     # text, json, logfmt
log_timestamps = false
log_caller = false
`
}
