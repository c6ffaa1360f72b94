// Package config handles configuration loading and defaults.
//
// Configuration is loaded from multiple sources in priority order:
// 1. Built-in defaults
// 2. User config file (~/.todotxt/todotxt.toml or OS-specific config directory)
// 3. Project config file (todotxt.toml or .todotxt.toml in the project root)
// 4. Environment variables (TODOTXT_*)
// 5. CLI flags
//
// Each level overrides the previous one, so CLI flags take precedence.
//
// User-level config locations:
// - ~/.todotxt/todotxt.toml (preferred)
// - Windows: %APPDATA%\todotxt\todotxt.toml
// - macOS: ~/Library/Application Support/todotxt/todotxt.toml
// - Linux/BSD: $XDG_CONFIG_HOME/todotxt/todotxt.toml or ~/.config/todotxt/todotxt.toml
//
// Project-level config locations (overrides user config):
// - ./todotxt.toml (preferred)
// - ./.todotxt.toml
package config
