// Package config loads, normalizes, and validates aafcanon configuration.
//
// Configuration lives in a TOML file (default ~/.config/aafcanon/config.toml)
// and covers output locations, the export database path, and logging. Load
// applies defaults, expands ~ paths to absolute form, and validates the
// result so commands can rely on a well-formed Config.
package config
