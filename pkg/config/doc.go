// Package config handles configuration management for jungle.
// It layers embedded defaults, the user config file, a per-jungle
// .jungle.toml, JUNGLE_ environment variables and command-line
// overrides with koanf, then decodes and validates the result.
package config
