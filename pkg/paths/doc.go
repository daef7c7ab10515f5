// Package paths provides centralized path handling for jungle.
//
// It resolves the jungle parent directory (the working directory unless
// one is given on the command line) exactly once at the CLI boundary, and
// locates jungle's own files following the XDG Base Directory
// specification:
//
//   - Config: $XDG_CONFIG_HOME/jungle/config.toml (user configuration)
//   - State:  $XDG_STATE_HOME/jungle/jungle.log (log file, see pkg/logging)
//
// # Environment Variables
//
//   - JUNGLE_CONFIG_DIR: Override the XDG config directory
//   - HOME: Used to expand a leading ~ in paths
package paths
