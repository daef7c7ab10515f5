package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/jungle/pkg/errors"
)

// Environment variable names
const (
	// EnvJungleConfigDir overrides the XDG config directory for jungle
	EnvJungleConfigDir = "JUNGLE_CONFIG_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

const (
	// JungleDirName is the directory name for jungle-specific files
	JungleDirName = "jungle"

	// UserConfigFile is the name of the user configuration file
	UserConfigFile = "config.toml"

	// ParentConfigFile is the name of the per-jungle configuration file
	ParentConfigFile = ".jungle.toml"
)

// ResolveParent turns the optional parent argument into an absolute,
// cleaned path. An empty argument means the current working directory.
// The result is not checked for existence; the engine does that.
func ResolveParent(arg string) (string, error) {
	parent := arg
	if parent == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", errors.Wrap(err, errors.ErrFileAccess, "failed to get working directory")
		}
		parent = wd
	}

	abs, err := filepath.Abs(ExpandHome(parent))
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path for %s", parent)
	}
	return abs, nil
}

// ConfigDir returns the directory holding the user configuration
func ConfigDir() string {
	if dir := os.Getenv(EnvJungleConfigDir); dir != "" {
		return ExpandHome(dir)
	}
	xdg.Reload()
	return filepath.Join(xdg.ConfigHome, JungleDirName)
}

// UserConfigPath returns the path of the user configuration file
func UserConfigPath() string {
	return filepath.Join(ConfigDir(), UserConfigFile)
}

// ParentConfigPath returns the path of the per-jungle configuration file
func ParentConfigPath(parent string) string {
	return filepath.Join(parent, ParentConfigFile)
}

// ExpandHome expands ~ to the home directory
func ExpandHome(path string) string {
	if path == "" {
		return path
	}

	if path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			// Fallback to HOME env var
			homeDir = os.Getenv(EnvHome)
			if homeDir == "" {
				// Can't expand, return as-is
				return path
			}
		}

		if len(path) == 1 {
			return homeDir
		}

		// Handle both ~/ and ~
		if path[1] == '/' || path[1] == filepath.Separator {
			return filepath.Join(homeDir, path[2:])
		}

		// ~something (not the user's home)
		return path
	}

	return path
}
