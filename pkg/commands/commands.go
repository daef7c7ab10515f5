// Package commands provides high-level command implementations for jungle.
//
// This package is the orchestration layer between the CLI and the engine.
// Each command takes an options struct, loads the configuration for the
// target jungle, opens it and returns a result struct the CLI renders.
// Commands never print.
package commands

import (
	"github.com/arthur-debert/jungle/pkg/config"
	"github.com/arthur-debert/jungle/pkg/filesystem"
	"github.com/arthur-debert/jungle/pkg/jungle"
	"github.com/arthur-debert/jungle/pkg/logging"
	"github.com/arthur-debert/jungle/pkg/types"
)

// Options are shared by every command
type Options struct {
	// Parent is the jungle directory, already resolved to an absolute path
	Parent string

	// ReleasesDir overrides releases.dir from configuration when set
	ReleasesDir string

	// Config, when set, is used instead of loading configuration
	Config *config.Config

	// FileSystem to use (defaults to OS filesystem)
	FileSystem types.FS
}

// LoadConfig returns the effective configuration for opts.Parent
func (o Options) LoadConfig() (*config.Config, error) {
	if o.Config != nil {
		return o.Config, nil
	}
	loadOpts := config.LoadOptions{Parent: o.Parent}
	if o.ReleasesDir != "" {
		loadOpts.Overrides = map[string]interface{}{"releases.dir": o.ReleasesDir}
	}
	return config.Load(loadOpts)
}

func (o Options) open() (*jungle.Jungle, *config.Config, error) {
	cfg, err := o.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	fs := o.FileSystem
	if fs == nil {
		fs = filesystem.NewOS()
	}
	j, err := jungle.New(fs, o.Parent, cfg)
	if err != nil {
		return nil, nil, err
	}
	logger := logging.GetLogger("commands")
	logger.Debug().
		Str("parent", j.Parent()).
		Str("releases", j.ReleasesRoot()).
		Str("link", j.LinkPath()).
		Msg("Opened jungle")
	return j, cfg, nil
}
