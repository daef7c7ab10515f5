package commands

import (
	"github.com/arthur-debert/jungle/pkg/logging"
	"github.com/arthur-debert/jungle/pkg/types"
)

// InitOptions contains options for the init command
type InitOptions struct {
	Options
}

// Init points current at Head in a jungle that has no current link yet
func Init(opts InitOptions) (*types.SwitchResult, error) {
	logger := logging.GetLogger("commands.init")
	done := logging.LogOperationStart(logger, "init")
	defer done()

	j, _, err := opts.open()
	if err != nil {
		return nil, err
	}
	result, err := j.Init()
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// SetOptions contains options for the set command
type SetOptions struct {
	Options

	// Version is the version to switch to, as given by the user
	Version string
}

// Set points current at a given version
func Set(opts SetOptions) (*types.SwitchResult, error) {
	logger := logging.GetLogger("commands.set")
	logger.Debug().Str("version", opts.Version).Msg("Starting set command")
	done := logging.LogOperationStart(logger, "set")
	defer done()

	j, _, err := opts.open()
	if err != nil {
		return nil, err
	}
	result, err := j.Set(opts.Version)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// UpgradeOptions contains options for the upgrade command
type UpgradeOptions struct {
	Options
}

// Upgrade points current at Head
func Upgrade(opts UpgradeOptions) (*types.SwitchResult, error) {
	logger := logging.GetLogger("commands.upgrade")
	done := logging.LogOperationStart(logger, "upgrade")
	defer done()

	j, _, err := opts.open()
	if err != nil {
		return nil, err
	}
	result, err := j.Upgrade()
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// DegradeOptions contains options for the degrade command
type DegradeOptions struct {
	Options

	// DryRun reports the target without switching
	DryRun bool
}

// Degrade points current at Head-1
func Degrade(opts DegradeOptions) (*types.SwitchResult, error) {
	logger := logging.GetLogger("commands.degrade")
	logger.Debug().Bool("dryRun", opts.DryRun).Msg("Starting degrade command")
	done := logging.LogOperationStart(logger, "degrade")
	defer done()

	j, _, err := opts.open()
	if err != nil {
		return nil, err
	}
	result, err := j.Degrade(opts.DryRun)
	if err != nil {
		return nil, err
	}
	return &result, nil
}
