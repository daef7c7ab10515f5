package commands

import (
	"time"

	"github.com/arthur-debert/jungle/pkg/logging"
	"github.com/arthur-debert/jungle/pkg/prune"
	"github.com/arthur-debert/jungle/pkg/types"
	"github.com/samber/mo"
)

// DeleteOptions contains options for the delete command
type DeleteOptions struct {
	Options

	// Version is the version to delete, as given by the user
	Version string

	// DryRun validates without deleting
	DryRun bool
}

// Delete removes one version directory
func Delete(opts DeleteOptions) (*types.DeleteResult, error) {
	logger := logging.GetLogger("commands.delete")
	logger.Debug().Str("version", opts.Version).Bool("dryRun", opts.DryRun).Msg("Starting delete command")
	done := logging.LogOperationStart(logger, "delete")
	defer done()

	j, _, err := opts.open()
	if err != nil {
		return nil, err
	}
	result, err := j.Delete(opts.Version, opts.DryRun)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// PruneOptions contains options for the prune command. When no criterion
// is set the [prune] section of the configuration is used instead;
// command line criteria are never mixed with configured ones.
type PruneOptions struct {
	Options

	Age        mo.Option[time.Duration]
	Iterations mo.Option[int]
	Size       mo.Option[int64]

	// DryRun lists what would be removed
	DryRun bool
}

// Policy returns the criteria given on the command line
func (o PruneOptions) Policy() prune.Policy {
	return prune.Policy{Age: o.Age, Iterations: o.Iterations, Size: o.Size}
}

// Prune removes old versions
func Prune(opts PruneOptions) (*types.PruneResult, error) {
	logger := logging.GetLogger("commands.prune")
	done := logging.LogOperationStart(logger, "prune")
	defer done()

	j, cfg, err := opts.open()
	if err != nil {
		return nil, err
	}

	policy := opts.Policy()
	if policy.Empty() {
		policy = cfg.PrunePolicy()
		logger.Debug().Msg("Using prune criteria from configuration")
	}

	result, err := j.Prune(policy, opts.DryRun)
	if err != nil {
		// A partial run still reports what was removed
		if result.Removed != nil {
			return &result, err
		}
		return nil, err
	}
	return &result, nil
}
