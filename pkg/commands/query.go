package commands

import (
	"github.com/arthur-debert/jungle/pkg/logging"
	"github.com/arthur-debert/jungle/pkg/types"
)

// CurrentOptions contains options for the current command
type CurrentOptions struct {
	Options
}

// Current reads the current link
func Current(opts CurrentOptions) (*types.CurrentResult, error) {
	logger := logging.GetLogger("commands.current")
	done := logging.LogOperationStart(logger, "current")
	defer done()

	j, _, err := opts.open()
	if err != nil {
		return nil, err
	}
	target, err := j.Current()
	if err != nil {
		return nil, err
	}
	return &types.CurrentResult{
		Version:   target.Version.String(),
		Directory: target.Name,
		Target:    target.Raw,
	}, nil
}

// StatusOptions contains options for the status command
type StatusOptions struct {
	Options
}

// Status tells whether current is at Head
func Status(opts StatusOptions) (*types.StatusResult, error) {
	logger := logging.GetLogger("commands.status")
	done := logging.LogOperationStart(logger, "status")
	defer done()

	j, _, err := opts.open()
	if err != nil {
		return nil, err
	}
	result, err := j.Status()
	if err != nil {
		return nil, err
	}
	logger.Info().Str("state", result.State).Str("current", result.Current).Str("head", result.Head).
		Msg("Jungle status")
	return &result, nil
}

// ListOptions contains options for the list command
type ListOptions struct {
	Options
}

// List returns every version of the jungle
func List(opts ListOptions) (*types.ListResult, error) {
	logger := logging.GetLogger("commands.list")
	done := logging.LogOperationStart(logger, "list")
	defer done()

	j, _, err := opts.open()
	if err != nil {
		return nil, err
	}
	result, err := j.List()
	if err != nil {
		return nil, err
	}
	return &result, nil
}
