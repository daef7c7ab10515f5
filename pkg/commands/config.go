package commands

import (
	"github.com/arthur-debert/jungle/pkg/config"
	"github.com/arthur-debert/jungle/pkg/logging"
)

// ShowConfigOptions contains options for the config command
type ShowConfigOptions struct {
	Options

	// Defaults shows the embedded defaults file instead of the effective
	// configuration
	Defaults bool
}

// ShowConfig renders configuration as TOML
func ShowConfig(opts ShowConfigOptions) (string, error) {
	logger := logging.GetLogger("commands.config")
	logger.Debug().Bool("defaults", opts.Defaults).Msg("Starting config command")

	if opts.Defaults {
		return config.DefaultsContent(), nil
	}

	cfg, err := opts.LoadConfig()
	if err != nil {
		return "", err
	}
	out, err := config.Render(cfg)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
