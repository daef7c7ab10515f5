package jungle

import (
	"fmt"
	"io"
	"os"

	buildinfo "github.com/arthur-debert/jungle/internal/version"
	"github.com/arthur-debert/jungle/pkg/commands"
	"github.com/arthur-debert/jungle/pkg/errors"
	"github.com/arthur-debert/jungle/pkg/logging"
	"github.com/arthur-debert/jungle/pkg/paths"
	"github.com/arthur-debert/jungle/pkg/style"
	"github.com/spf13/cobra"
)

// globalOptions are the persistent flags shared by every command
type globalOptions struct {
	verbosity   int
	releasesDir string

	// started is set once a command passed argument validation, so
	// errors before it are usage errors
	started bool
}

// options resolves the optional parent argument found at index idx
func (g *globalOptions) options(args []string, idx int) (commands.Options, error) {
	var arg string
	if len(args) > idx {
		arg = args[idx]
	}
	parent, err := paths.ResolveParent(arg)
	if err != nil {
		return commands.Options{}, err
	}
	return commands.Options{Parent: parent, ReleasesDir: g.releasesDir}, nil
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	return newRootCmd(&globalOptions{})
}

func newRootCmd(g *globalOptions) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "jungle",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: buildinfo.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			g.started = true
			logging.SetupLogger(g.verbosity)
			logging.LogCommand(cmd.Name(), args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return errors.New(errors.ErrInvalidInput, MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&g.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&g.releasesDir, "releases-dir", "", MsgFlagReleasesDir)

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return errors.Wrap(err, errors.ErrInvalidInput, "invalid flags")
	})

	rootCmd.AddGroup(&cobra.Group{ID: "lifecycle", Title: "LIFECYCLE:"})
	rootCmd.AddGroup(&cobra.Group{ID: "inspect", Title: "INSPECT:"})
	rootCmd.AddGroup(&cobra.Group{ID: "cleanup", Title: "CLEANUP:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})

	rootCmd.AddCommand(newInitCmd(g))
	rootCmd.AddCommand(newSetCmd(g))
	rootCmd.AddCommand(newUpgradeCmd(g))
	rootCmd.AddCommand(newDegradeCmd(g))
	rootCmd.AddCommand(newCurrentCmd(g))
	rootCmd.AddCommand(newStatusCmd(g))
	rootCmd.AddCommand(newListCmd(g))
	rootCmd.AddCommand(newPruneCmd(g))
	rootCmd.AddCommand(newDeleteCmd(g))
	rootCmd.AddCommand(newConfigCmd(g))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

// Execute runs the CLI with args and returns the process exit code.
// Errors are printed to stderr.
func Execute(args []string, stdout, stderr io.Writer) int {
	g := &globalOptions{}
	rootCmd := newRootCmd(g)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.Execute()
	if err == nil {
		return errors.ExitOK
	}

	format := style.FormatText
	if f, ok := stderr.(*os.File); ok {
		format = style.DetectFormat(f)
	}
	fmt.Fprintln(stderr, style.NewRenderer(stderr, format).Error(err))

	if !g.started && !errors.IsErrorCode(err, errors.ErrInvalidInput) {
		// cobra argument and command lookup errors are plain errors
		return errors.ExitUsage
	}
	return errors.ExitCode(err)
}

// usageArgs marks argument validation failures as usage errors
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return errors.Wrap(err, errors.ErrInvalidInput, "invalid arguments")
		}
		return nil
	}
}
