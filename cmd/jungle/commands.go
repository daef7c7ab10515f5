package jungle

import (
	"fmt"
	"os"
	"time"

	buildinfo "github.com/arthur-debert/jungle/internal/version"
	"github.com/arthur-debert/jungle/pkg/commands"
	"github.com/arthur-debert/jungle/pkg/config"
	"github.com/arthur-debert/jungle/pkg/style"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
)

func newInitCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "init [parent]",
		Short:   MsgInitShort,
		GroupID: "lifecycle",
		Args:    usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := g.options(args, 0)
			if err != nil {
				return err
			}
			_, err = commands.Init(commands.InitOptions{Options: opts})
			return err
		},
	}
}

func newSetCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "set <version> [parent]",
		Short:   MsgSetShort,
		GroupID: "lifecycle",
		Args:    usageArgs(cobra.RangeArgs(1, 2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := g.options(args, 1)
			if err != nil {
				return err
			}
			_, err = commands.Set(commands.SetOptions{Options: opts, Version: args[0]})
			return err
		},
	}
}

func newUpgradeCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "upgrade [parent]",
		Aliases: []string{"latest"},
		Short:   MsgUpgradeShort,
		Long:    MsgUpgradeLong,
		GroupID: "lifecycle",
		Args:    usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := g.options(args, 0)
			if err != nil {
				return err
			}
			_, err = commands.Upgrade(commands.UpgradeOptions{Options: opts})
			return err
		},
	}
}

func newDegradeCmd(g *globalOptions) *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:     "degrade [parent]",
		Aliases: []string{"rollback"},
		Short:   MsgDegradeShort,
		Long:    MsgDegradeLong,
		GroupID: "lifecycle",
		Args:    usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := g.options(args, 0)
			if err != nil {
				return err
			}
			result, err := commands.Degrade(commands.DegradeOptions{Options: opts, DryRun: dryRun})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), result.Version)
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, MsgFlagDryRun)
	return cmd
}

func newCurrentCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "current [parent]",
		Short:   MsgCurrentShort,
		GroupID: "inspect",
		Args:    usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := g.options(args, 0)
			if err != nil {
				return err
			}
			result, err := commands.Current(commands.CurrentOptions{Options: opts})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), result.Version)
			return nil
		},
	}
}

func newStatusCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "status [parent]",
		Short:   MsgStatusShort,
		Long:    MsgStatusLong,
		GroupID: "inspect",
		Args:    usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := g.options(args, 0)
			if err != nil {
				return err
			}
			result, err := commands.Status(commands.StatusOptions{Options: opts})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), result.State)
			return nil
		},
	}
}

func newListCmd(g *globalOptions) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:     "list [parent]",
		Aliases: []string{"ls"},
		Short:   MsgListShort,
		GroupID: "inspect",
		Args:    usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			renderer, err := newRenderer(cmd, format)
			if err != nil {
				return err
			}
			opts, err := g.options(args, 0)
			if err != nil {
				return err
			}
			result, err := commands.List(commands.ListOptions{Options: opts})
			if err != nil {
				return err
			}
			return renderer.List(result)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", MsgFlagFormat)
	return cmd
}

func newPruneCmd(g *globalOptions) *cobra.Command {
	var (
		ageDays    int
		iterations int
		size       string
		dryRun     bool
		format     string
	)
	cmd := &cobra.Command{
		Use:     "prune [parent]",
		Short:   MsgPruneShort,
		Long:    MsgPruneLong,
		Example: MsgPruneExample,
		GroupID: "cleanup",
		Args:    usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			renderer, err := newRenderer(cmd, format)
			if err != nil {
				return err
			}
			opts, err := g.options(args, 0)
			if err != nil {
				return err
			}

			pruneOpts := commands.PruneOptions{Options: opts, DryRun: dryRun}
			if cmd.Flags().Changed("age") {
				pruneOpts.Age = mo.Some(time.Duration(ageDays) * 24 * time.Hour)
			}
			if cmd.Flags().Changed("iterations") {
				pruneOpts.Iterations = mo.Some(iterations)
			}
			if cmd.Flags().Changed("size") {
				n, err := config.ParseByteSize(size)
				if err != nil {
					return err
				}
				pruneOpts.Size = mo.Some(n)
			}

			result, err := commands.Prune(pruneOpts)
			if result != nil && (dryRun || format != "") {
				if rerr := renderer.Prune(result); rerr != nil && err == nil {
					err = rerr
				}
			}
			return err
		},
	}
	cmd.Flags().IntVar(&ageDays, "age", 0, MsgFlagAge)
	cmd.Flags().IntVar(&iterations, "iterations", 0, MsgFlagIterations)
	cmd.Flags().StringVar(&size, "size", "", MsgFlagSize)
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, MsgFlagDryRun)
	cmd.Flags().StringVarP(&format, "format", "f", "", MsgFlagFormat)
	return cmd
}

func newDeleteCmd(g *globalOptions) *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:     "delete <version> [parent]",
		Aliases: []string{"rm"},
		Short:   MsgDeleteShort,
		Long:    MsgDeleteLong,
		GroupID: "cleanup",
		Args:    usageArgs(cobra.RangeArgs(1, 2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := g.options(args, 1)
			if err != nil {
				return err
			}
			result, err := commands.Delete(commands.DeleteOptions{Options: opts, Version: args[0], DryRun: dryRun})
			if err != nil {
				return err
			}
			if dryRun {
				fmt.Fprintf(cmd.OutOrStdout(), MsgWouldDelete, result.Directory)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, MsgFlagDryRun)
	return cmd
}

func newConfigCmd(g *globalOptions) *cobra.Command {
	var defaults bool
	cmd := &cobra.Command{
		Use:     "config [parent]",
		Short:   MsgConfigShort,
		GroupID: "misc",
		Args:    usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := g.options(args, 0)
			if err != nil {
				return err
			}
			out, err := commands.ShowConfig(commands.ShowConfigOptions{Options: opts, Defaults: defaults})
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().BoolVar(&defaults, "defaults", false, MsgFlagDefaults)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    usageArgs(cobra.NoArgs),
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), buildinfo.Info())
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		GroupID:               "misc",
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  usageArgs(cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs)),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(cmd.OutOrStdout(), true)
			case "zsh":
				return cmd.Root().GenZshCompletion(cmd.OutOrStdout())
			case "fish":
				return cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
			}
		},
	}
}

// newRenderer picks the output format: the --format flag when given,
// otherwise detected from stdout
func newRenderer(cmd *cobra.Command, flag string) (*style.Renderer, error) {
	format, err := style.ParseFormat(flag)
	if err != nil {
		return nil, err
	}
	out := cmd.OutOrStdout()
	if f, ok := out.(*os.File); ok {
		format = format.Resolve(f)
	} else if format == style.FormatAuto {
		format = style.FormatText
	}
	return style.NewRenderer(out, format), nil
}
