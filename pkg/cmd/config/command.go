package config

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/birdayz/n85/pkg/app"
	"github.com/birdayz/n85/pkg/config"
)

// NewCommand returns the "n85 config" command with subcommands.
func NewCommand(a *app.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Handle n85 configuration",
	}

	cmd.AddCommand(
		newViewCommand(a),
		newSetCommand(a),
		newPathCommand(a),
	)

	return cmd
}

func newViewCommand(a *app.App) *cobra.Command {
	var noHeaderFlag bool

	cmd := &cobra.Command{
		Use:   "view",
		Short: "Display the effective configuration",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			w := app.NewTabWriter(a.OutWriter)
			if !noHeaderFlag {
				fmt.Fprintf(w, "KEY\tVALUE\t\n")
			}
			fmt.Fprintf(w, "block-size\t%v\t\n", a.Cfg.BlockSize)
			fmt.Fprintf(w, "trim-space\t%v\t\n", a.Cfg.TrimSpace)
			fmt.Fprintf(w, "output\t%v\t\n", a.Cfg.Output)
			w.Flush()
		},
	}
	cmd.Flags().BoolVar(&noHeaderFlag, "no-headers", false, "Hide table headers")
	return cmd
}

func newSetCommand(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:       "set KEY VALUE",
		Short:     "Set a configuration value and write the config file",
		Args:      cobra.ExactArgs(2),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			switch {
			case len(args) == 0:
				return config.Keys, cobra.ShellCompDirectiveNoFileComp
			case args[0] == "output":
				return config.OutputFormats, cobra.ShellCompDirectiveNoFileComp
			case args[0] == "trim-space":
				return []string{"true", "false"}, cobra.ShellCompDirectiveNoFileComp
			}
			return nil, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// Reread so a --block-size override is not persisted.
			cfg, err := config.ReadConfig(a.CfgFile)
			if err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}
			if err := cfg.Set(args[0], args[1]); err != nil {
				return err
			}
			if err := cfg.Write(); err != nil {
				return fmt.Errorf("unable to write config: %w", err)
			}
			a.Cfg = cfg
			fmt.Fprintf(a.OutWriter, "Set %v to %v.\n", args[0], args[1])
			return nil
		},
	}
}

func newPathCommand(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the location of the config file",
		Args:  cobra.NoArgs,
		// The file may be unparsable; that is often why its path is wanted.
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.BindIO(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.ResolvePath(a.CfgFile)
			if err != nil {
				return err
			}
			fmt.Fprintln(a.OutWriter, path)
			return nil
		},
	}
}
