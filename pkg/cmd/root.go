package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/birdayz/n85/pkg/app"
	"github.com/birdayz/n85/pkg/cmd/completion"
	n85config "github.com/birdayz/n85/pkg/cmd/config"
	"github.com/birdayz/n85/pkg/cmd/decode"
	"github.com/birdayz/n85/pkg/cmd/encode"
	"github.com/birdayz/n85/pkg/cmd/verify"
)

// Execute is the single entry point for the CLI.
func Execute(version, commit string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := NewRootCommand(app.New())
	root.Version = fmt.Sprintf("%s (%s)", version, commit)
	return root.ExecuteContext(ctx)
}

// NewRootCommand builds the full command tree around a. Without a
// subcommand it encodes, or decodes when -d is given.
func NewRootCommand(a *app.App) *cobra.Command {
	var (
		decodeFlag bool
		inputMode  = app.InputModeStream
	)

	root := &cobra.Command{
		Use:   "n85 [FILE]",
		Short: "Encode or decode N85 text, reading FILE or stdin",
		Long: `N85 is a base-85 encoding using the printable ASCII characters from '(' to '}'
without the backslash, making the output safe for shells and most text formats.

Without a subcommand, n85 encodes FILE (or stdin) to stdout. With -d it decodes.`,
		Example: `  echo -n 'Abracadabra!' | n85
  n85 -d < payload.n85 > payload.bin
  n85 encode --input-mode line < tokens.txt`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.BindIO(cmd)
			return a.InitConfig()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			op := app.OpEncode
			if decodeFlag {
				op = app.OpDecode
			}
			return a.Run(cmd.Context(), op, inputMode, args)
		},
	}

	root.PersistentFlags().StringVar(&a.CfgFile, "config", "", "config file (default is $HOME/.n85/config)")
	root.PersistentFlags().BoolVarP(&a.Verbose, "verbose", "v", false, "Log progress to stderr")
	root.PersistentFlags().IntVar(&a.BlockSizeFlag, "block-size", 0, "Raw bytes per streamed block, a multiple of 4 (overrides config)")

	root.Flags().BoolVarP(&decodeFlag, "decode", "d", false, "Decode instead of encode")
	root.Flags().Var(&inputMode, "input-mode", "Input mode: stream, line, full")
	if err := root.RegisterFlagCompletionFunc("input-mode", app.CompleteInputMode); err != nil {
		panic(fmt.Sprintf("Failed to register flag completion: %v", err))
	}

	root.AddCommand(
		encode.NewCommand(a),
		decode.NewCommand(a),
		verify.NewCommand(a),
		n85config.NewCommand(a),
		completion.NewCommand(root, a),
	)

	a.Root = root
	return root
}
