package decode

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/birdayz/n85/pkg/app"
)

// NewCommand returns the "n85 decode" command.
func NewCommand(a *app.App) *cobra.Command {
	var (
		noTrimFlag bool
		inputMode  = app.InputModeStream
	)

	cmd := &cobra.Command{
		Use:   "decode [FILE]",
		Short: "Decode N85 to raw bytes. Reads FILE or stdin.",
		Long: `Decode N85 text from FILE (or stdin when FILE is omitted or "-") to raw bytes on stdout.

Whitespace around each block is ignored unless --no-trim is given, so a trailing
newline does not break decoding. Whitespace inside the text is an error.`,
		Example: `  n85 decode image.n85 > image.png
  n85 decode --input-mode line < tokens.n85`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if noTrimFlag {
				a.Cfg.TrimSpace = false
			}
			return a.Run(cmd.Context(), app.OpDecode, inputMode, args)
		},
	}

	cmd.Flags().BoolVar(&noTrimFlag, "no-trim", false, "Do not strip surrounding whitespace before decoding")
	cmd.Flags().Var(&inputMode, "input-mode", "Input mode: stream, line, full")
	if err := cmd.RegisterFlagCompletionFunc("input-mode", app.CompleteInputMode); err != nil {
		panic(fmt.Sprintf("Failed to register flag completion: %v", err))
	}

	return cmd
}
