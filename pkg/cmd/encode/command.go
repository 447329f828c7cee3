package encode

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/birdayz/n85/pkg/app"
)

// NewCommand returns the "n85 encode" command.
func NewCommand(a *app.App) *cobra.Command {
	inputMode := app.InputModeStream

	cmd := &cobra.Command{
		Use:   "encode [FILE]",
		Short: "Encode raw bytes to N85. Reads FILE or stdin.",
		Long: `Encode raw bytes from FILE (or stdin when FILE is omitted or "-") to N85 on stdout.

In stream mode input is processed in blocks of --block-size bytes. In line mode
every input line is encoded on its own output line. Full mode reads everything
into memory first.`,
		Example: `  n85 encode image.png > image.n85
  printf 'a\nb\n' | n85 encode --input-mode line`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.Run(cmd.Context(), app.OpEncode, inputMode, args)
		},
	}

	cmd.Flags().Var(&inputMode, "input-mode", "Input mode: stream, line, full")
	if err := cmd.RegisterFlagCompletionFunc("input-mode", app.CompleteInputMode); err != nil {
		panic(fmt.Sprintf("Failed to register flag completion: %v", err))
	}

	return cmd
}
