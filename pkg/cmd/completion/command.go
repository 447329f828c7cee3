package completion

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/birdayz/n85/pkg/app"
)

// NewCommand returns the "n85 completion" command.
// It takes the root command so it can generate completions for the full tree.
func NewCommand(root *cobra.Command, a *app.App) *cobra.Command {
	generators := map[string]func(io.Writer) error{
		"bash": root.GenBashCompletion,
		"zsh":  root.GenZshCompletion,
		"fish": func(w io.Writer) error {
			return root.GenFishCompletion(w, true)
		},
		"powershell": root.GenPowerShellCompletion,
	}

	return &cobra.Command{
		Use:   "completion [SHELL]",
		Short: "Generate completion script for bash, zsh, fish or powershell",
		Long: `To load completions:

Bash:
  $ source <(n85 completion bash)

Zsh:
  $ n85 completion zsh > "${fpath[1]}/_n85"

Fish:
  $ n85 completion fish > ~/.config/fish/completions/n85.fish
`,
		DisableFlagsInUseLine: true,
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.BindIO(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := generators[args[0]](a.OutWriter); err != nil {
				return fmt.Errorf("failed to generate %s completion: %w", args[0], err)
			}
			return nil
		},
	}
}
