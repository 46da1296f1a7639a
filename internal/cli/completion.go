package cli

import (
	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"

	"github.com/matzehuels/ecolayout/pkg/layout"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: heredoc.Doc(`
			Generate shell completion scripts for ecolayout.

			Completions cover commands and the values of --mode, --color and --format.

			  $ source <(ecolayout completion bash)
			  $ ecolayout completion zsh > "${fpath[1]}/_ecolayout"
			  $ ecolayout completion fish > ~/.config/fish/completions/ecolayout.fish
			  PS> ecolayout completion powershell | Out-String | Invoke-Expression
		`),
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}

// fixedValues completes a flag from a closed set of names.
func fixedValues(values ...string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return values, cobra.ShellCompDirectiveNoFileComp
	}
}

// registerModeCompletion completes --mode with the layout modes.
func registerModeCompletion(cmd *cobra.Command) {
	_ = cmd.RegisterFlagCompletionFunc("mode", fixedValues(layout.ModeNames()...))
}

// registerStyleCompletion completes --color and --format.
func registerStyleCompletion(cmd *cobra.Command) {
	_ = cmd.RegisterFlagCompletionFunc("color", fixedValues(colorModeNames()...))
	_ = cmd.RegisterFlagCompletionFunc("format", fixedValues("svg", "dot", "png", "json"))
}
