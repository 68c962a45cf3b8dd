package cli

import (
	"github.com/spf13/cobra"
)

// completionCommand creates the completion command. Preset names complete
// for 'render', 'view' and 'presets show'.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for ifsgen.

  $ source <(ifsgen completion bash)
  $ ifsgen completion zsh > "${fpath[1]}/_ifsgen"
  $ ifsgen completion fish | source
  PS> ifsgen completion powershell | Out-String | Invoke-Expression`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(c.Out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(c.Out)
			case "fish":
				return cmd.Root().GenFishCompletion(c.Out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(c.Out)
			}
			return nil
		},
	}
}

// completePresets offers preset names as the first positional argument.
func (c *CLI) completePresets(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	cat, err := c.catalog()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	return cat.Names(), cobra.ShellCompDirectiveNoFileComp
}
