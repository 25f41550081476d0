// cmd/completion.go
package cmd

import (
	"github.com/fauxchat/fauxchat-cli/internal/config"
	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion <shell>",
	Short: "Generate shell completion scripts",
	Long: `Prints a completion script for bash, zsh, fish or powershell.

Besides subcommands and flags, the scripts complete --output with the
accepted formats and only offer files of the matching kind: .cmdir logs,
.commands scripts, the pool JSON, the credentials TOML and .txt word lists.

  $ source <(fauxchat completion bash)
  $ fauxchat completion zsh > "${fpath[1]}/_fauxchat"
  $ fauxchat completion fish > ~/.config/fish/completions/fauxchat.fish
  PS> fauxchat completion powershell | Out-String | Invoke-Expression`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletionV2(out, true)
		case "zsh":
			return rootCmd.GenZshCompletion(out)
		case "fish":
			return rootCmd.GenFishCompletion(out, true)
		default:
			return rootCmd.GenPowerShellCompletionWithDesc(out)
		}
	},
}

// completeOutputFormats offers the values the output setting accepts
func completeOutputFormats(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return config.OutputFormats, cobra.ShellCompDirectiveNoFileComp
}

// completeFiles restricts file completion to the given extensions. With
// maxArgs above zero, nothing is offered once that many arguments are set.
func completeFiles(maxArgs int, exts ...string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if maxArgs > 0 && len(args) >= maxArgs {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return exts, cobra.ShellCompDirectiveFilterFileExt
	}
}

func init() {
	rootCmd.AddCommand(completionCmd)
}
