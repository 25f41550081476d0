// cmd/commands.go
package cmd

import (
	"fmt"
	"os"

	"github.com/fauxchat/fauxchat-cli/internal/commands"
	"github.com/fauxchat/fauxchat-cli/internal/ui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var commandsCmd = &cobra.Command{
	Use:   "commands",
	Short: "Work with .commands scripts",
}

var commandsCheckCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Parse a .commands script and summarise it",
	Long: `Parses every line of a .commands script and reports the number of send and
sleep commands, the messages they produce and how long the script runs.

Use --list to print each command in canonical form with its line number.`,
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeFiles(1, "commands"),
	RunE:              runCommandsCheck,
}

func runCommandsCheck(cmd *cobra.Command, args []string) error {
	path := args[0]
	list, _ := cmd.Flags().GetBool("list")

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	script, err := commands.Parse(f)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	sum := script.Summary()
	logger.Debug("parsed script", zap.String("path", path), zap.Int("commands", len(script.Commands)))

	out := cmd.OutOrStdout()
	if list {
		for i, c := range script.Commands {
			fmt.Fprintf(out, "%4d  %s\n", script.Lines[i], c)
		}
		fmt.Fprintln(out)
	}

	status := ui.NewStatusLineTo(out)
	status.Success(fmt.Sprintf("%s is valid", path))
	status.Detail("sends", fmt.Sprint(sum.Sends))
	status.Detail("sleeps", fmt.Sprint(sum.Sleeps))
	status.Detail("messages", fmt.Sprint(sum.Messages))
	if sum.MinDuration == sum.MaxDuration {
		status.Detail("duration", sum.MinDuration.String())
	} else {
		status.Detail("duration", fmt.Sprintf("%s - %s", sum.MinDuration, sum.MaxDuration))
	}
	return nil
}

func init() {
	commandsCheckCmd.Flags().Bool("list", false, "print every parsed command")

	commandsCmd.AddCommand(commandsCheckCmd)
	rootCmd.AddCommand(commandsCmd)
}
