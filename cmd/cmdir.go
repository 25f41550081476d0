// cmd/cmdir.go
package cmd

import (
	"fmt"

	"github.com/fauxchat/fauxchat-cli/internal/cmdir"
	"github.com/fauxchat/fauxchat-cli/internal/ui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var cmdirCmd = &cobra.Command{
	Use:   "cmdir <file>",
	Short: "Convert a recorded .cmdir log into a .commands script",
	Long: `Rewrites <path>.cmdir into <path>.commands. Command lines are copied as-is
and every end_pause(<ms>) marker after the first becomes sleep(<ms since the
previous marker>). The first marker only sets the starting point.

The .cmdir file is deleted once the .commands file has been written.`,
	Args:              requireFileArg,
	ValidArgsFunction: completeFiles(1, "cmdir"),
	RunE:              runCmdir,
}

// requireFileArg prints the usage line to stdout when the file is missing
func requireFileArg(cmd *cobra.Command, args []string) error {
	if len(args) < 1 {
		fmt.Fprintf(cmd.OutOrStdout(), "Usage: %s <file>\n", cmd.CommandPath())
		return errUsage
	}
	return cobra.MaximumNArgs(1)(cmd, args)
}

func runCmdir(cmd *cobra.Command, args []string) error {
	input := args[0]

	outPath, result, err := cmdir.ConvertFile(input)
	if err != nil {
		return err
	}

	logger.Debug("converted command log",
		zap.String("input", input),
		zap.String("output", outPath),
		zap.Int("copied", result.Copied),
		zap.Int("markers", result.Markers),
		zap.Int("sleeps", result.Sleeps))

	status := ui.NewStatusLineTo(cmd.OutOrStdout())
	status.Success(fmt.Sprintf("Wrote %s", outPath))
	status.Detail("lines copied", fmt.Sprint(result.Copied))
	status.Detail("sleeps", fmt.Sprint(result.Sleeps))
	return nil
}

func init() {
	rootCmd.AddCommand(cmdirCmd)
}
