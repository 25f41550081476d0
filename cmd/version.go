// cmd/version.go
package cmd

import (
	"fmt"
	"runtime"

	"github.com/fauxchat/fauxchat-cli/internal/platform"
	"github.com/spf13/cobra"
)

// Version is stamped with -ldflags "-X .../cmd.Version=v1.2.3"
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the fauxchat version and build platform",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if short, _ := cmd.Flags().GetBool("short"); short {
			fmt.Fprintln(cmd.OutOrStdout(), Version)
			return
		}
		fmt.Fprintf(cmd.OutOrStdout(), "fauxchat %s (%s/%s, %s)\n", Version, platform.OS(), runtime.GOARCH, runtime.Version())
	},
}

func init() {
	versionCmd.Flags().Bool("short", false, "print only the version number")
	rootCmd.AddCommand(versionCmd)
}
