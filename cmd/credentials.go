// cmd/credentials.go
package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fauxchat/fauxchat-cli/internal/credentials"
	"github.com/fauxchat/fauxchat-cli/internal/platform"
	"github.com/fauxchat/fauxchat-cli/internal/ui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var credentialsCmd = &cobra.Command{
	Use:   "credentials",
	Short: "Manage the Twitch credentials file",
}

var credentialsWriteCmd = &cobra.Command{
	Use:   "write",
	Short: "Write credentials.toml from the environment",
	Long: `Reads CLIENT_ID, CLIENT_SECRET, USER_ID, AUTH_TOKEN and REFRESH_TOKEN from
the environment and writes them to a new credentials.toml.

Nothing is written unless all five variables are set, and an existing
credentials file is never overwritten.`,
	Args: cobra.NoArgs,
	RunE: runCredentialsWrite,
}

var credentialsShowCmd = &cobra.Command{
	Use:   "show [file]",
	Short: "Print a credentials file with secrets masked",
	Long: `Prints the keys of a credentials file with the client secret and tokens
masked. Without a file argument the configured credentials file is used,
falling back to the FauxChat app data directory.`,
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completeFiles(1, "toml"),
	RunE:              runCredentialsShow,
}

func runCredentialsWrite(cmd *cobra.Command, args []string) error {
	out := stringFlagOr(cmd, "out", cfg.CredentialsFile)

	creds, err := credentials.FromEnv()
	if err != nil {
		return err
	}

	if err := credentials.WriteNew(out, creds); err != nil {
		return err
	}

	logger.Debug("wrote credentials", zap.String("path", out))
	ui.NewStatusLineTo(cmd.OutOrStdout()).Success(fmt.Sprintf("Wrote %s", out))
	return nil
}

func runCredentialsShow(cmd *cobra.Command, args []string) error {
	path, fallback, err := resolveCredentialsPath(args)
	if err != nil {
		return err
	}
	status := ui.NewStatusLineTo(cmd.OutOrStdout())
	if fallback {
		status.Warning(fmt.Sprintf("%s not found, using the FauxChat app data copy", cfg.CredentialsFile))
	}

	creds, err := credentials.Load(path)
	if err != nil {
		return err
	}
	masked := creds.Masked()

	status.Info(path)
	status.Detail("client_id", masked.ClientID)
	status.Detail("client_secret", masked.ClientSecret)
	status.Detail("user_id", masked.UserID)
	status.Detail("auth_token", masked.AuthToken)
	status.Detail("refresh_token", masked.RefreshToken)
	return nil
}

// resolveCredentialsPath picks the explicit argument, else the configured
// file, else the app data directory copy. The bool reports the last case.
func resolveCredentialsPath(args []string) (string, bool, error) {
	if len(args) == 1 {
		return args[0], false, nil
	}

	path := cfg.CredentialsFile
	if _, err := os.Stat(path); err == nil {
		return path, false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", false, err
	}

	dataDir, err := platform.DataDir()
	if err != nil {
		return path, false, nil
	}
	fallback := filepath.Join(dataDir, credentials.DefaultFileName)
	if _, err := os.Stat(fallback); err == nil {
		logger.Debug("using app data credentials", zap.String("path", fallback))
		return fallback, true, nil
	}
	return path, false, nil
}

func init() {
	credentialsWriteCmd.Flags().StringP("out", "o", "", "destination file (default from config, credentials.toml)")
	_ = credentialsWriteCmd.RegisterFlagCompletionFunc("out", completeFiles(0, "toml"))

	credentialsCmd.AddCommand(credentialsWriteCmd)
	credentialsCmd.AddCommand(credentialsShowCmd)
	rootCmd.AddCommand(credentialsCmd)
}
