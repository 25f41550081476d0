// cmd/root.go
package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fauxchat/fauxchat-cli/internal/config"
	"github.com/fauxchat/fauxchat-cli/internal/logging"
	"github.com/fauxchat/fauxchat-cli/internal/ui"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

var cfgFile string
var debugMode bool

// cfg holds the loaded settings; always non-nil once PersistentPreRunE ran
var cfg = config.Default()

// logger is replaced in PersistentPreRunE
var logger = zap.NewNop()

// errUsage is returned after a usage message was already printed
var errUsage = errors.New("usage")

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "fauxchat",
	Short: "Helper tooling for FauxChat stream chat simulations",
	Long: `fauxchat bundles the small utilities used alongside the FauxChat app:
writing the Twitch credentials file, converting recorded .cmdir logs into
.commands scripts, checking .commands scripts, randomising the chatter pool
and inspecting how username lists tokenize.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		logger, err = logging.New(debugMode, logging.DefaultLogDir())
		if err != nil {
			return err
		}

		if debugMode {
			// Log the full command that was run
			fullCmd := cmd.CommandPath()
			cmd.Flags().Visit(func(f *pflag.Flag) {
				if f.Name == "debug" {
					return // Skip the debug flag itself
				}
				if f.Value.Type() == "bool" {
					fullCmd += " --" + f.Name
				} else {
					fullCmd += " --" + f.Name + "=" + f.Value.String()
				}
			})
			if len(args) > 0 {
				fullCmd += " " + strings.Join(args, " ")
			}
			logger.Debug("running command", zap.String("command", fullCmd))
		}

		loaded, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		if cfg.ConfigPath != "" {
			logger.Debug("loaded config", zap.String("path", cfg.ConfigPath))
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errUsage) {
			ui.NewStatusLineTo(os.Stderr).Fail(err.Error())
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.fauxchat/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
}

// stringFlagOr returns the flag value when it was set on the command line,
// otherwise fallback
func stringFlagOr(cmd *cobra.Command, name, fallback string) string {
	if cmd.Flags().Changed(name) {
		value, err := cmd.Flags().GetString(name)
		if err == nil {
			return value
		}
	}
	return fallback
}

// intFlagOr is stringFlagOr for int flags
func intFlagOr(cmd *cobra.Command, name string, fallback int) int {
	if cmd.Flags().Changed(name) {
		value, err := cmd.Flags().GetInt(name)
		if err == nil {
			return value
		}
	}
	return fallback
}
