// cmd/pool.go
package cmd

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/fauxchat/fauxchat-cli/internal/pool"
	"github.com/fauxchat/fauxchat-cli/internal/ui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var poolCmd = &cobra.Command{
	Use:   "pool",
	Short: "Manage the FauxChat chatter pool",
}

var poolRandomiseCmd = &cobra.Command{
	Use:     "randomise [file]",
	Aliases: []string{"randomize"},
	Short:   "Reassign moderator, VIP and subscriber flags at random",
	Long: fmt.Sprintf(`Rewrites every user in the pool file with fresh is_mod, is_vip and is_sub
flags. Each user becomes a moderator with probability %.2f, a VIP with
probability %.2f and a subscriber with probability %.2f. Other fields are kept.

Pass --seed for a reproducible result.`, pool.ModChance, pool.VIPChance, pool.SubChance),
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completeFiles(1, "json"),
	RunE:              runPoolRandomise,
}

func runPoolRandomise(cmd *cobra.Command, args []string) error {
	path := cfg.PoolFile
	if len(args) == 1 {
		path = args[0]
	}

	seed := uint64(time.Now().UnixNano())
	if cmd.Flags().Changed("seed") {
		seed, _ = cmd.Flags().GetUint64("seed")
	}

	p, err := pool.Load(path)
	if err != nil {
		return err
	}

	stats := p.Randomise(rand.New(rand.NewPCG(seed, seed>>1)))
	if err := p.Save(path); err != nil {
		return err
	}
	logger.Debug("randomised pool", zap.String("path", path), zap.Uint64("seed", seed))

	status := ui.NewStatusLineTo(cmd.OutOrStdout())
	status.Success(fmt.Sprintf("Randomised %d users in %s", stats.Users, path))
	status.Detail("mods", fmt.Sprint(stats.Mods))
	status.Detail("vips", fmt.Sprint(stats.VIPs))
	status.Detail("subs", fmt.Sprint(stats.Subs))
	return nil
}

func init() {
	poolRandomiseCmd.Flags().Uint64("seed", 0, "seed for the random source")

	poolCmd.AddCommand(poolRandomiseCmd)
	rootCmd.AddCommand(poolCmd)
}
