package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/moneyverse/config"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Poll market prices and evaluate pending orders",
	Long: `Runs the background loops: the market feed is refreshed on the
configured interval and every refresh is one evaluation pass over the
pending orders. Triggered orders sell through the simulator and are
journaled. Stop with Ctrl-C.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, cfg, cleanup, err := openApp()
		if err != nil {
			return err
		}
		defer cleanup()

		interval, err := cfg.Market.ParseRefreshInterval()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		fmt.Printf("Watching %d assets every %s. Pending orders: %d\n",
			len(cfg.Market.AssetIDs), interval, len(a.PendingOrders()))
		return a.Run(ctx, interval)
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a default config file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "./moneyverse.yaml"
		if len(args) == 1 {
			path = args[0]
		}
		if err := config.Default().SaveToFile(path); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(watchCmd, configInitCmd)
}
