package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/moneyverse/replay"
)

var replayCmd = &cobra.Command{
	Use:   "replay <quotes.csv>",
	Short: "Replay recorded quotes through the pending orders",
	Long: `Reads a CSV of recorded quotes (time,symbol,price) and pushes them
through the order book in file order, exactly as a live feed would.
Useful for reproducing how pending orders behave against a known price
path.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, _, cleanup, err := openApp()
		if err != nil {
			return err
		}
		defer cleanup()

		before := len(a.PendingOrders())
		if err := replay.CSV(cmd.Context(), args[0], a); err != nil {
			return err
		}
		after := len(a.PendingOrders())

		fmt.Printf("Replay done. Orders: %d pending before, %d after. Simulated cash: %s\n",
			before, after, a.Profile().SimulatedCash.StringFixed(2))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(replayCmd)
}
