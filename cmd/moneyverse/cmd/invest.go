package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rustyeddy/moneyverse/app"
)

var buyStopLoss string
var buyTakeProfit string

var buyCmd = &cobra.Command{
	Use:   "buy <symbol> <quantity>",
	Short: "Buy an asset with simulated cash",
	Long: `Buy an asset at its current market price using simulated cash.

Optional conditional orders can be attached to the buy:
  --stop-loss    sell automatically if the price falls to this level
  --take-profit  sell automatically if the price rises to this level

A stop-loss above the current price or a take-profit below it is
silently skipped.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		qty, err := decimal.NewFromString(args[1])
		if err != nil {
			return fmt.Errorf("quantity: %w", err)
		}

		a, _, cleanup, err := openApp()
		if err != nil {
			return err
		}
		defer cleanup()

		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()
		if err := a.Refresh(ctx); err != nil {
			return fmt.Errorf("market data unavailable: %w", err)
		}

		var opts app.BuyOptions
		if buyStopLoss != "" {
			sl, err := decimal.NewFromString(buyStopLoss)
			if err != nil {
				return fmt.Errorf("stop-loss: %w", err)
			}
			opts.StopLoss = &sl
		}
		if buyTakeProfit != "" {
			tp, err := decimal.NewFromString(buyTakeProfit)
			if err != nil {
				return fmt.Errorf("take-profit: %w", err)
			}
			opts.TakeProfit = &tp
		}

		rw, err := a.Buy(args[0], qty, opts)
		if err != nil {
			return err
		}
		fmt.Printf("Bought %s %s. Simulated cash: %s\n", qty, args[0], a.Profile().SimulatedCash)
		announce(rw)
		return nil
	},
}

var sellCmd = &cobra.Command{
	Use:   "sell <symbol> <quantity>",
	Short: "Sell a held asset at the current market price",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		qty, err := decimal.NewFromString(args[1])
		if err != nil {
			return fmt.Errorf("quantity: %w", err)
		}

		a, _, cleanup, err := openApp()
		if err != nil {
			return err
		}
		defer cleanup()

		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()
		if err := a.Refresh(ctx); err != nil {
			return fmt.Errorf("market data unavailable: %w", err)
		}

		rw, err := a.Sell(args[0], qty)
		if err != nil {
			return err
		}
		fmt.Printf("Sold %s %s. Simulated cash: %s\n", qty, args[0], a.Profile().SimulatedCash)
		announce(rw)
		return nil
	},
}

var portfolioCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Show simulated holdings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, _, cleanup, err := openApp()
		if err != nil {
			return err
		}
		defer cleanup()

		items := a.Portfolio()
		if len(items) == 0 {
			fmt.Println("No holdings.")
		}
		for _, it := range items {
			fmt.Printf("%-8s %12s @ %s\n", it.Symbol, it.Quantity, it.AvgBuyPrice)
		}
		fmt.Printf("Simulated cash: %s\n", a.Profile().SimulatedCash)
		return nil
	},
}

var ordersCmd = &cobra.Command{
	Use:   "orders",
	Short: "Manage pending conditional orders",
}

var ordersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List pending orders",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, _, cleanup, err := openApp()
		if err != nil {
			return err
		}
		defer cleanup()

		pending := a.PendingOrders()
		if len(pending) == 0 {
			fmt.Println("No pending orders.")
			return nil
		}
		for _, o := range pending {
			fmt.Printf("%s  %-11s %-8s %10s @ %s\n",
				o.ID, o.Type, o.AssetSymbol, o.Quantity, o.TargetPrice)
		}
		return nil
	},
}

var ordersCancelCmd = &cobra.Command{
	Use:   "cancel <order-id>",
	Short: "Cancel a pending order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, _, cleanup, err := openApp()
		if err != nil {
			return err
		}
		defer cleanup()

		if err := a.CancelOrder(args[0]); err != nil {
			return err
		}
		fmt.Println("Order cancelled.")
		return nil
	},
}

var marketCmd = &cobra.Command{
	Use:   "market",
	Short: "Show current market prices",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, _, cleanup, err := openApp()
		if err != nil {
			return err
		}
		defer cleanup()

		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()
		if err := a.Refresh(ctx); err != nil {
			return fmt.Errorf("market data unavailable: %w", err)
		}

		assets, asOf := a.Assets()
		for _, as := range assets {
			fmt.Printf("%-8s %-12s %14s  %6s%%\n", as.Symbol, as.Name, as.Price, as.Change24h)
		}
		fmt.Printf("As of %s\n", asOf.Format(time.RFC3339))
		return nil
	},
}

func init() {
	buyCmd.Flags().StringVar(&buyStopLoss, "stop-loss", "", "attach a stop-loss at this price")
	buyCmd.Flags().StringVar(&buyTakeProfit, "take-profit", "", "attach a take-profit at this price")

	ordersCmd.AddCommand(ordersListCmd, ordersCancelCmd)
	rootCmd.AddCommand(buyCmd, sellCmd, portfolioCmd, ordersCmd, marketCmd)
}
