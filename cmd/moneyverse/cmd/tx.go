package cmd

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rustyeddy/moneyverse/ledger"
)

var txCmd = &cobra.Command{
	Use:   "tx",
	Short: "Manage real-money transactions",
}

var txIncome bool
var txCategory string

var txAddCmd = &cobra.Command{
	Use:   "add <amount> <description>",
	Short: "Log an expense (or income with --income)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		amount, err := decimal.NewFromString(args[0])
		if err != nil {
			return fmt.Errorf("amount: %w", err)
		}

		a, _, cleanup, err := openApp()
		if err != nil {
			return err
		}
		defer cleanup()

		typ := ledger.Expense
		if txIncome {
			typ = ledger.Income
		}
		tx, rw, err := a.AddTransaction(amount, args[1], txCategory, typ)
		if err != nil {
			return err
		}

		fmt.Printf("Logged %s %s (%s)\n", tx.Type, tx.Amount, tx.Category)
		announce(rw)
		fmt.Printf("Wallet balance: %s\n", a.WalletBalance())
		return nil
	},
}

var txListCmd = &cobra.Command{
	Use:   "list",
	Short: "List transactions, oldest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, _, cleanup, err := openApp()
		if err != nil {
			return err
		}
		defer cleanup()

		for _, t := range a.Transactions() {
			fmt.Printf("%s  %-7s %10s  %-12s %s\n",
				t.Date.Format("2006-01-02"), t.Type, t.Amount, t.Category, t.Description)
		}
		fmt.Printf("Wallet balance: %s\n", a.WalletBalance())
		return nil
	},
}

var txRmCmd = &cobra.Command{
	Use:   "rm <transaction-id>",
	Short: "Delete a transaction",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, _, cleanup, err := openApp()
		if err != nil {
			return err
		}
		defer cleanup()

		if err := a.DeleteTransaction(args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted. Wallet balance: %s\n", a.WalletBalance())
		return nil
	},
}

var categoryAddCmd = &cobra.Command{
	Use:   "add-category <name>",
	Short: "Add a custom budget category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, _, cleanup, err := openApp()
		if err != nil {
			return err
		}
		defer cleanup()

		rw, err := a.AddCategory(args[0])
		if err != nil {
			return err
		}
		announce(rw)
		return nil
	},
}

func init() {
	txAddCmd.Flags().BoolVar(&txIncome, "income", false, "log as income instead of expense")
	txAddCmd.Flags().StringVar(&txCategory, "category", "Other", "transaction category")

	txCmd.AddCommand(txAddCmd, txListCmd, txRmCmd)
	rootCmd.AddCommand(txCmd, categoryAddCmd)
}
