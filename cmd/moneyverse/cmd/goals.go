package cmd

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var goalsCmd = &cobra.Command{
	Use:   "goals",
	Short: "Manage savings goals",
}

var goalEmoji string

var goalsAddCmd = &cobra.Command{
	Use:   "add <title> <target-amount>",
	Short: "Create a savings goal",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		target, err := decimal.NewFromString(args[1])
		if err != nil {
			return fmt.Errorf("target amount: %w", err)
		}

		a, _, cleanup, err := openApp()
		if err != nil {
			return err
		}
		defer cleanup()

		g, rw, err := a.AddGoal(args[0], target, goalEmoji)
		if err != nil {
			return err
		}
		fmt.Printf("Goal created: %s %s (target %s)\n", g.Emoji, g.Title, g.TargetAmount)
		announce(rw)
		return nil
	},
}

var goalsFundCmd = &cobra.Command{
	Use:   "fund <goal-id> <amount>",
	Short: "Deposit into a goal (logged as a Savings expense)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		amount, err := decimal.NewFromString(args[1])
		if err != nil {
			return fmt.Errorf("amount: %w", err)
		}

		a, _, cleanup, err := openApp()
		if err != nil {
			return err
		}
		defer cleanup()

		g, rw, err := a.FundGoal(args[0], amount)
		if err != nil {
			return err
		}
		fmt.Printf("%s %s: %s / %s\n", g.Emoji, g.Title, g.CurrentAmount, g.TargetAmount)
		if g.Completed {
			fmt.Println("Goal reached!")
		}
		announce(rw)
		return nil
	},
}

var goalsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List savings goals",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, _, cleanup, err := openApp()
		if err != nil {
			return err
		}
		defer cleanup()

		goals := a.Goals()
		if len(goals) == 0 {
			fmt.Println("No goals yet.")
			return nil
		}
		for _, g := range goals {
			status := ""
			if g.Completed {
				status = " (done)"
			}
			fmt.Printf("%s  %s %s: %s / %s%s\n", g.ID, g.Emoji, g.Title, g.CurrentAmount, g.TargetAmount, status)
		}
		return nil
	},
}

func init() {
	goalsAddCmd.Flags().StringVar(&goalEmoji, "emoji", "🎯", "emoji shown next to the goal")

	goalsCmd.AddCommand(goalsAddCmd, goalsFundCmd, goalsListCmd)
	rootCmd.AddCommand(goalsCmd)
}
