package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var questsCmd = &cobra.Command{
	Use:   "quests",
	Short: "Show and complete quests",
}

var questsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List unlocked quests",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, _, cleanup, err := openApp()
		if err != nil {
			return err
		}
		defer cleanup()

		for _, q := range a.Quests() {
			mark := " "
			if q.Completed {
				mark = "x"
			}
			fmt.Printf("[%s] %-3s %-10s %-22s +%d XP  %s\n",
				mark, q.ID, q.Category, q.Title, q.XPReward, q.Description)
		}
		return nil
	},
}

var questsCompleteCmd = &cobra.Command{
	Use:   "complete <quest-id>",
	Short: "Mark a FINANCE or INVESTING quest as completed",
	Long: `Marks an action quest as completed. LEARNING quests cannot be
completed here; take their quiz with "learn lesson <quest-id>".`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, _, cleanup, err := openApp()
		if err != nil {
			return err
		}
		defer cleanup()

		rw, err := a.CompleteQuest(args[0])
		if err != nil {
			return err
		}
		if rw.Empty() {
			fmt.Println("Already completed.")
			return nil
		}
		announce(rw)
		return nil
	},
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Record today's login and update the streak",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, _, cleanup, err := openApp()
		if err != nil {
			return err
		}
		defer cleanup()

		streak, rw, err := a.Login(time.Now())
		if err != nil {
			return err
		}
		fmt.Printf("Streak: %d day(s)\n", streak)
		announce(rw)
		return nil
	},
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show the user profile",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, _, cleanup, err := openApp()
		if err != nil {
			return err
		}
		defer cleanup()

		p := a.Profile()
		fmt.Printf("%s - level %d (%d XP), streak %d\n", p.Name, p.Level(), p.XP, p.Streak)
		fmt.Printf("Wallet: %s %s   Simulated cash: %s\n", p.WalletBalance, p.Currency, p.SimulatedCash)
		fmt.Printf("Badges: %v\n", p.UnlockedBadges)
		return nil
	},
}

func init() {
	questsCmd.AddCommand(questsListCmd, questsCompleteCmd)
	rootCmd.AddCommand(questsCmd, loginCmd, profileCmd)
}
