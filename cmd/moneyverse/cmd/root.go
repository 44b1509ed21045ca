package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rustyeddy/moneyverse/app"
	"github.com/rustyeddy/moneyverse/config"
	"github.com/rustyeddy/moneyverse/feed"
	"github.com/rustyeddy/moneyverse/journal"
	"github.com/rustyeddy/moneyverse/store"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "moneyverse",
	Short: "A gamified personal-finance tracker with a play-money trading simulator",
	Long: `MoneyVerse tracks real income and expenses, simulates crypto trading
with play money, and turns learning about finance into quests, XP and
badges.

It provides:
  - A transaction ledger with an always-recomputed wallet balance
  - A trading simulator with stop-loss / take-profit orders evaluated
    against live market prices
  - Savings goals funded from the real-money ledger
  - A quest tree that unlocks as you complete lessons and actions
  - A watch mode that polls prices and fires pending orders`,
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ./moneyverse.yaml)")
}

func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		return config.LoadFromFile(cfgFile)
	}
	if _, err := os.Stat("./moneyverse.yaml"); err == nil {
		return config.LoadFromFile("./moneyverse.yaml")
	}
	return config.Default(), nil
}

// openApp builds the full application from the config. The returned
// cleanup closes the store and journal.
func openApp() (*app.App, *config.Config, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, nil, err
	}

	log := logrus.New()
	if cfg.Log.Level != "" {
		lvl, err := logrus.ParseLevel(cfg.Log.Level)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("log level: %w", err)
		}
		log.SetLevel(lvl)
	}

	st, err := store.NewSQLite(cfg.Data.StorePath)
	if err != nil {
		return nil, nil, nil, err
	}

	var jrnl journal.Journal = journal.Nop{}
	if cfg.Data.JournalPath != "" {
		jrnl, err = journal.NewSQLite(cfg.Data.JournalPath)
		if err != nil {
			st.Close()
			return nil, nil, nil, err
		}
	}

	a, err := app.New(st, app.Options{
		Journal:  jrnl,
		Provider: feed.NewClient(cfg.Market.BaseURL),
		AssetIDs: cfg.Market.AssetIDs,
		Log:      log,
	})
	if err != nil {
		jrnl.Close()
		st.Close()
		return nil, nil, nil, err
	}

	cleanup := func() {
		jrnl.Close()
		st.Close()
	}
	return a, cfg, cleanup, nil
}

// announce prints the rewards a command earned.
func announce(rw app.Rewards) {
	if rw.XP > 0 {
		fmt.Printf("+%d XP\n", rw.XP)
	}
	for _, q := range rw.CompletedQuests {
		fmt.Printf("Quest complete: %s\n", q.Title)
	}
	for _, q := range rw.UnlockedQuests {
		fmt.Printf("New quest unlocked: %s\n", q.Title)
	}
	for _, b := range rw.UnlockedBadges {
		fmt.Printf("Badge unlocked: %s %s\n", b.Icon, b.Name)
	}
}
