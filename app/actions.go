package app

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rustyeddy/moneyverse/advisor"
	"github.com/rustyeddy/moneyverse/catalog"
	"github.com/rustyeddy/moneyverse/ledger"
	"github.com/rustyeddy/moneyverse/market"
	"github.com/rustyeddy/moneyverse/orders"
)

// Login records today's login and applies the streak law.
func (a *App) Login(today time.Time) (streak int, rw Rewards, err error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	streak, badge, err := a.tracker.RecordLogin(today)
	if err != nil {
		return streak, rw, err
	}
	if badge {
		if b, ok := catalog.BadgeByID(catalog.BadgeStreakMaster); ok {
			rw.UnlockedBadges = append(rw.UnlockedBadges, b)
		}
	}
	return streak, rw, nil
}

// AddTransaction logs a real-money entry and fires the progression side
// effects: a small XP drip, the first-expense and first-income quests,
// and the Big Spender badge once 50 entries exist.
func (a *App) AddTransaction(amount decimal.Decimal, description, category string, typ ledger.TransactionType) (ledger.Transaction, Rewards, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	var rw Rewards
	tx, err := a.ledger.AddTransaction(amount, description, category, typ)
	if err != nil {
		return tx, rw, err
	}

	if err := a.award(xpTransaction, &rw); err != nil {
		return tx, rw, err
	}
	if err := a.completeIfActive(catalog.QuestExpenseLogger, &rw); err != nil {
		return tx, rw, err
	}
	if typ == ledger.Income {
		if err := a.completeIfActive(catalog.QuestIncomeTracker, &rw); err != nil {
			return tx, rw, err
		}
	}
	if a.ledger.TransactionCount() >= bigSpenderAt {
		if err := a.unlockBadge(catalog.BadgeBigSpender, &rw); err != nil {
			return tx, rw, err
		}
	}
	return tx, rw, a.syncWallet(&rw)
}

// EditTransaction replaces an entry and re-syncs the wallet.
func (a *App) EditTransaction(tx ledger.Transaction) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.ledger.EditTransaction(tx); err != nil {
		return err
	}
	var rw Rewards
	return a.syncWallet(&rw)
}

// DeleteTransaction removes an entry and re-syncs the wallet.
func (a *App) DeleteTransaction(txID string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.ledger.DeleteTransaction(txID); err != nil {
		return err
	}
	var rw Rewards
	return a.syncWallet(&rw)
}

// AddCategory registers a custom budget category; the first one
// completes Category Pro.
func (a *App) AddCategory(name string) (Rewards, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	var rw Rewards
	added, err := a.tracker.AddCustomCategory(name)
	if err != nil || !added {
		return rw, err
	}
	return rw, a.completeIfActive(catalog.QuestCategoryPro, &rw)
}

// BuyOptions are the advanced order settings attached to a buy. A nil
// price means no order of that kind.
type BuyOptions struct {
	StopLoss   *decimal.Decimal
	TakeProfit *decimal.Decimal
}

// Buy purchases qty of the symbol at its last-known feed price, places
// any requested conditional orders (subject to their creation
// constraints), and fires the investing progression effects.
func (a *App) Buy(symbol string, qty decimal.Decimal, opts BuyOptions) (Rewards, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	var rw Rewards
	asset, err := a.poller.AssetBySymbol(symbol)
	if err != nil {
		return rw, err
	}

	if err := a.ledger.Buy(asset, qty); err != nil {
		return rw, err
	}

	// Orders attach only to a fresh buy. Constraint-violating prices
	// are skipped inside the book, not surfaced.
	if opts.StopLoss != nil {
		if _, _, err := a.book.PlaceStopLoss(symbol, *opts.StopLoss, qty, asset.Price); err != nil {
			return rw, err
		}
	}
	if opts.TakeProfit != nil {
		if _, _, err := a.book.PlaceTakeProfit(symbol, *opts.TakeProfit, qty, asset.Price); err != nil {
			return rw, err
		}
	}

	if err := a.award(xpTrade, &rw); err != nil {
		return rw, err
	}
	if err := a.completeIfActive(catalog.QuestFirstInvestment, &rw); err != nil {
		return rw, err
	}
	if len(a.ledger.Portfolio()) >= 2 {
		if err := a.completeIfActive(catalog.QuestDiversification, &rw); err != nil {
			return rw, err
		}
	}
	return rw, a.unlockBadge(catalog.BadgeInvestor, &rw)
}

// Sell disposes qty of the symbol at its last-known feed price.
func (a *App) Sell(symbol string, qty decimal.Decimal) (Rewards, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	var rw Rewards
	asset, err := a.poller.AssetBySymbol(symbol)
	if err != nil {
		return rw, err
	}
	if err := a.ledger.Sell(asset, qty); err != nil {
		return rw, err
	}
	return rw, a.award(xpTrade, &rw)
}

// CancelOrder removes a pending order with no ledger side effects.
func (a *App) CancelOrder(orderID string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.book.Cancel(orderID)
}

// AddGoal creates a savings goal; the first one completes Goal Setter.
func (a *App) AddGoal(title string, target decimal.Decimal, emoji string) (ledger.Goal, Rewards, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	var rw Rewards
	g, err := a.ledger.AddGoal(title, target, emoji)
	if err != nil {
		return g, rw, err
	}
	if err := a.award(xpGoalCreated, &rw); err != nil {
		return g, rw, err
	}
	return g, rw, a.completeIfActive(catalog.QuestGoalSetter, &rw)
}

// FundGoal deposits into a goal. The ledger writes the Savings expense;
// completing the goal (exactly once) earns the big XP bonus and the
// Goal Getter badge.
func (a *App) FundGoal(goalID string, amount decimal.Decimal) (ledger.Goal, Rewards, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	var rw Rewards
	g, completedNow, err := a.ledger.AddFundsToGoal(goalID, amount)
	if err != nil {
		return g, rw, err
	}

	if completedNow {
		if err := a.award(xpGoalCompleted, &rw); err != nil {
			return g, rw, err
		}
		if err := a.unlockBadge(catalog.BadgeGoalGetter, &rw); err != nil {
			return g, rw, err
		}
	}
	if a.ledger.WalletBalance().GreaterThan(decimal.NewFromInt(saverBalanceOver)) {
		if err := a.unlockBadge(catalog.BadgeSaver, &rw); err != nil {
			return g, rw, err
		}
	}
	return g, rw, a.syncWallet(&rw)
}

// CompleteQuest finishes a FINANCE or INVESTING quest by hand (the ones
// the automatic hooks do not cover). LEARNING quests are refused with
// ErrLearningQuest; they only complete through SubmitQuiz. Idempotent.
func (a *App) CompleteQuest(questID string) (Rewards, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	var rw Rewards
	for _, q := range a.tracker.Quests() {
		if q.ID == questID && q.Category == catalog.Learning {
			return rw, fmt.Errorf("complete quest %s: %w", questID, ErrLearningQuest)
		}
	}
	return rw, a.completeIfActive(questID, &rw)
}

// SubmitQuiz grades a lesson quiz; a perfect score completes the
// LEARNING quest. Completing the fifth lesson earns the Scholar badge.
func (a *App) SubmitQuiz(questID string, lesson advisor.Lesson, answers []int) (passed bool, rw Rewards, err error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !lesson.Passed(answers) {
		return false, rw, nil
	}
	if err := a.completeIfActive(questID, &rw); err != nil {
		return true, rw, err
	}

	lessons := 0
	for _, q := range a.tracker.Quests() {
		if q.Category == catalog.Learning && q.Completed {
			lessons++
		}
	}
	if lessons >= scholarLessonsAt {
		if err := a.unlockBadge(catalog.BadgeScholar, &rw); err != nil {
			return true, rw, err
		}
	}
	return true, rw, nil
}

// Refresh performs one market fetch. The poller's handler evaluates the
// order book under the app mutex, so this must not hold it.
func (a *App) Refresh(ctx context.Context) error {
	currency := a.tracker.Profile().Currency
	return a.poller.Refresh(ctx, currency, a.assetIDs)
}

// Assets exposes the last-known market snapshot.
func (a *App) Assets() ([]market.Asset, time.Time) {
	return a.poller.Assets()
}

// PushQuote injects a single price observation, bypassing the provider.
// Used by tests and the replay tooling to drive the trigger engine
// deterministically.
func (a *App) PushQuote(q market.Quote) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.book.Evaluate(q)
}

var _ orders.Listener = (*App)(nil)
