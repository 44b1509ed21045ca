// Package app wires the services together and owns the causality the
// spec calls out: ledger mutations feed the progression engine, the
// price feed drives the order book, and executed orders loop back into
// the ledger and XP.
package app

import (
	"errors"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/rustyeddy/moneyverse/advisor"
	"github.com/rustyeddy/moneyverse/catalog"
	"github.com/rustyeddy/moneyverse/feed"
	"github.com/rustyeddy/moneyverse/journal"
	"github.com/rustyeddy/moneyverse/ledger"
	"github.com/rustyeddy/moneyverse/market"
	"github.com/rustyeddy/moneyverse/orders"
	"github.com/rustyeddy/moneyverse/progress"
	"github.com/rustyeddy/moneyverse/store"
)

// XP amounts for routine actions, and the thresholds behind automatic
// quest and badge grants.
const (
	xpTransaction    = 20
	xpTrade          = 50
	xpGoalCreated    = 50
	xpGoalCompleted  = 500
	bigSpenderAt     = 50 // logged transactions
	saverBalanceOver = 100
	wealthBuilderAt  = 500 // wallet balance
	scholarLessonsAt = 5   // completed LEARNING quests
)

// ErrLearningQuest - LEARNING quests cannot be completed by hand; the
// only way through is a perfect score on their lesson quiz.
var ErrLearningQuest = errors.New("learning quests complete through their lesson quiz")

// Rewards summarizes what a single user action earned, so the front end
// can announce it. Zero value means nothing happened beyond the action
// itself.
type Rewards struct {
	XP              int
	CompletedQuests []progress.Quest
	UnlockedQuests  []progress.Quest
	UnlockedBadges  []catalog.Badge
}

func (r Rewards) Empty() bool {
	return r.XP == 0 && len(r.CompletedQuests) == 0 &&
		len(r.UnlockedQuests) == 0 && len(r.UnlockedBadges) == 0
}

// App owns one of each state-holding service. All user-initiated
// compound mutations are serialized through its methods; the feed-driven
// evaluation path is serialized by the services' own locks.
type App struct {
	mu      sync.Mutex
	log     logrus.FieldLogger
	st      store.Store
	tracker *progress.Tracker
	ledger  *ledger.Ledger
	book    *orders.Book
	poller  *feed.Poller
	gen     advisor.Generator

	assetIDs []string
}

// Options carries the collaborators New needs beyond the store.
type Options struct {
	Journal   journal.Journal
	Provider  feed.Provider
	Generator advisor.Generator
	AssetIDs  []string
	Log       logrus.FieldLogger
}

// New loads all persisted state and wires the services together. A
// fresh store yields a new user with default profile and root quests.
func New(st store.Store, opts Options) (*App, error) {
	if opts.Log == nil {
		opts.Log = logrus.StandardLogger()
	}
	if opts.Journal == nil {
		opts.Journal = journal.Nop{}
	}
	if opts.Generator == nil {
		opts.Generator = advisor.Static{}
	}
	if len(opts.AssetIDs) == 0 {
		opts.AssetIDs = feed.DefaultAssetIDs
	}

	tracker, err := progress.NewTracker(st)
	if err != nil {
		return nil, err
	}
	led, err := ledger.New(st, tracker)
	if err != nil {
		return nil, err
	}
	book, err := orders.NewBook(st, led, opts.Journal, opts.Log)
	if err != nil {
		return nil, err
	}

	a := &App{
		log:      opts.Log,
		st:       st,
		tracker:  tracker,
		ledger:   led,
		book:     book,
		poller:   feed.NewPoller(opts.Provider, opts.Log),
		gen:      opts.Generator,
		assetIDs: opts.AssetIDs,
	}

	book.SetListener(a)

	// The evaluation pass and user actions share one mutex so a
	// multi-step mutation on either side is atomic with respect to the
	// other (manual sell vs. trigger execution).
	a.poller.SetHandler(func(assets []market.Asset, at time.Time) {
		a.mu.Lock()
		defer a.mu.Unlock()
		book.EvaluateAssets(assets, at)
	})

	// Catch templates that became satisfiable between sessions.
	if _, err := tracker.SyncUnlocks(); err != nil {
		return nil, err
	}

	return a, nil
}

// Accessors for the read-only views the CLI renders.

func (a *App) Profile() progress.Profile          { return a.tracker.Profile() }
func (a *App) Quests() []progress.Quest           { return a.tracker.Quests() }
func (a *App) Transactions() []ledger.Transaction { return a.ledger.Transactions() }
func (a *App) Portfolio() []ledger.PortfolioItem  { return a.ledger.Portfolio() }
func (a *App) Goals() []ledger.Goal               { return a.ledger.Goals() }
func (a *App) PendingOrders() []orders.Order      { return a.book.Pending() }
func (a *App) Generator() advisor.Generator       { return a.gen }
func (a *App) WalletBalance() decimal.Decimal     { return a.ledger.WalletBalance() }

// OrderExecuted implements orders.Listener. A feed-triggered sell earns
// the same XP as a manual one; failures here only log, since nobody is
// waiting on the result.
func (a *App) OrderExecuted(o orders.Order, price decimal.Decimal) {
	if err := a.tracker.AwardXP(xpTrade); err != nil {
		a.log.WithError(err).WithField("order_id", o.ID).Warn("award xp for executed order")
	}
}

// OrderInvalidated implements orders.Listener.
func (a *App) OrderInvalidated(o orders.Order) {
	a.log.WithFields(logrus.Fields{
		"order_id": o.ID,
		"symbol":   o.AssetSymbol,
	}).Info("order dropped, holdings no longer cover it")
}

// award applies an XP amount and folds it into the rewards summary.
func (a *App) award(amount int, rw *Rewards) error {
	if err := a.tracker.AwardXP(amount); err != nil {
		return err
	}
	rw.XP += amount
	return nil
}

// completeIfActive completes a quest automatically when it is in the
// user's quest set and still open. Missing or already-completed quests
// are a no-op, which is what makes the automatic grants idempotent.
func (a *App) completeIfActive(questID string, rw *Rewards) error {
	for _, q := range a.tracker.Quests() {
		if q.ID != questID {
			continue
		}
		if q.Completed {
			return nil
		}
		unlocked, err := a.tracker.CompleteQuest(questID)
		if err != nil {
			return err
		}
		q.Completed = true
		rw.XP += q.XPReward
		rw.CompletedQuests = append(rw.CompletedQuests, q)
		rw.UnlockedQuests = append(rw.UnlockedQuests, unlocked...)
		return nil
	}
	return nil
}

// unlockBadge unlocks a badge and records it in the rewards summary
// when it is new.
func (a *App) unlockBadge(badgeID string, rw *Rewards) error {
	fresh, err := a.tracker.UnlockBadge(badgeID)
	if err != nil {
		return err
	}
	if fresh {
		if b, ok := catalog.BadgeByID(badgeID); ok {
			rw.UnlockedBadges = append(rw.UnlockedBadges, b)
		}
	}
	return nil
}

// syncWallet mirrors the ledger-derived balance onto the profile and
// runs the net-worth quest check.
func (a *App) syncWallet(rw *Rewards) error {
	balance := a.ledger.WalletBalance()
	if err := a.tracker.SetWalletBalance(balance); err != nil {
		return err
	}
	if balance.GreaterThanOrEqual(decimal.NewFromInt(wealthBuilderAt)) {
		return a.completeIfActive(catalog.QuestWealthBuilder, rw)
	}
	return nil
}
