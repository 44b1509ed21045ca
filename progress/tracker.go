package progress

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rustyeddy/moneyverse/catalog"
	"github.com/rustyeddy/moneyverse/store"
)

var (
	// ErrQuestNotFound - the quest id is not in the user's quest set
	// (not unlocked yet, or not in the catalog at all).
	ErrQuestNotFound = errors.New("quest not in quest set")

	// ErrBadXPAmount - XP awards must be positive.
	ErrBadXPAmount = errors.New("xp amount must be positive")
)

// streakBadgeAt is the consecutive-day count that unlocks Streak Master.
const streakBadgeAt = 7

// Tracker is the progression store: it owns the profile record and the
// quest set and is their only writer. Every mutation persists before
// returning.
type Tracker struct {
	mu      sync.Mutex
	st      store.Store
	profile Profile
	quests  []Quest
}

// NewTracker loads the persisted profile and quest set, seeding a new
// user with defaults and the catalog's root quests when absent.
func NewTracker(st store.Store) (*Tracker, error) {
	t := &Tracker{st: st}

	ok, err := st.Get(store.KeyUser, &t.profile)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	if !ok {
		t.profile = DefaultProfile()
		if err := st.Put(store.KeyUser, t.profile); err != nil {
			return nil, err
		}
	}

	ok, err = st.Get(store.KeyQuests, &t.quests)
	if err != nil {
		return nil, fmt.Errorf("load quests: %w", err)
	}
	if !ok {
		t.quests = InitialQuests()
		if err := st.Put(store.KeyQuests, t.quests); err != nil {
			return nil, err
		}
	}

	return t, nil
}

// Profile returns a copy of the current profile.
func (t *Tracker) Profile() Profile {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.profile
}

// Quests returns a copy of the user's quest set, active and completed.
func (t *Tracker) Quests() []Quest {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Quest, len(t.quests))
	copy(out, t.quests)
	return out
}

// AwardXP adds amount to the profile's XP. There is no cap; the derived
// level may jump more than one step in a single award.
func (t *Tracker) AwardXP(amount int) error {
	if amount <= 0 {
		return ErrBadXPAmount
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.profile.XP += amount
	return t.st.Put(store.KeyUser, t.profile)
}

// UnlockBadge adds the badge iff it is not already unlocked. The bool
// result lets callers announce a badge exactly once.
func (t *Tracker) UnlockBadge(badgeID string) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.profile.HasBadge(badgeID) {
		return false, nil
	}
	t.profile.UnlockedBadges = append(t.profile.UnlockedBadges, badgeID)
	return true, t.st.Put(store.KeyUser, t.profile)
}

// RecordLogin applies the streak law for a login on the given day:
// same-day logins are a no-op; a login the calendar day after the last
// one extends the streak; anything else (including the first ever login)
// resets it to 1. Reaching 7 unlocks Streak Master once.
func (t *Tracker) RecordLogin(today time.Time) (streak int, streakBadge bool, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	day := today.Format(dateLayout)
	if t.profile.LastLoginDate == day {
		return t.profile.Streak, false, nil
	}

	yesterday := today.AddDate(0, 0, -1).Format(dateLayout)
	if t.profile.LastLoginDate == yesterday {
		t.profile.Streak++
	} else {
		t.profile.Streak = 1
	}
	t.profile.LastLoginDate = day

	if t.profile.Streak >= streakBadgeAt && !t.profile.HasBadge(catalog.BadgeStreakMaster) {
		t.profile.UnlockedBadges = append(t.profile.UnlockedBadges, catalog.BadgeStreakMaster)
		streakBadge = true
	}

	return t.profile.Streak, streakBadge, t.st.Put(store.KeyUser, t.profile)
}

// CompleteQuest marks the quest completed, awards its XP, and runs one
// unlock pass over the catalog. Completing an already-completed quest is
// a no-op: no second XP award, no quest set change.
func (t *Tracker) CompleteQuest(questID string) (unlocked []Quest, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	idx := -1
	for i := range t.quests {
		if t.quests[i].ID == questID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("complete quest %s: %w", questID, ErrQuestNotFound)
	}
	if t.quests[idx].Completed {
		return nil, nil
	}

	t.quests[idx].Completed = true
	t.profile.XP += t.quests[idx].XPReward

	unlocked = Unlocks(t.quests, catalog.Templates())
	t.quests = append(t.quests, unlocked...)

	if err := t.st.Put(store.KeyQuests, t.quests); err != nil {
		return unlocked, err
	}
	return unlocked, t.st.Put(store.KeyUser, t.profile)
}

// SyncUnlocks runs an unlock pass outside of quest completion. Called
// once after initial load so templates added to the catalog between
// sessions become available.
func (t *Tracker) SyncUnlocks() ([]Quest, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	unlocked := Unlocks(t.quests, catalog.Templates())
	if len(unlocked) == 0 {
		return nil, nil
	}
	t.quests = append(t.quests, unlocked...)
	return unlocked, t.st.Put(store.KeyQuests, t.quests)
}

// AddCustomCategory registers a user-defined budget category. Reports
// false for duplicates.
func (t *Tracker) AddCustomCategory(name string) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, c := range t.profile.CustomCategories {
		if c == name {
			return false, nil
		}
	}
	t.profile.CustomCategories = append(t.profile.CustomCategories, name)
	return true, t.st.Put(store.KeyUser, t.profile)
}

// SetCurrency changes the display/fetch currency code.
func (t *Tracker) SetCurrency(code string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.profile.Currency = code
	return t.st.Put(store.KeyUser, t.profile)
}

// SetWalletBalance records the ledger-derived wallet balance on the
// profile. The ledger computes it; the tracker only mirrors it so a
// single record holds everything the profile view needs.
func (t *Tracker) SetWalletBalance(balance decimal.Decimal) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.profile.WalletBalance = balance
	return t.st.Put(store.KeyUser, t.profile)
}

// SimulatedCash implements ledger.CashAccount.
func (t *Tracker) SimulatedCash() decimal.Decimal {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.profile.SimulatedCash
}

// SetSimulatedCash implements ledger.CashAccount.
func (t *Tracker) SetSimulatedCash(balance decimal.Decimal) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.profile.SimulatedCash = balance
	return t.st.Put(store.KeyUser, t.profile)
}
