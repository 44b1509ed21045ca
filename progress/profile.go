// Package progress owns the user profile and the quest set: XP, level,
// badges, login streaks, and the unlock forest driven by quest
// completion.
package progress

import "github.com/shopspring/decimal"

// XPPerLevel is the flat XP cost of each level.
const XPPerLevel = 1000

// dateLayout is the calendar-day granularity used for streak logic.
const dateLayout = "2006-01-02"

// Profile is the single local user. Level is not stored; it is always
// derived from XP so the two can never drift apart.
type Profile struct {
	Name             string          `json:"name"`
	Avatar           string          `json:"avatar,omitempty"`
	XP               int             `json:"xp"`
	Streak           int             `json:"streak"`
	WalletBalance    decimal.Decimal `json:"walletBalance"`
	SimulatedCash    decimal.Decimal `json:"simulatedCash"`
	CustomCategories []string        `json:"customCategories,omitempty"`
	Currency         string          `json:"currency"`
	UnlockedBadges   []string        `json:"unlockedBadges"`
	LastLoginDate    string          `json:"lastLoginDate,omitempty"`
	Theme            string          `json:"theme"`
}

// Level derives the progression tier from XP.
func (p Profile) Level() int {
	return p.XP/XPPerLevel + 1
}

// HasBadge reports whether the badge id is already unlocked.
func (p Profile) HasBadge(badgeID string) bool {
	for _, b := range p.UnlockedBadges {
		if b == badgeID {
			return true
		}
	}
	return false
}

// DefaultProfile is the state of a brand-new user: a little starter XP,
// the Newbie badge, and the simulator's play money.
func DefaultProfile() Profile {
	return Profile{
		Name:           "Alex",
		XP:             120,
		Streak:         1,
		WalletBalance:  decimal.Zero,
		SimulatedCash:  decimal.NewFromInt(10000),
		Currency:       "USD",
		UnlockedBadges: []string{"1"},
		Theme:          "dark",
	}
}
