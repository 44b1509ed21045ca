package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rustyeddy/moneyverse/internal/id"
	"github.com/rustyeddy/moneyverse/store"
)

// Goals returns a copy of the goal list.
func (l *Ledger) Goals() []Goal {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Goal, len(l.goals))
	copy(out, l.goals)
	return out
}

// AddGoal creates a new savings goal starting at zero.
func (l *Ledger) AddGoal(title string, target decimal.Decimal, emoji string) (Goal, error) {
	if !target.IsPositive() {
		return Goal{}, ErrInvalidAmount
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	g := Goal{
		ID:           id.New(),
		Title:        title,
		TargetAmount: target,
		Emoji:        emoji,
	}
	l.goals = append(l.goals, g)
	if err := l.st.Put(store.KeyGoals, l.goals); err != nil {
		return g, err
	}
	return g, nil
}

// AddFundsToGoal deposits amount into a goal. The deposit is real money
// leaving the wallet, so a Savings expense transaction is written in the
// same step. completedNow is true only on the deposit that first pushes
// CurrentAmount to the target; later deposits keep Completed true and
// never report it again, so completion rewards cannot re-fire.
func (l *Ledger) AddFundsToGoal(goalID string, amount decimal.Decimal) (g Goal, completedNow bool, err error) {
	if !amount.IsPositive() {
		return Goal{}, false, ErrInvalidAmount
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	idx := -1
	for i := range l.goals {
		if l.goals[i].ID == goalID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return Goal{}, false, fmt.Errorf("fund goal %s: %w", goalID, ErrNotFound)
	}

	goal := &l.goals[idx]
	goal.CurrentAmount = goal.CurrentAmount.Add(amount)
	if !goal.Completed && goal.CurrentAmount.GreaterThanOrEqual(goal.TargetAmount) {
		goal.Completed = true
		completedNow = true
	}

	if err := l.st.Put(store.KeyGoals, l.goals); err != nil {
		return *goal, completedNow, err
	}

	desc := fmt.Sprintf("Saved for %s", goal.Title)
	if _, err := l.addTransactionLocked(amount, desc, SavingsCategory, Expense); err != nil {
		return *goal, completedNow, err
	}
	return *goal, completedNow, nil
}
