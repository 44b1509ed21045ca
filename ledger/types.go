// Package ledger owns the three CRUD aggregates the engines act on: the
// real-money transaction list, the simulated portfolio, and savings
// goals. Each aggregate is persisted as one record; the ledger is its
// only writer.
package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	Income  TransactionType = "INCOME"
	Expense TransactionType = "EXPENSE"
)

// Transaction is one real-money entry. Amount is always positive; the
// sign comes from Type when summing the wallet balance.
type Transaction struct {
	ID          string          `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Type        TransactionType `json:"type"`
	Date        time.Time       `json:"date"`
}

// Signed returns the amount with the sign implied by the type.
func (t Transaction) Signed() decimal.Decimal {
	if t.Type == Income {
		return t.Amount
	}
	return t.Amount.Neg()
}

// PortfolioItem is one simulated holding, keyed by symbol. Quantity is
// strictly positive; an item is removed the moment it would reach zero.
//
// AvgBuyPrice follows the last-price policy: a repeat buy overwrites it
// with the newest buy price instead of computing a weighted average.
type PortfolioItem struct {
	Symbol      string          `json:"symbol"`
	Quantity    decimal.Decimal `json:"quantity"`
	AvgBuyPrice decimal.Decimal `json:"avgBuyPrice"`
}

// Goal is a savings target. Completed flips true exactly once, the first
// time CurrentAmount reaches TargetAmount, and never reverts.
type Goal struct {
	ID            string          `json:"id"`
	Title         string          `json:"title"`
	TargetAmount  decimal.Decimal `json:"targetAmount"`
	CurrentAmount decimal.Decimal `json:"currentAmount"`
	Emoji         string          `json:"emoji"`
	Completed     bool            `json:"completed"`
}

// SavingsCategory tags the expense transaction written for every goal
// deposit.
const SavingsCategory = "Savings"
