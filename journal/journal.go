// Package journal records what the trigger engine did with each order,
// so a user can audit why a holding was sold while they were away.
package journal

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExecutionRecord is one terminal order transition. Reason is
// "Executed", "Invalidated" or "Cancelled"; Proceeds is zero unless a
// sell actually happened.
type ExecutionRecord struct {
	OrderID      string
	Symbol       string
	OrderType    string
	TargetPrice  decimal.Decimal
	TriggerPrice decimal.Decimal
	Quantity     decimal.Decimal
	Proceeds     decimal.Decimal
	Reason       string
	Time         time.Time
}

type Journal interface {
	RecordExecution(ExecutionRecord) error
	Close() error
}

// Nop discards everything. Used when no journal path is configured and
// in tests that do not care about the audit trail.
type Nop struct{}

func (Nop) RecordExecution(ExecutionRecord) error { return nil }
func (Nop) Close() error                          { return nil }
