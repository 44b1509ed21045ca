// Package orders is the conditional-order book: pending stop-loss and
// take-profit orders evaluated against every new price observation, with
// simulated sells executed through the ledger when they trigger.
package orders

import "github.com/shopspring/decimal"

type Type string

const (
	StopLoss   Type = "STOP_LOSS"
	TakeProfit Type = "TAKE_PROFIT"
)

// Order is one pending conditional sell. Execution is all-or-nothing
// for Quantity; there are no partial fills. An order leaves the pending
// set through exactly one of: execution, invalidation, cancellation.
type Order struct {
	ID          string          `json:"id"`
	AssetSymbol string          `json:"assetSymbol"`
	Type        Type            `json:"type"`
	TargetPrice decimal.Decimal `json:"targetPrice"`
	Quantity    decimal.Decimal `json:"quantity"`
}

// triggered reports whether price crosses the order's threshold:
// stop-loss at or below target, take-profit at or above.
func (o Order) triggered(price decimal.Decimal) bool {
	switch o.Type {
	case StopLoss:
		return price.LessThanOrEqual(o.TargetPrice)
	case TakeProfit:
		return price.GreaterThanOrEqual(o.TargetPrice)
	}
	return false
}

// Terminal transition reasons, as journaled.
const (
	ReasonExecuted    = "Executed"
	ReasonInvalidated = "Invalidated"
	ReasonCancelled   = "Cancelled"
)
