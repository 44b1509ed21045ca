package ledger

import "errors"

var (
	// ErrInsufficientFunds - a buy costs more than the available
	// simulated cash. Nothing is mutated.
	ErrInsufficientFunds = errors.New("insufficient simulated cash")

	// ErrInsufficientHoldings - a sell asks for more than the held
	// quantity. Nothing is mutated.
	ErrInsufficientHoldings = errors.New("insufficient holdings")

	// ErrNotFound - the referenced transaction, goal or holding does
	// not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidAmount - a zero or negative amount or quantity.
	ErrInvalidAmount = errors.New("amount must be positive")
)
