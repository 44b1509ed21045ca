package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rustyeddy/moneyverse/market"
	"github.com/rustyeddy/moneyverse/store"
)

// Portfolio returns a copy of the current holdings.
func (l *Ledger) Portfolio() []PortfolioItem {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]PortfolioItem, len(l.items))
	copy(out, l.items)
	return out
}

// Holding returns the item for symbol, ok=false when nothing is held.
func (l *Ledger) Holding(symbol string) (PortfolioItem, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, it := range l.items {
		if it.Symbol == symbol {
			return it, true
		}
	}
	return PortfolioItem{}, false
}

// Buy purchases qty units of the asset at its current price with
// simulated cash. Fails with ErrInsufficientFunds before any mutation
// when the cost exceeds the balance. A repeat buy of a held symbol adds
// to the quantity and overwrites the average cost with this buy's price.
func (l *Ledger) Buy(asset market.Asset, qty decimal.Decimal) error {
	if !qty.IsPositive() {
		return ErrInvalidAmount
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	cost := asset.Price.Mul(qty)
	balance := l.cash.SimulatedCash()
	if cost.GreaterThan(balance) {
		return fmt.Errorf("buy %s %s at %s: %w", qty, asset.Symbol, asset.Price, ErrInsufficientFunds)
	}

	// Debit the cash before crediting the holding so a failed write can
	// never leave units that were not paid for.
	if err := l.cash.SetSimulatedCash(balance.Sub(cost)); err != nil {
		return err
	}

	found := false
	for i := range l.items {
		if l.items[i].Symbol == asset.Symbol {
			l.items[i].Quantity = l.items[i].Quantity.Add(qty)
			l.items[i].AvgBuyPrice = asset.Price
			found = true
			break
		}
	}
	if !found {
		l.items = append(l.items, PortfolioItem{
			Symbol:      asset.Symbol,
			Quantity:    qty,
			AvgBuyPrice: asset.Price,
		})
	}

	return l.st.Put(store.KeyPortfolio, l.items)
}

// Sell disposes qty units of the asset at its current price.
func (l *Ledger) Sell(asset market.Asset, qty decimal.Decimal) error {
	return l.SellAt(asset.Symbol, qty, asset.Price)
}

// SellAt disposes qty units of symbol at an explicit price. The trigger
// engine uses this so a stop-loss fills at the triggering quote rather
// than whatever snapshot the asset list holds. Fails with
// ErrInsufficientHoldings before any mutation when qty exceeds the held
// quantity; the item is removed entirely when it reaches exactly zero.
func (l *Ledger) SellAt(symbol string, qty, price decimal.Decimal) error {
	if !qty.IsPositive() {
		return ErrInvalidAmount
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	idx := -1
	for i := range l.items {
		if l.items[i].Symbol == symbol {
			idx = i
			break
		}
	}
	if idx < 0 || l.items[idx].Quantity.LessThan(qty) {
		return fmt.Errorf("sell %s %s: %w", qty, symbol, ErrInsufficientHoldings)
	}

	remaining := l.items[idx].Quantity.Sub(qty)
	if remaining.IsZero() {
		l.items = append(l.items[:idx], l.items[idx+1:]...)
	} else {
		l.items[idx].Quantity = remaining
	}

	proceeds := price.Mul(qty)
	if err := l.cash.SetSimulatedCash(l.cash.SimulatedCash().Add(proceeds)); err != nil {
		return err
	}
	return l.st.Put(store.KeyPortfolio, l.items)
}

// HeldQuantity reports the quantity held for symbol, zero when absent.
func (l *Ledger) HeldQuantity(symbol string) decimal.Decimal {
	if it, ok := l.Holding(symbol); ok {
		return it.Quantity
	}
	return decimal.Zero
}
