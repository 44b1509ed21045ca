package orders

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/rustyeddy/moneyverse/internal/id"
	"github.com/rustyeddy/moneyverse/journal"
	"github.com/rustyeddy/moneyverse/ledger"
	"github.com/rustyeddy/moneyverse/market"
	"github.com/rustyeddy/moneyverse/store"
)

// ErrOrderNotFound - the order id is not pending (already triggered,
// invalidated, or cancelled).
var ErrOrderNotFound = errors.New("order not pending")

// Seller executes the simulated sell for a triggered order. Holdings
// must be re-checked through it at execution time, not batch-start time:
// an earlier order in the same tick may already have reduced them.
type Seller interface {
	HeldQuantity(symbol string) decimal.Decimal
	SellAt(symbol string, qty, price decimal.Decimal) error
}

// Listener is notified of terminal transitions driven by the price feed.
// Calls arrive after the book's lock is released.
type Listener interface {
	OrderExecuted(o Order, price decimal.Decimal)
	OrderInvalidated(o Order)
}

// Book holds the pending order set and evaluates it against incoming
// quotes. It is the only writer of the orders record.
type Book struct {
	mu       sync.Mutex
	st       store.Store
	seller   Seller
	jrnl     journal.Journal
	log      logrus.FieldLogger
	pending  []Order
	listener Listener
}

// NewBook loads persisted pending orders. jrnl may be journal.Nop{}.
func NewBook(st store.Store, seller Seller, jrnl journal.Journal, log logrus.FieldLogger) (*Book, error) {
	b := &Book{st: st, seller: seller, jrnl: jrnl, log: log}
	if _, err := st.Get(store.KeyOrders, &b.pending); err != nil {
		return nil, fmt.Errorf("load orders: %w", err)
	}
	return b, nil
}

// SetListener registers an optional terminal-transition listener.
func (b *Book) SetListener(l Listener) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listener = l
}

// Pending returns a copy of the pending set.
func (b *Book) Pending() []Order {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Order, len(b.pending))
	copy(out, b.pending)
	return out
}

// PlaceStopLoss creates a stop-loss for qty of symbol at target. The
// creation constraint is target < currentPrice; a violating order is
// silently skipped (placed=false, no error) rather than rejected. That
// asymmetry is intentional: advanced order options are a soft feature of
// the buy flow, not a validation surface.
func (b *Book) PlaceStopLoss(symbol string, target, qty, currentPrice decimal.Decimal) (Order, bool, error) {
	if !target.LessThan(currentPrice) {
		b.log.WithFields(logrus.Fields{"symbol": symbol, "target": target, "price": currentPrice}).
			Debug("stop-loss above market, order skipped")
		return Order{}, false, nil
	}
	return b.place(symbol, StopLoss, target, qty)
}

// PlaceTakeProfit creates a take-profit for qty of symbol at target.
// The creation constraint is target > currentPrice; violations are
// silently skipped.
func (b *Book) PlaceTakeProfit(symbol string, target, qty, currentPrice decimal.Decimal) (Order, bool, error) {
	if !target.GreaterThan(currentPrice) {
		b.log.WithFields(logrus.Fields{"symbol": symbol, "target": target, "price": currentPrice}).
			Debug("take-profit below market, order skipped")
		return Order{}, false, nil
	}
	return b.place(symbol, TakeProfit, target, qty)
}

func (b *Book) place(symbol string, typ Type, target, qty decimal.Decimal) (Order, bool, error) {
	if !qty.IsPositive() || !target.IsPositive() {
		return Order{}, false, ledger.ErrInvalidAmount
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	o := Order{
		ID:          id.New(),
		AssetSymbol: symbol,
		Type:        typ,
		TargetPrice: target,
		Quantity:    qty,
	}
	b.pending = append(b.pending, o)
	if err := b.st.Put(store.KeyOrders, b.pending); err != nil {
		return o, true, err
	}
	return o, true, nil
}

// Cancel removes a pending order. No ledger side effects.
func (b *Book) Cancel(orderID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i := range b.pending {
		if b.pending[i].ID == orderID {
			o := b.pending[i]
			b.pending = append(b.pending[:i], b.pending[i+1:]...)
			if err := b.st.Put(store.KeyOrders, b.pending); err != nil {
				return err
			}
			return b.jrnl.RecordExecution(journal.ExecutionRecord{
				OrderID:     o.ID,
				Symbol:      o.AssetSymbol,
				OrderType:   string(o.Type),
				TargetPrice: o.TargetPrice,
				Quantity:    o.Quantity,
				Reason:      ReasonCancelled,
			})
		}
	}
	return fmt.Errorf("cancel order %s: %w", orderID, ErrOrderNotFound)
}

// Evaluate runs one pass over the pending set for the quote's symbol.
// Each pending order is evaluated at most once. A triggered order
// re-checks holdings at execution time; if they cover the quantity the
// sell executes at the triggering price and the order is Executed,
// otherwise it is Invalidated and removed without touching the ledger.
//
// This runs on the feed path, so it fails soft: per-order problems are
// logged and the pass continues.
func (b *Book) Evaluate(q market.Quote) {
	b.mu.Lock()

	type executed struct {
		order Order
		price decimal.Decimal
	}
	var done []executed
	var dead []Order

	keep := b.pending[:0]
	for _, o := range b.pending {
		if o.AssetSymbol != q.Symbol || !o.triggered(q.Price) {
			keep = append(keep, o)
			continue
		}

		// Holdings re-checked now, not at batch start: an earlier order
		// in this same pass may have sold part of this symbol already.
		if b.seller.HeldQuantity(o.AssetSymbol).GreaterThanOrEqual(o.Quantity) {
			if err := b.seller.SellAt(o.AssetSymbol, o.Quantity, q.Price); err != nil {
				if errors.Is(err, ledger.ErrInsufficientHoldings) {
					dead = append(dead, o)
					continue
				}
				// Sell failed for a non-holdings reason (e.g. a store
				// write). Keep the order pending; the next refresh
				// retries.
				b.log.WithError(err).WithField("order_id", o.ID).Warn("order execution failed, left pending")
				keep = append(keep, o)
				continue
			}
			done = append(done, executed{order: o, price: q.Price})
		} else {
			dead = append(dead, o)
		}
	}
	b.pending = keep

	if len(done) > 0 || len(dead) > 0 {
		if err := b.st.Put(store.KeyOrders, b.pending); err != nil {
			b.log.WithError(err).Warn("persist order book")
		}
	}

	for _, e := range done {
		b.journalLocked(e.order, q, ReasonExecuted, e.price.Mul(e.order.Quantity))
		b.log.WithFields(logrus.Fields{
			"order_id": e.order.ID,
			"symbol":   e.order.AssetSymbol,
			"type":     e.order.Type,
			"price":    e.price,
			"quantity": e.order.Quantity,
		}).Info("order executed")
	}
	for _, o := range dead {
		b.journalLocked(o, q, ReasonInvalidated, decimal.Zero)
		b.log.WithFields(logrus.Fields{
			"order_id": o.ID,
			"symbol":   o.AssetSymbol,
			"quantity": o.Quantity,
		}).Warn("order invalidated, holdings insufficient")
	}

	// Capture the listener before releasing the lock, notify after.
	listener := b.listener
	b.mu.Unlock()

	if listener != nil {
		for _, e := range done {
			listener.OrderExecuted(e.order, e.price)
		}
		for _, o := range dead {
			listener.OrderInvalidated(o)
		}
	}
}

// EvaluateAssets runs Evaluate for every asset in a refresh batch.
func (b *Book) EvaluateAssets(assets []market.Asset, at time.Time) {
	for _, a := range assets {
		b.Evaluate(market.QuoteOf(a, at))
	}
}

func (b *Book) journalLocked(o Order, q market.Quote, reason string, proceeds decimal.Decimal) {
	err := b.jrnl.RecordExecution(journal.ExecutionRecord{
		OrderID:      o.ID,
		Symbol:       o.AssetSymbol,
		OrderType:    string(o.Type),
		TargetPrice:  o.TargetPrice,
		TriggerPrice: q.Price,
		Quantity:     o.Quantity,
		Proceeds:     proceeds,
		Reason:       reason,
		Time:         q.Time,
	})
	if err != nil {
		b.log.WithError(err).WithField("order_id", o.ID).Warn("journal execution")
	}
}
