package orders

import (
	"io"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/moneyverse/journal"
	"github.com/rustyeddy/moneyverse/ledger"
	"github.com/rustyeddy/moneyverse/market"
	"github.com/rustyeddy/moneyverse/store"
)

// fakeSeller tracks holdings and records every executed sell.
type fakeSeller struct {
	held  map[string]decimal.Decimal
	sells []sellCall
	fail  error
}

type sellCall struct {
	symbol string
	qty    decimal.Decimal
	price  decimal.Decimal
}

func (s *fakeSeller) HeldQuantity(symbol string) decimal.Decimal {
	if q, ok := s.held[symbol]; ok {
		return q
	}
	return decimal.Zero
}

func (s *fakeSeller) SellAt(symbol string, qty, price decimal.Decimal) error {
	if s.fail != nil {
		return s.fail
	}
	held := s.HeldQuantity(symbol)
	if held.LessThan(qty) {
		return ledger.ErrInsufficientHoldings
	}
	s.held[symbol] = held.Sub(qty)
	s.sells = append(s.sells, sellCall{symbol: symbol, qty: qty, price: price})
	return nil
}

type recordingJournal struct {
	records []journal.ExecutionRecord
}

func (j *recordingJournal) RecordExecution(r journal.ExecutionRecord) error {
	j.records = append(j.records, r)
	return nil
}

func (j *recordingJournal) Close() error { return nil }

type recordingListener struct {
	executed    []Order
	invalidated []Order
}

func (l *recordingListener) OrderExecuted(o Order, _ decimal.Decimal) {
	l.executed = append(l.executed, o)
}

func (l *recordingListener) OrderInvalidated(o Order) {
	l.invalidated = append(l.invalidated, o)
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func quote(symbol, price string) market.Quote {
	return market.Quote{Symbol: symbol, Price: dec(price), Time: time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)}
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newBook(t *testing.T, held map[string]decimal.Decimal) (*Book, *fakeSeller, *recordingJournal) {
	t.Helper()
	seller := &fakeSeller{held: held}
	jrnl := &recordingJournal{}
	b, err := NewBook(store.NewMemory(), seller, jrnl, testLogger())
	require.NoError(t, err)
	return b, seller, jrnl
}

func TestStopLossConstraintSkipsSilently(t *testing.T) {
	t.Parallel()
	b, _, _ := newBook(t, nil)

	// Stop-loss at or above market is not an order.
	_, placed, err := b.PlaceStopLoss("BTC", dec("110"), dec("1"), dec("100"))
	require.NoError(t, err)
	assert.False(t, placed)

	_, placed, err = b.PlaceStopLoss("BTC", dec("100"), dec("1"), dec("100"))
	require.NoError(t, err)
	assert.False(t, placed)

	_, placed, err = b.PlaceStopLoss("BTC", dec("90"), dec("1"), dec("100"))
	require.NoError(t, err)
	assert.True(t, placed)
	assert.Len(t, b.Pending(), 1)
}

func TestTakeProfitConstraintSkipsSilently(t *testing.T) {
	t.Parallel()
	b, _, _ := newBook(t, nil)

	_, placed, err := b.PlaceTakeProfit("ETH", dec("90"), dec("1"), dec("100"))
	require.NoError(t, err)
	assert.False(t, placed)

	_, placed, err = b.PlaceTakeProfit("ETH", dec("120"), dec("1"), dec("100"))
	require.NoError(t, err)
	assert.True(t, placed)
}

func TestStopLossTriggersAndSellsAtQuotePrice(t *testing.T) {
	t.Parallel()
	b, seller, jrnl := newBook(t, map[string]decimal.Decimal{"BTC": dec("10")})

	o, placed, err := b.PlaceStopLoss("BTC", dec("90"), dec("10"), dec("100"))
	require.NoError(t, err)
	require.True(t, placed)

	// Above target: nothing happens.
	b.Evaluate(quote("BTC", "95"))
	assert.Len(t, b.Pending(), 1)
	assert.Empty(t, seller.sells)

	// At/below target: sells the full quantity at the triggering price.
	b.Evaluate(quote("BTC", "85"))
	assert.Empty(t, b.Pending())
	require.Len(t, seller.sells, 1)
	assert.Equal(t, "BTC", seller.sells[0].symbol)
	assert.True(t, seller.sells[0].qty.Equal(dec("10")))
	assert.True(t, seller.sells[0].price.Equal(dec("85")))

	require.Len(t, jrnl.records, 1)
	assert.Equal(t, ReasonExecuted, jrnl.records[0].Reason)
	assert.Equal(t, o.ID, jrnl.records[0].OrderID)
	assert.True(t, jrnl.records[0].Proceeds.Equal(dec("850")))
}

func TestTakeProfitTriggersAtOrAboveTarget(t *testing.T) {
	t.Parallel()
	b, seller, _ := newBook(t, map[string]decimal.Decimal{"SOL": dec("3")})

	_, placed, err := b.PlaceTakeProfit("SOL", dec("150"), dec("3"), dec("100"))
	require.NoError(t, err)
	require.True(t, placed)

	b.Evaluate(quote("SOL", "150"))
	assert.Empty(t, b.Pending())
	require.Len(t, seller.sells, 1)
	assert.True(t, seller.sells[0].price.Equal(dec("150")))
}

func TestTriggeredOrderWithInsufficientHoldingsIsInvalidated(t *testing.T) {
	t.Parallel()
	b, seller, jrnl := newBook(t, map[string]decimal.Decimal{"BTC": dec("2")})

	_, placed, err := b.PlaceStopLoss("BTC", dec("90"), dec("5"), dec("100"))
	require.NoError(t, err)
	require.True(t, placed)

	b.Evaluate(quote("BTC", "80"))

	assert.Empty(t, b.Pending(), "invalidated order leaves the pending set")
	assert.Empty(t, seller.sells, "no sell for an invalidated order")
	assert.True(t, seller.held["BTC"].Equal(dec("2")), "holdings untouched")
	require.Len(t, jrnl.records, 1)
	assert.Equal(t, ReasonInvalidated, jrnl.records[0].Reason)
	assert.True(t, jrnl.records[0].Proceeds.IsZero())
}

func TestSameBatchRechecksHoldingsPerOrder(t *testing.T) {
	t.Parallel()
	// Two orders over the same 10 units: together they ask for 16.
	b, seller, _ := newBook(t, map[string]decimal.Decimal{"BTC": dec("10")})

	_, _, err := b.PlaceStopLoss("BTC", dec("95"), dec("8"), dec("100"))
	require.NoError(t, err)
	_, _, err = b.PlaceStopLoss("BTC", dec("90"), dec("8"), dec("100"))
	require.NoError(t, err)

	listener := &recordingListener{}
	b.SetListener(listener)

	b.Evaluate(quote("BTC", "80"))

	// Exactly one executes; the other sees only 2 units left and is
	// invalidated instead of overselling.
	require.Len(t, seller.sells, 1)
	assert.True(t, seller.held["BTC"].Equal(dec("2")))
	assert.Empty(t, b.Pending())
	assert.Len(t, listener.executed, 1)
	assert.Len(t, listener.invalidated, 1)
}

func TestEvaluateIgnoresOtherSymbols(t *testing.T) {
	t.Parallel()
	b, seller, _ := newBook(t, map[string]decimal.Decimal{"BTC": dec("1")})

	_, _, err := b.PlaceStopLoss("BTC", dec("90"), dec("1"), dec("100"))
	require.NoError(t, err)

	b.Evaluate(quote("ETH", "1"))
	assert.Len(t, b.Pending(), 1)
	assert.Empty(t, seller.sells)
}

func TestCancelRemovesPendingOrder(t *testing.T) {
	t.Parallel()
	b, seller, jrnl := newBook(t, map[string]decimal.Decimal{"BTC": dec("1")})

	o, _, err := b.PlaceStopLoss("BTC", dec("90"), dec("1"), dec("100"))
	require.NoError(t, err)

	require.NoError(t, b.Cancel(o.ID))
	assert.Empty(t, b.Pending())
	assert.Empty(t, seller.sells, "cancel has no ledger side effects")
	require.Len(t, jrnl.records, 1)
	assert.Equal(t, ReasonCancelled, jrnl.records[0].Reason)

	assert.ErrorIs(t, b.Cancel(o.ID), ErrOrderNotFound)

	// Cancelled before the tick: the trigger sees nothing.
	b.Evaluate(quote("BTC", "80"))
	assert.Empty(t, seller.sells)
}

func TestSellFailureLeavesOrderPending(t *testing.T) {
	t.Parallel()
	b, seller, _ := newBook(t, map[string]decimal.Decimal{"BTC": dec("5")})
	seller.fail = assert.AnError

	_, _, err := b.PlaceStopLoss("BTC", dec("90"), dec("5"), dec("100"))
	require.NoError(t, err)

	b.Evaluate(quote("BTC", "80"))
	assert.Len(t, b.Pending(), 1, "transient sell failure retries next refresh")
}

func TestEvaluateContinuesWhenPersistFails(t *testing.T) {
	t.Parallel()
	st := store.NewMemory()
	seller := &fakeSeller{held: map[string]decimal.Decimal{"BTC": dec("5")}}
	jrnl := &recordingJournal{}
	b, err := NewBook(st, seller, jrnl, testLogger())
	require.NoError(t, err)

	_, _, err = b.PlaceStopLoss("BTC", dec("90"), dec("5"), dec("100"))
	require.NoError(t, err)

	st.FailPuts = true
	b.Evaluate(quote("BTC", "80"))

	// The feed path fails soft: the sell and the journal entry go
	// through, the store failure is only logged.
	require.Len(t, seller.sells, 1)
	require.Len(t, jrnl.records, 1)
	assert.Equal(t, ReasonExecuted, jrnl.records[0].Reason)
	assert.Empty(t, b.Pending())
}

func TestPendingOrdersPersistAcrossLoads(t *testing.T) {
	t.Parallel()
	st := store.NewMemory()
	seller := &fakeSeller{held: map[string]decimal.Decimal{"BTC": dec("1")}}

	b, err := NewBook(st, seller, journal.Nop{}, testLogger())
	require.NoError(t, err)
	_, _, err = b.PlaceStopLoss("BTC", dec("90"), dec("1"), dec("100"))
	require.NoError(t, err)

	reloaded, err := NewBook(st, seller, journal.Nop{}, testLogger())
	require.NoError(t, err)
	require.Len(t, reloaded.Pending(), 1)
	assert.Equal(t, StopLoss, reloaded.Pending()[0].Type)
}
