package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/moneyverse/market"
	"github.com/rustyeddy/moneyverse/store"
)

type fakeCash struct {
	balance decimal.Decimal
	failSet bool
}

func (c *fakeCash) SimulatedCash() decimal.Decimal { return c.balance }

func (c *fakeCash) SetSimulatedCash(d decimal.Decimal) error {
	if c.failSet {
		return assert.AnError
	}
	c.balance = d
	return nil
}

func newLedger(t *testing.T, cash decimal.Decimal) (*Ledger, *fakeCash) {
	t.Helper()
	fc := &fakeCash{balance: cash}
	l, err := New(store.NewMemory(), fc)
	require.NoError(t, err)
	return l, fc
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func asset(symbol string, price string) market.Asset {
	return market.Asset{ID: symbol, Symbol: symbol, Name: symbol, Price: dec(price), Kind: market.Crypto}
}

func TestWalletBalanceRecomputedAfterEveryMutation(t *testing.T) {
	t.Parallel()
	l, _ := newLedger(t, decimal.Zero)

	income, err := l.AddTransaction(dec("100"), "allowance", "Allowance", Income)
	require.NoError(t, err)
	assert.True(t, l.WalletBalance().Equal(dec("100")))

	_, err = l.AddTransaction(dec("30"), "snacks", "Food", Expense)
	require.NoError(t, err)
	assert.True(t, l.WalletBalance().Equal(dec("70")))

	income.Amount = dec("50")
	require.NoError(t, l.EditTransaction(income))
	assert.True(t, l.WalletBalance().Equal(dec("20")))

	require.NoError(t, l.DeleteTransaction(income.ID))
	assert.True(t, l.WalletBalance().Equal(dec("-30")))
}

func TestAddTransactionRejectsNonPositiveAmount(t *testing.T) {
	t.Parallel()
	l, _ := newLedger(t, decimal.Zero)

	_, err := l.AddTransaction(decimal.Zero, "zero", "Other", Income)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = l.AddTransaction(dec("-5"), "negative", "Other", Expense)
	assert.ErrorIs(t, err, ErrInvalidAmount)
	assert.Equal(t, 0, l.TransactionCount())
}

func TestEditUnknownTransaction(t *testing.T) {
	t.Parallel()
	l, _ := newLedger(t, decimal.Zero)

	err := l.EditTransaction(Transaction{ID: "missing", Amount: dec("1")})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBuyInsufficientFundsLeavesStateUntouched(t *testing.T) {
	t.Parallel()
	l, cash := newLedger(t, dec("100"))

	err := l.Buy(asset("BTC", "50"), dec("10")) // cost 500 > 100
	assert.ErrorIs(t, err, ErrInsufficientFunds)
	assert.True(t, cash.balance.Equal(dec("100")))
	assert.Empty(t, l.Portfolio())
}

func TestBuyCreatesAndTopsUpHolding(t *testing.T) {
	t.Parallel()
	l, cash := newLedger(t, dec("10000"))

	require.NoError(t, l.Buy(asset("BTC", "100"), dec("10")))
	assert.True(t, cash.balance.Equal(dec("9000")))

	it, ok := l.Holding("BTC")
	require.True(t, ok)
	assert.True(t, it.Quantity.Equal(dec("10")))
	assert.True(t, it.AvgBuyPrice.Equal(dec("100")))

	// Repeat buy: quantity adds up, avg cost follows the latest price.
	require.NoError(t, l.Buy(asset("BTC", "120"), dec("5")))
	it, _ = l.Holding("BTC")
	assert.True(t, it.Quantity.Equal(dec("15")))
	assert.True(t, it.AvgBuyPrice.Equal(dec("120")))
}

func TestSellRemovesHoldingAtZero(t *testing.T) {
	t.Parallel()
	l, cash := newLedger(t, dec("1000"))

	require.NoError(t, l.Buy(asset("ETH", "100"), dec("4")))
	require.NoError(t, l.Sell(asset("ETH", "110"), dec("3")))

	it, ok := l.Holding("ETH")
	require.True(t, ok)
	assert.True(t, it.Quantity.Equal(dec("1")))

	require.NoError(t, l.Sell(asset("ETH", "110"), dec("1")))
	_, ok = l.Holding("ETH")
	assert.False(t, ok, "zero-quantity holdings must not linger")
	assert.Empty(t, l.Portfolio())

	// 1000 - 400 + 3*110 + 110
	assert.True(t, cash.balance.Equal(dec("1040")))
}

func TestSellInsufficientHoldings(t *testing.T) {
	t.Parallel()
	l, cash := newLedger(t, dec("1000"))

	require.NoError(t, l.Buy(asset("SOL", "10"), dec("5")))
	err := l.Sell(asset("SOL", "10"), dec("6"))
	assert.ErrorIs(t, err, ErrInsufficientHoldings)

	it, _ := l.Holding("SOL")
	assert.True(t, it.Quantity.Equal(dec("5")), "failed sell must not mutate holdings")
	assert.True(t, cash.balance.Equal(dec("950")))
}

func TestBuyCashWriteFailureCreditsNoHolding(t *testing.T) {
	t.Parallel()
	l, cash := newLedger(t, dec("1000"))
	cash.failSet = true

	err := l.Buy(asset("BTC", "100"), dec("2"))
	require.Error(t, err)
	assert.Empty(t, l.Portfolio(), "units must not appear when the debit failed")
	assert.True(t, cash.balance.Equal(dec("1000")))
}

func TestAddTransactionSurfacesStoreFailure(t *testing.T) {
	t.Parallel()
	st := store.NewMemory()
	l, err := New(st, &fakeCash{})
	require.NoError(t, err)

	st.FailPuts = true
	_, err = l.AddTransaction(dec("10"), "bus", "Transport", Expense)
	require.Error(t, err)

	// The in-memory mutation is applied first; the write error goes to
	// the caller.
	assert.Equal(t, 1, l.TransactionCount())
	assert.True(t, l.WalletBalance().Equal(dec("-10")))
}

func TestSellUnknownSymbol(t *testing.T) {
	t.Parallel()
	l, _ := newLedger(t, dec("1000"))

	err := l.SellAt("DOGE", dec("1"), dec("0.1"))
	assert.ErrorIs(t, err, ErrInsufficientHoldings)
}

func TestGoalCompletionFiresOnce(t *testing.T) {
	t.Parallel()
	l, _ := newLedger(t, decimal.Zero)

	g, err := l.AddGoal("New bike", dec("500"), "🚲")
	require.NoError(t, err)
	assert.False(t, g.Completed)

	g, completedNow, err := l.AddFundsToGoal(g.ID, dec("500"))
	require.NoError(t, err)
	assert.True(t, completedNow)
	assert.True(t, g.Completed)
	assert.True(t, g.CurrentAmount.Equal(dec("500")))

	// Further deposits keep Completed but never report it again.
	g, completedNow, err = l.AddFundsToGoal(g.ID, dec("50"))
	require.NoError(t, err)
	assert.False(t, completedNow)
	assert.True(t, g.Completed)
	assert.True(t, g.CurrentAmount.Equal(dec("550")))
}

func TestGoalDepositWritesSavingsExpense(t *testing.T) {
	t.Parallel()
	l, _ := newLedger(t, decimal.Zero)

	g, err := l.AddGoal("Headphones", dec("200"), "🎧")
	require.NoError(t, err)

	_, _, err = l.AddFundsToGoal(g.ID, dec("80"))
	require.NoError(t, err)

	txs := l.Transactions()
	require.Len(t, txs, 1)
	assert.Equal(t, Expense, txs[0].Type)
	assert.Equal(t, SavingsCategory, txs[0].Category)
	assert.True(t, txs[0].Amount.Equal(dec("80")))
	assert.True(t, l.WalletBalance().Equal(dec("-80")), "goal deposits leave the real-money ledger")
}

func TestFundUnknownGoal(t *testing.T) {
	t.Parallel()
	l, _ := newLedger(t, decimal.Zero)

	_, _, err := l.AddFundsToGoal("missing", dec("10"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLedgerStatePersistsAcrossLoads(t *testing.T) {
	t.Parallel()
	st := store.NewMemory()
	fc := &fakeCash{balance: dec("10000")}

	l, err := New(st, fc)
	require.NoError(t, err)
	_, err = l.AddTransaction(dec("25"), "bus", "Transport", Expense)
	require.NoError(t, err)
	require.NoError(t, l.Buy(asset("BTC", "100"), dec("2")))

	reloaded, err := New(st, fc)
	require.NoError(t, err)
	assert.Equal(t, 1, reloaded.TransactionCount())
	assert.True(t, reloaded.WalletBalance().Equal(dec("-25")))
	it, ok := reloaded.Holding("BTC")
	require.True(t, ok)
	assert.True(t, it.Quantity.Equal(dec("2")))
}
