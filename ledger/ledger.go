package ledger

import (
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rustyeddy/moneyverse/internal/id"
	"github.com/rustyeddy/moneyverse/store"
)

// CashAccount is the simulated-cash balance the portfolio trades
// against. The progression tracker owns it; the ledger only moves it
// through this interface so there is a single writer for the profile
// record.
type CashAccount interface {
	SimulatedCash() decimal.Decimal
	SetSimulatedCash(decimal.Decimal) error
}

// Ledger holds transactions, portfolio and goals, persisting each after
// every mutation. All methods are safe for concurrent use; multi-step
// mutations hold the lock for their full duration so no partial state is
// observable.
type Ledger struct {
	mu    sync.Mutex
	st    store.Store
	cash  CashAccount
	txs   []Transaction
	items []PortfolioItem
	goals []Goal

	wallet decimal.Decimal
}

// New loads the persisted aggregates, falling back to empty lists when
// records are absent.
func New(st store.Store, cash CashAccount) (*Ledger, error) {
	l := &Ledger{st: st, cash: cash}

	if _, err := st.Get(store.KeyTransactions, &l.txs); err != nil {
		return nil, fmt.Errorf("load transactions: %w", err)
	}
	if _, err := st.Get(store.KeyPortfolio, &l.items); err != nil {
		return nil, fmt.Errorf("load portfolio: %w", err)
	}
	if _, err := st.Get(store.KeyGoals, &l.goals); err != nil {
		return nil, fmt.Errorf("load goals: %w", err)
	}

	l.wallet = sumSigned(l.txs)
	return l, nil
}

// Transactions returns a copy of the transaction list, oldest first.
func (l *Ledger) Transactions() []Transaction {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Transaction, len(l.txs))
	copy(out, l.txs)
	return out
}

// WalletBalance is the signed sum over all transactions. It is
// recomputed from scratch after every mutation, never adjusted
// incrementally.
func (l *Ledger) WalletBalance() decimal.Decimal {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.wallet
}

// AddTransaction appends a new entry and persists the list. The entry
// gets a fresh id and the current time.
func (l *Ledger) AddTransaction(amount decimal.Decimal, description, category string, typ TransactionType) (Transaction, error) {
	if !amount.IsPositive() {
		return Transaction{}, ErrInvalidAmount
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	return l.addTransactionLocked(amount, description, category, typ)
}

func (l *Ledger) addTransactionLocked(amount decimal.Decimal, description, category string, typ TransactionType) (Transaction, error) {
	tx := Transaction{
		ID:          id.New(),
		Amount:      amount,
		Description: description,
		Category:    category,
		Type:        typ,
		Date:        time.Now().UTC(),
	}
	l.txs = append(l.txs, tx)
	l.wallet = sumSigned(l.txs)

	if err := l.st.Put(store.KeyTransactions, l.txs); err != nil {
		return tx, err
	}
	return tx, nil
}

// EditTransaction replaces the entry with the same id.
func (l *Ledger) EditTransaction(tx Transaction) error {
	if !tx.Amount.IsPositive() {
		return ErrInvalidAmount
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.txs {
		if l.txs[i].ID == tx.ID {
			l.txs[i] = tx
			l.wallet = sumSigned(l.txs)
			return l.st.Put(store.KeyTransactions, l.txs)
		}
	}
	return fmt.Errorf("edit transaction %s: %w", tx.ID, ErrNotFound)
}

// DeleteTransaction removes the entry with the given id.
func (l *Ledger) DeleteTransaction(txID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.txs {
		if l.txs[i].ID == txID {
			l.txs = append(l.txs[:i], l.txs[i+1:]...)
			l.wallet = sumSigned(l.txs)
			return l.st.Put(store.KeyTransactions, l.txs)
		}
	}
	return fmt.Errorf("delete transaction %s: %w", txID, ErrNotFound)
}

// TransactionCount reports how many entries the ledger holds.
func (l *Ledger) TransactionCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.txs)
}

func sumSigned(txs []Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, t := range txs {
		total = total.Add(t.Signed())
	}
	return total
}
