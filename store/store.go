// Package store is the persistence layer: one JSON record per stable
// string key. SQLite is the on-disk implementation; Memory backs tests.
// A missing record is not an error; callers fall back to defaults.
package store

// Record keys. One record per aggregate, matching the single-owner rule:
// only the service owning an aggregate reads or writes its record.
const (
	KeyUser         = "user"
	KeyTransactions = "transactions"
	KeyPortfolio    = "portfolio"
	KeyQuests       = "quests"
	KeyGoals        = "goals"
	KeyOrders       = "orders"
)

// Store persists JSON-serializable records.
type Store interface {
	// Get unmarshals the record under key into out. ok is false when no
	// record exists; out is left untouched in that case.
	Get(key string, out any) (ok bool, err error)

	// Put marshals v and writes it under key, replacing any previous record.
	Put(key string, v any) error

	// Reset removes every record.
	Reset() error

	Close() error
}
