package journal

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

type SQLiteJournal struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLiteJournal, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteJournal{db: db}, nil
}

func (j *SQLiteJournal) RecordExecution(r ExecutionRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO executions
		(order_id, symbol, order_type, target_price, trigger_price, quantity, proceeds, reason, time)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.OrderID, r.Symbol, r.OrderType,
		r.TargetPrice.String(), r.TriggerPrice.String(),
		r.Quantity.String(), r.Proceeds.String(),
		r.Reason, r.Time,
	)
	return err
}

// Executions returns the audit trail, newest first.
func (j *SQLiteJournal) Executions() ([]ExecutionRecord, error) {
	rows, err := j.db.Query(`
		SELECT order_id, symbol, order_type, target_price, trigger_price, quantity, proceeds, reason, time
		FROM executions ORDER BY time DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ExecutionRecord
	for rows.Next() {
		var r ExecutionRecord
		var target, trigger, qty, proceeds string
		if err := rows.Scan(&r.OrderID, &r.Symbol, &r.OrderType,
			&target, &trigger, &qty, &proceeds, &r.Reason, &r.Time); err != nil {
			return nil, err
		}
		if r.TargetPrice, err = parseDecimal(target); err != nil {
			return nil, err
		}
		if r.TriggerPrice, err = parseDecimal(trigger); err != nil {
			return nil, err
		}
		if r.Quantity, err = parseDecimal(qty); err != nil {
			return nil, err
		}
		if r.Proceeds, err = parseDecimal(proceeds); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (j *SQLiteJournal) Close() error {
	return j.db.Close()
}
